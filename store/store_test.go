package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMergeDesignTokens(t *testing.T) {
	tests := []struct {
		name    string
		partial any
		want    DesignTokenSet
	}{
		{
			name:    "overwrite one group",
			partial: map[string]any{"colors": map[string]any{"primary": "#000000"}},
			want: DesignTokenSet{
				"colors":       map[string]any{"primary": "#000000"},
				"spacing":      DefaultDesignTokens()["spacing"],
				"borderRadius": DefaultDesignTokens()["borderRadius"],
			},
		},
		{
			name:    "add new key",
			partial: map[string]any{"fonts": map[string]any{"body": "sans-serif"}},
			want: func() DesignTokenSet {
				d := DefaultDesignTokens()
				d["fonts"] = map[string]any{"body": "sans-serif"}
				return d
			}(),
		},
		{
			name:    "empty object is a no-op",
			partial: map[string]any{},
			want:    DefaultDesignTokens(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			got, err := s.MergeDesignTokens(tt.partial)
			if err != nil {
				t.Fatalf("MergeDesignTokens() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MergeDesignTokens() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, s.DesignTokens()); diff != "" {
				t.Errorf("DesignTokens() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeDesignTokensInvalid(t *testing.T) {
	inputs := []any{nil, "not-an-object", []any{"a"}, 42.0, true, map[string]any(nil)}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%T(%v)", in, in), func(t *testing.T) {
			s := New()
			_, err := s.MergeDesignTokens(in)
			if !failure.Is(err, InvalidInput) {
				t.Fatalf("MergeDesignTokens() error = %v, want %s", err, InvalidInput)
			}
			if diff := cmp.Diff(DefaultDesignTokens(), s.DesignTokens()); diff != "" {
				t.Errorf("tokens changed after failed merge (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDesignTokensReturnsCopy(t *testing.T) {
	s := New()
	got := s.DesignTokens()
	got["colors"].(map[string]any)["primary"] = "#ffffff"
	got["extra"] = "x"

	if diff := cmp.Diff(DefaultDesignTokens(), s.DesignTokens()); diff != "" {
		t.Errorf("stored tokens aliased by caller (-want +got):\n%s", diff)
	}
}

func TestReplaceCart(t *testing.T) {
	s := New()
	items := []any{map[string]any{"productId": 1.0, "quantity": 2.0}}
	if err := s.ReplaceCart(items); err != nil {
		t.Fatalf("ReplaceCart() error = %v", err)
	}
	if diff := cmp.Diff(items, s.Cart()); diff != "" {
		t.Errorf("Cart() mismatch (-want +got):\n%s", diff)
	}

	if err := s.ReplaceCart([]any{}); err != nil {
		t.Fatalf("ReplaceCart(empty) error = %v", err)
	}
	if got := s.Cart(); len(got) != 0 {
		t.Errorf("Cart() = %v, want empty", got)
	}
}

func TestReplaceCartInvalidKeepsState(t *testing.T) {
	s := New()
	before := []any{map[string]any{"productId": 3.0, "quantity": 1.0}}
	if err := s.ReplaceCart(before); err != nil {
		t.Fatalf("ReplaceCart() error = %v", err)
	}

	for _, in := range []any{nil, "cart", map[string]any{"productId": 1.0}, 7.0} {
		if err := s.ReplaceCart(in); !failure.Is(err, InvalidInput) {
			t.Errorf("ReplaceCart(%v) error = %v, want %s", in, err, InvalidInput)
		}
	}
	if diff := cmp.Diff(before, s.Cart()); diff != "" {
		t.Errorf("cart changed after failed replace (-want +got):\n%s", diff)
	}
}

func TestAppendLog(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := New(WithClock(fixedClock(ts)))

	first := s.AppendLog("checkout", map[string]any{"total": 29800.0})
	second := s.AppendLog("view", nil)

	want := []EventLogRecord{
		{ID: 1, Event: "checkout", Data: map[string]any{"total": 29800.0}, Timestamp: ts.UnixMilli()},
		{ID: 2, Event: "view", Data: nil, Timestamp: ts.UnixMilli()},
	}
	if diff := cmp.Diff(want, []EventLogRecord{first, second}); diff != "" {
		t.Errorf("AppendLog() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.AllLogs()); diff != "" {
		t.Errorf("AllLogs() mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendLogEvictsOldest(t *testing.T) {
	s := New()
	for i := 0; i < DefaultLogCapacity+1; i++ {
		s.AppendLog(fmt.Sprintf("e%d", i), nil)
	}

	logs := s.AllLogs()
	if len(logs) != DefaultLogCapacity {
		t.Fatalf("len(AllLogs()) = %d, want %d", len(logs), DefaultLogCapacity)
	}
	if logs[0].Event != "e1" {
		t.Errorf("oldest event = %q, want %q", logs[0].Event, "e1")
	}
	if logs[len(logs)-1].Event != fmt.Sprintf("e%d", DefaultLogCapacity) {
		t.Errorf("newest event = %q", logs[len(logs)-1].Event)
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].ID <= logs[i-1].ID {
			t.Fatalf("ids not increasing at %d: %d <= %d", i, logs[i].ID, logs[i-1].ID)
		}
	}
	if lo.ContainsBy(logs, func(r EventLogRecord) bool { return r.Event == "e0" }) {
		t.Error("first appended entry still present")
	}
}

func TestLogs(t *testing.T) {
	s := New()
	for _, e := range []string{"a", "b", "c", "d"} {
		s.AppendLog(e, nil)
	}
	events := func(recs []EventLogRecord) []string {
		return lo.Map(recs, func(r EventLogRecord, _ int) string { return r.Event })
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "last three", limit: 3, want: []string{"b", "c", "d"}},
		{name: "more than stored", limit: 50, want: []string{"a", "b", "c", "d"}},
		{name: "zero falls back to default", limit: 0, want: []string{"a", "b", "c", "d"}},
		{name: "negative falls back to default", limit: -2, want: []string{"a", "b", "c", "d"}},
		{name: "one", limit: 1, want: []string{"d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, events(s.Logs(tt.limit))); diff != "" {
				t.Errorf("Logs(%d) mismatch (-want +got):\n%s", tt.limit, diff)
			}
		})
	}
}

func TestLogsDefaultLimit(t *testing.T) {
	s := New()
	for i := 0; i < 25; i++ {
		s.AppendLog(fmt.Sprintf("e%d", i), nil)
	}
	got := s.Logs(0)
	if len(got) != DefaultLogLimit {
		t.Fatalf("len(Logs(0)) = %d, want %d", len(got), DefaultLogLimit)
	}
	if got[0].Event != "e15" {
		t.Errorf("Logs(0)[0].Event = %q, want e15", got[0].Event)
	}
}

func TestLogsReturnCopy(t *testing.T) {
	s := New()
	s.AppendLog("checkout", map[string]any{"total": 100})

	s.Logs(1)[0].Data.(map[string]any)["total"] = 999
	s.AllLogs()[0].Data.(map[string]any)["extra"] = true

	if diff := cmp.Diff(map[string]any{"total": 100}, s.AllLogs()[0].Data); diff != "" {
		t.Errorf("stored log data aliased by caller (-want +got):\n%s", diff)
	}
}

func TestWithLogCapacity(t *testing.T) {
	s := New(WithLogCapacity(2))
	s.AppendLog("a", nil)
	s.AppendLog("b", nil)
	s.AppendLog("c", nil)

	got := lo.Map(s.AllLogs(), func(r EventLogRecord, _ int) int64 { return r.ID })
	if diff := cmp.Diff([]int64{2, 3}, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			s.AppendLog("tick", map[string]any{"i": i})
		}()
		go func() {
			defer wg.Done()
			_ = s.ReplaceCart([]any{map[string]any{"productId": float64(i), "quantity": 1.0}})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.MergeDesignTokens(map[string]any{"spacing": map[string]any{"small": "1px"}})
			_ = s.DesignTokens()
			_ = s.Logs(5)
		}()
	}
	wg.Wait()

	if got := len(s.AllLogs()); got != 50 {
		t.Errorf("len(AllLogs()) = %d, want 50", got)
	}
	if got := len(s.Cart()); got != 1 {
		t.Errorf("len(Cart()) = %d, want 1", got)
	}
}
