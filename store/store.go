package store

import (
	"maps"
	"sync"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

const (
	// DefaultLogCapacity is the maximum number of event log records kept
	DefaultLogCapacity = 1000

	// DefaultLogLimit is used by Logs when the requested limit is not positive
	DefaultLogLimit = 10
)

// DesignTokenSet maps token group names (colors, spacing, ...) to their values
type DesignTokenSet map[string]any

// EventLogRecord is a single entry of the event log
type EventLogRecord struct {
	ID        int64  `json:"id"`
	Event     string `json:"event"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Store is the process-lifetime demo state. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	tokens DesignTokenSet
	cart   []any
	logs   []EventLogRecord
	nextID int64

	capacity int
	now      func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces the clock used for log timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogCapacity overrides DefaultLogCapacity
func WithLogCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithDesignTokens replaces the seeded design tokens
func WithDesignTokens(tokens DesignTokenSet) Option {
	return func(s *Store) {
		s.tokens = cloneTokens(tokens)
	}
}

// DefaultDesignTokens returns the token set the storefront starts with
func DefaultDesignTokens() DesignTokenSet {
	return DesignTokenSet{
		"colors": map[string]any{
			"primary":    "#667eea",
			"secondary":  "#764ba2",
			"accent":     "#f093fb",
			"background": "#f5f5f5",
			"text":       "#333333",
		},
		"spacing": map[string]any{
			"small":  "0.5rem",
			"medium": "1rem",
			"large":  "2rem",
		},
		"borderRadius": map[string]any{
			"small":  "5px",
			"medium": "8px",
			"large":  "10px",
		},
	}
}

// New creates a store seeded with DefaultDesignTokens, an empty cart and an
// empty event log
func New(opts ...Option) *Store {
	s := &Store{
		tokens:   DefaultDesignTokens(),
		cart:     []any{},
		logs:     []EventLogRecord{},
		capacity: DefaultLogCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DesignTokens returns a copy of the current design tokens
func (s *Store) DesignTokens() DesignTokenSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTokens(s.tokens)
}

// MergeDesignTokens overwrites the top-level keys present in partial and
// returns the merged set. partial must be a JSON object.
func (s *Store) MergeDesignTokens(partial any) (DesignTokenSet, error) {
	p, ok := asObject(partial)
	if !ok {
		return nil, failure.New(InvalidInput,
			failure.Message("Invalid design tokens format"),
			failure.Context{"type": typeName(partial)},
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merged := cloneTokens(s.tokens)
	for k, v := range p {
		merged[k] = cloneValue(v)
	}
	s.tokens = merged
	return cloneTokens(merged), nil
}

// Cart returns a copy of the mirrored cart snapshot
func (s *Store) Cart() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.cart)
}

// ReplaceCart overwrites the cart snapshot with items. Items themselves are
// stored as given; only the outer sequence is checked.
func (s *Store) ReplaceCart(items any) error {
	list, ok := items.([]any)
	if !ok {
		return failure.New(InvalidInput,
			failure.Message("Invalid cart data format"),
			failure.Context{"type": typeName(items)},
		)
	}

	snapshot := cloneSlice(list)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = snapshot
	return nil
}

// AppendLog records an event, evicting the oldest record when the log is full
func (s *Store) AppendLog(event string, data any) EventLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.logs) >= s.capacity {
		s.logs = s.logs[len(s.logs)-s.capacity+1:]
	}
	s.nextID++
	rec := EventLogRecord{
		ID:        s.nextID,
		Event:     event,
		Data:      cloneValue(data),
		Timestamp: s.now().UnixMilli(),
	}
	s.logs = append(s.logs, rec)
	return rec
}

// Logs returns the most recent limit records in insertion order.
// A non-positive limit falls back to DefaultLogLimit.
func (s *Store) Logs(limit int) []EventLogRecord {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLogs(lo.Subset(s.logs, -limit, uint(limit)))
}

// AllLogs returns every stored record in insertion order
func (s *Store) AllLogs() []EventLogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLogs(s.logs)
}

func cloneLogs(logs []EventLogRecord) []EventLogRecord {
	return lo.Map(logs, func(rec EventLogRecord, _ int) EventLogRecord {
		rec.Data = cloneValue(rec.Data)
		return rec
	})
}

func asObject(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, o != nil
	case DesignTokenSet:
		return o, o != nil
	default:
		return nil, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, DesignTokenSet:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	default:
		return "unknown"
	}
}

func cloneTokens(t DesignTokenSet) DesignTokenSet {
	out := make(DesignTokenSet, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneSlice(list []any) []any {
	return lo.Map(list, func(v any, _ int) any {
		return cloneValue(v)
	})
}

// cloneValue copies JSON-shaped containers so callers never alias stored state
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case map[string]string:
		return maps.Clone(t)
	case []any:
		return cloneSlice(t)
	default:
		return v
	}
}
