package log

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	t.Cleanup(InitLogger)

	Debug("hidden")
	Info("shown", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "shown" || rec["key"] != "value" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestTransportLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, true)
	t.Cleanup(InitLogger)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer ts.Close()

	client := &http.Client{Transport: Transport(nil)}
	resp, err := client.Get(ts.URL + "/ping")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()

	out := buf.String()
	if !strings.Contains(out, `"msg":"HTTP request"`) || !strings.Contains(out, `"status_code":418`) {
		t.Errorf("transport did not log request/response: %s", out)
	}
}
