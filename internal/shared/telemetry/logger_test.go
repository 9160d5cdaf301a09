package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	Info("page_rendered", map[string]any{"view": "resume", "err": errors.New("boom"), "msg": "ignored"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (%q)", err, buf.String())
	}
	if entry["level"] != "info" || entry["msg"] != "page_rendered" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["view"] != "resume" || entry["err"] != "boom" {
		t.Fatalf("unexpected fields %v", entry)
	}
	if entry["ts"] == "" {
		t.Fatal("expected timestamp")
	}
}

func TestSetupTracingWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "test", "")
	if err != nil {
		t.Fatalf("SetupTracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if Tracer() == nil {
		t.Fatal("expected tracer")
	}
}
