package pipeline

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogWriters_Streams(t *testing.T) {
	var ops, diag bytes.Buffer
	SetLogWriters(&ops, &diag, nil)
	defer SetLogWriters(nil, nil, nil)

	if opsLogger == nil || diagLogger == nil {
		t.Fatal("ops and diag loggers should be non-nil")
	}
	if traceLogger != nil {
		t.Fatal("traceLogger should be nil when passed nil writer")
	}

	opsf("sequence %s", "done")
	diagf("stage %s", "posture")
	tracef("frame %d", 3)

	if !strings.Contains(ops.String(), "sequence done") {
		t.Errorf("ops stream missing message, got %q", ops.String())
	}
	if !strings.Contains(diag.String(), "stage posture") {
		t.Errorf("diag stream missing message, got %q", diag.String())
	}
}

func TestSetLogWriters_Disable(t *testing.T) {
	SetLogWriters(nil, nil, nil)
	defer SetLogWriters(nil, nil, nil)

	if opsLogger != nil || diagLogger != nil || traceLogger != nil {
		t.Fatal("all loggers should be nil after SetLogWriters(nil, nil, nil)")
	}
	// Must not panic with every stream disabled.
	opsf("dropped")
	diagf("dropped")
	tracef("dropped")
}

func TestNewLogger(t *testing.T) {
	if logger := newLogger("[test] ", nil); logger != nil {
		t.Error("expected nil logger for nil writer")
	}

	var buf bytes.Buffer
	logger := newLogger("[test] ", &buf)
	if logger == nil {
		t.Fatal("expected non-nil logger for non-nil writer")
	}
	logger.Printf("hello %d", 42)
	if !strings.Contains(buf.String(), "hello 42") {
		t.Errorf("expected output to contain 'hello 42', got %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "[test] ") {
		t.Errorf("expected prefix on output, got %q", buf.String())
	}
}
