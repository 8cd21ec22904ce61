package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(Config{Format: "json", Output: &buf})
	l.Info("generation.advanced", "generation", 2)

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "generation.advanced" {
		t.Fatalf("unexpected msg %v", rec["msg"])
	}
	if L() != l {
		t.Fatalf("L should return the installed logger")
	}
}

func TestSetupDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(Config{Output: &buf})
	l.Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug records should be dropped at info level")
	}

	buf.Reset()
	l = Setup(Config{Debug: true, Output: &buf})
	l.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug record, got %q", buf.String())
	}
}
