package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{" warn ", LevelWarn, true},
		{"error", LevelError, true},
		{"trace", LevelInfo, false},
		{"", LevelInfo, false},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Fatalf("json: %v %v", f, err)
	}
	if f, err := ParseFormat("Text"); err != nil || f != FormatText {
		t.Fatalf("text: %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, FormatText, &buf)
	l.Info("hidden")
	l.Warn("shown", "key", "value")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestJSONTimestamp(t *testing.T) {
	var buf bytes.Buffer
	New(LevelDebug, FormatJSON, &buf).Debug("compile", "device", "chip")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	ts, ok := entry["time"].(string)
	if !ok {
		t.Fatalf("missing time: %v", entry)
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Fatalf("time %q is not RFC3339: %v", ts, err)
	}
	if entry["device"] != "chip" || entry["level"] != "DEBUG" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestSetup(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	if err := Setup("debug", "text", &buf); err != nil {
		t.Fatal(err)
	}
	slog.Debug("installed")
	if !strings.Contains(buf.String(), "installed") {
		t.Fatalf("default logger not installed: %q", buf.String())
	}
	if err := Setup("loud", "text", &buf); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
	if err := Setup("info", "yaml", &buf); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}
