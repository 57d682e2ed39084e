package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestLevels(t *testing.T) {
	buf := capture(t, LevelInfo)
	Debug("hidden")
	Info("shown", "id", "todo-1")
	Error("failed", errors.New("boom"), "op", "save")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug should be filtered at info: %q", out)
	}
	if !strings.Contains(out, "[INFO] shown id=todo-1") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] failed err=boom op=save") {
		t.Fatalf("missing error line: %q", out)
	}

	buf = capture(t, LevelError)
	Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at error: %q", buf.String())
	}
}

func TestFormatKVs(t *testing.T) {
	got := formatKVs("title", "pay rent", 42, "skipped", "n", 3, "dangling")
	if got != ` title="pay rent" n=3` {
		t.Fatalf("unexpected kvs %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, " ERROR ": LevelError, "info": LevelInfo, "": LevelInfo, "loud": LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s want %s", in, got, want)
		}
	}
}
