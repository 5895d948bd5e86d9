package log

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestSlogHandlerForwardsRecords(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	SetLevel(Debug)
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	l := slog.New(NewSlogHandler("bridge")).With("backend", "cpu").WithGroup("gpu")
	l.Warn("fallback", "reason", "no adapter")

	out := buf.String()
	for _, want := range []string{"[bridge]", "WARNING", "fallback", "backend=cpu", "gpu.reason=no adapter"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
