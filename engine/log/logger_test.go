package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLoggerWritesModuleAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	SetLevel(Info)
	defer SetLevel(Notice)

	New("test-module").Infof("hello %d", 42)

	out := buf.String()
	if !strings.Contains(out, "[test-module]") {
		t.Errorf("missing module name in %q", out)
	}
	if !strings.Contains(out, "hello 42") {
		t.Errorf("missing message in %q", out)
	}
}

func TestSetLevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	SetLevel(Warning)
	defer SetLevel(Notice)

	logger := New("filter")
	logger.Info("dropped")
	logger.Warning("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered at warning level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warning record missing: %q", out)
	}
	if Enabled(Debug) {
		t.Errorf("debug should be disabled at warning level")
	}
	if !Enabled(Error) {
		t.Errorf("error should be enabled at warning level")
	}
}
