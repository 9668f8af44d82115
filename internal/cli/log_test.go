package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("loaded") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("wrote artifact") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("wrote artifact") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Rendered doc.json", "nodes", 10, "formats", "svg,json")

	out := buf.String()
	for _, want := range []string{"Rendered doc.json", "elapsed=", "nodes=10", "formats=svg,json"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext did not return the attached logger")
	}
	got.Info("serving", "listen", defaultListen)
	if !strings.Contains(buf.String(), "listen="+defaultListen) {
		t.Errorf("custom logger output = %q", buf.String())
	}
}
