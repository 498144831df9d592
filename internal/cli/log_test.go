package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at error level", log.ErrorLevel, func(l *log.Logger) { l.Warn("test") }, false},
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

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"INFO", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARNING", log.WarnLevel, false},
		{"warn", log.WarnLevel, false},
		{"ERROR", log.ErrorLevel, false},
		{"CRITICAL", log.FatalLevel, false},
		{"", log.InfoLevel, false},
		{"chatty", log.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("census pass complete")

	if !strings.Contains(buf.String(), "census pass complete (") {
		t.Errorf("progress.done() output = %q", buf.String())
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnRowSkipped(ctx, "a/invalid.file", "no matching ecosystem")
	h.OnPersist(ctx, "big-query-data/collated.json", time.Second, errors.New("denied"))
	h.OnCacheHit(ctx, "pypi")

	out := buf.String()
	for _, want := range []string{"row skipped", "a/invalid.file", "persist failed", "denied", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	quiet := logHooks{logger: newLogger(&buf, log.InfoLevel)}
	quiet.OnManifestParsed(ctx, "npm", "package.json", 3, time.Millisecond)
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level, got %q", buf.String())
	}
}
