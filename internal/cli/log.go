package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseLevel accepts the deployed job's level names (DEBUG, INFO, WARNING,
// ERROR, CRITICAL) as well as charmbracelet/log names.
func parseLevel(s string) (log.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WARNING":
		return log.WarnLevel, nil
	case "CRITICAL":
		return log.FatalLevel, nil
	case "":
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Census pass complete (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks writes library events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRunStart(_ context.Context, runID string) {
	h.logger.Debug("run started", "run", runID)
}

func (h logHooks) OnRowSkipped(_ context.Context, path, reason string) {
	h.logger.Debug("row skipped", "path", path, "reason", reason)
}

func (h logHooks) OnManifestParsed(_ context.Context, eco, path string, deps int, d time.Duration) {
	h.logger.Debug("manifest parsed", "ecosystem", eco, "path", path, "deps", deps, "duration", d)
}

func (h logHooks) OnPersist(_ context.Context, key string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("persist failed", "key", key, "duration", d, "err", err)
		return
	}
	h.logger.Debug("persisted", "key", key, "duration", d)
}

func (h logHooks) OnRunComplete(_ context.Context, runID string, rows int, d time.Duration, err error) {
	h.logger.Debug("run complete", "run", runID, "rows", rows, "duration", d, "failed", err != nil)
}

func (h logHooks) OnCacheHit(_ context.Context, ns string) {
	h.logger.Debug("cache hit", "namespace", ns)
}

func (h logHooks) OnCacheMiss(_ context.Context, ns string) {
	h.logger.Debug("cache miss", "namespace", ns)
}

func (h logHooks) OnCacheSet(_ context.Context, ns string, size int) {
	h.logger.Debug("cache set", "namespace", ns, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
