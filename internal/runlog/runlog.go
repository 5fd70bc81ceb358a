package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a per-run, append-only decision log. Every skip, generation
// outcome, and error of a run lands in one timestamped file so a run can
// be diagnosed without rerunning it.
type Logger struct {
	*zap.SugaredLogger
	path string
	sync func() error
}

// New creates runtime/logs under workRoot and opens a fresh timestamped
// log file for this run.
func New(workRoot string) (*Logger, error) {
	dir := filepath.Join(workRoot, "runtime", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, "docgen-"+time.Now().Format("20060102-150405")+".log")

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{
		SugaredLogger: base.Sugar(),
		path:          path,
		sync:          base.Sync,
	}, nil
}

// Path returns the log file location, surfaced in the run report.
func (l *Logger) Path() string { return l.path }

// Close flushes buffered entries.
func (l *Logger) Close() error {
	if err := l.sync(); err != nil {
		if strings.Contains(err.Error(), "bad file descriptor") {
			return nil
		}
		return err
	}
	return nil
}
