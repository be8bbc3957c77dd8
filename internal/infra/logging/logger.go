// Package logging provides file-based logging for initiative.
// Entries go to a global log (<data dir>/logs/initiative.log) and, when they
// concern one encounter, to that encounter's log (logs/encounter-N.log).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/initiative/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Attribute keys understood by lineHandler.
const (
	encounterKey = "encounter"
	categoryKey  = "category"
)

// Logger routes encounter activity to per-file slog loggers.
// Fields are ordered to minimize memory padding.
type Logger struct {
	now        func() time.Time
	global     *slog.Logger
	encounters map[int]*slog.Logger
	files      []*os.File
	dataDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes below dataDir/logs.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir:    dataDir,
		level:      level,
		now:        time.Now,
		encounters: make(map[int]*slog.Logger),
	}
}

// ParseLevel parses a log level string into slog.Level.
// Unknown values fall back to info.
func ParseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Info logs an info message.
func (l *Logger) Info(encounterID int, category, msg string) {
	l.log(slog.LevelInfo, encounterID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(encounterID int, category, msg string) {
	l.log(slog.LevelDebug, encounterID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(encounterID int, category, msg string) {
	l.log(slog.LevelWarn, encounterID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(encounterID int, category, msg string) {
	l.log(slog.LevelError, encounterID, category, msg)
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
	}
	l.files = nil
	l.global = nil
	clear(l.encounters)
	return lastErr
}

// log writes an entry to the global log and, for encounterID > 0, to the
// encounter log as well.
func (l *Logger) log(level slog.Level, encounterID int, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}

	r := slog.NewRecord(l.now(), level, msg, 0)
	r.AddAttrs(slog.Int(encounterKey, encounterID), slog.String(categoryKey, category))

	ctx := context.Background()
	if g, err := l.globalLogger(); err == nil {
		_ = g.Handler().Handle(ctx, r)
	}
	if encounterID > 0 {
		if e, err := l.encounterLogger(encounterID); err == nil {
			_ = e.Handler().Handle(ctx, r)
		}
	}
}

func (l *Logger) globalLogger() (*slog.Logger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.global != nil {
		return l.global, nil
	}
	lg, err := l.openLocked(domain.GlobalLogPath(l.dataDir))
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.global = lg
	return lg, nil
}

func (l *Logger) encounterLogger(id int) (*slog.Logger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lg, ok := l.encounters[id]; ok {
		return lg, nil
	}
	lg, err := l.openLocked(domain.EncounterLogPath(l.dataDir, id))
	if err != nil {
		return nil, fmt.Errorf("open encounter log file: %w", err)
	}
	l.encounters[id] = lg
	return lg, nil
}

// openLocked opens path for appending and wraps it in a slog.Logger.
// Caller must hold l.mu.
func (l *Logger) openLocked(path string) (*slog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	// Log files are append-only and need read access by repository users
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, err
	}
	l.files = append(l.files, f)
	return slog.New(newLineHandler(f, l.level)), nil
}

// lineHandler is a slog.Handler writing one bracketed line per record:
//
//	[2025-12-30 09:32:51] [INFO] [encounter-1] [category] message
type lineHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	level slog.Level
}

func newLineHandler(w io.Writer, level slog.Level) *lineHandler {
	return &lineHandler{w: w, level: level, mu: &sync.Mutex{}}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	encounterID := 0
	category := ""
	var extra []string

	visit := func(a slog.Attr) bool {
		switch a.Key {
		case encounterKey:
			encounterID = int(a.Value.Int64())
		case categoryKey:
			category = a.Value.String()
		default:
			extra = append(extra, a.Key+"="+a.Value.String())
		}
		return true
	}
	for _, a := range h.attrs {
		visit(a)
	}
	r.Attrs(visit)

	line := formatLine(r.Time, r.Level, encounterID, category, r.Message)
	if len(extra) > 0 {
		line = strings.TrimSuffix(line, "\n") + " " + strings.Join(extra, " ") + "\n"
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup is a no-op; the line format has no notion of groups.
func (h *lineHandler) WithGroup(string) slog.Handler {
	return h
}

// formatLine formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [encounter-1] [category] message
func formatLine(t time.Time, level slog.Level, encounterID int, category, msg string) string {
	scope := "global"
	if encounterID > 0 {
		scope = fmt.Sprintf("encounter-%d", encounterID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
