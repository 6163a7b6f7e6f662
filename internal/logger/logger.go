// Package logger sets up structured logging to a rotating file. Nothing is
// written to the terminal, which the TUI owns while it runs.
package logger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured warning or error, shown in the TUI status bar
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// recent is a fixed-size ring of the latest warnings and errors
type recent struct {
	mu      sync.Mutex
	entries []Entry
	head    int
	count   int
}

func newRecent(size int) *recent {
	return &recent{entries: make([]Entry, size)}
}

func (r *recent) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

func (r *recent) all() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, r.count)
	size := len(r.entries)
	for i := range r.count {
		out[i] = r.entries[(r.head-r.count+i+size)%size]
	}
	return out
}

// captureHandler records warnings and errors before passing them on
type captureHandler struct {
	inner slog.Handler
	ring  *recent
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.ring.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), ring: h.ring}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), ring: h.ring}
}

var (
	// Path is the current log file
	Path string

	writer *lumberjack.Logger
	ring   = newRecent(50)
)

// DefaultPath returns the log file location under the XDG state dir
func DefaultPath() (string, error) {
	return xdg.StateFile("ezquery/ezquery.log")
}

// Init installs a JSON logger over a rotating file as the slog default and
// returns it. An empty path uses DefaultPath.
func Init(path string, debug bool) (*slog.Logger, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	Path = path

	writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	l := New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l, nil
}

// New wraps h so that warnings and errors are also kept for Recent
func New(h slog.Handler) *slog.Logger {
	return slog.New(&captureHandler{inner: h, ring: ring})
}

// Recent returns the latest captured warnings and errors, oldest first
func Recent() []Entry {
	return ring.all()
}

// Close flushes and closes the log file
func Close() error {
	if writer == nil {
		return nil
	}
	return writer.Close()
}
