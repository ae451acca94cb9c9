// Package logging provides the console slog handler used by the CLI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jba/slog/withsupport"
)

// RenderIDKey is the attribute that ties log lines to one render
const RenderIDKey = "render_id"

// Options configures a ConsoleHandler
type Options struct {
	// Level reports the minimum level to log.
	// If nil, the handler uses slog.LevelInfo.
	Level slog.Leveler
	// OmitTime drops the timestamp column, for reproducible output in tests.
	OmitTime bool
}

// ConsoleHandler writes records as single lines: "15:04:05.000 INFO message key=value".
// Attributes inside groups are written as group.key=value.
type ConsoleHandler struct {
	opts Options
	with *withsupport.GroupOrAttrs

	mu *sync.Mutex
	w  io.Writer
}

// NewConsoleHandler returns a handler writing to w
func NewConsoleHandler(w io.Writer, opts *Options) *ConsoleHandler {
	h := &ConsoleHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

// New returns a logger writing to w at the given level
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewConsoleHandler(w, &Options{Level: level}))
}

// WithRenderID tags every record from the returned logger with a fresh render id
func WithRenderID(logger *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return logger.With(RenderIDKey, id), id
}

// ParseLevel accepts debug, info, warn or error in any case
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{h.opts, h.with.WithGroup(name), h.mu, h.w}
}

func (h *ConsoleHandler) WithAttrs(as []slog.Attr) slog.Handler {
	return &ConsoleHandler{h.opts, h.with.WithAttrs(as), h.mu, h.w}
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	if !h.opts.OmitTime && !r.Time.IsZero() {
		buf = r.Time.AppendFormat(buf, "15:04:05.000")
		buf = append(buf, ' ')
	}
	buf = append(buf, r.Level.String()...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	groups := h.with.Apply(func(groups []string, a slog.Attr) {
		buf = appendAttr(buf, groups, a)
	})
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, groups, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func appendAttr(buf []byte, groups []string, a slog.Attr) []byte {
	// Resolve the Attr's value before doing anything else.
	a.Value = a.Value.Resolve()
	// Ignore empty Attrs.
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return buf
		}
		// Groups with empty keys are inlined into their parents.
		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}
		for _, ga := range attrs {
			buf = appendAttr(buf, groups, ga)
		}
		return buf
	}

	buf = append(buf, ' ')
	for _, g := range groups {
		buf = append(buf, g...)
		buf = append(buf, '.')
	}
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindTime:
		// Write times in a standard way, without the monotonic time.
		return v.Time().AppendFormat(buf, time.RFC3339Nano)
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	default:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.AppendQuote(buf, s)
		}
		return append(buf, s...)
	}
}
