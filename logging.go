package main

import (
	"context"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

// Writes one line per record: time, level, message and the attributes as key=value.
type LogHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	group string
	mu    *sync.Mutex
	out   io.Writer
}

func NewLogHandler(o io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &LogHandler{
		out:   o,
		level: level,
		mu:    &sync.Mutex{},
	}
}

func NewLogger(o io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewLogHandler(o, &slog.HandlerOptions{Level: level}))
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefixed := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	prefixed = append(prefixed, h.attrs...)
	for _, a := range attrs {
		prefixed = append(prefixed, slog.Attr{Key: h.group + a.Key, Value: a.Value})
	}
	return &LogHandler{level: h.level, attrs: prefixed, group: h.group, out: h.out, mu: h.mu}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &LogHandler{level: h.level, attrs: h.attrs, group: h.group + name + ".", out: h.out, mu: h.mu}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, r.Level.String(), r.Message}
	for _, a := range h.attrs {
		strs = append(strs, _FormatAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, _FormatAttr(slog.Attr{Key: h.group + a.Key, Value: a.Value}))
		return true
	})
	b := []byte(strings.Join(strs, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(b)
	return err
}

func _FormatAttr(a slog.Attr) string {
	value := a.Value.Resolve().String()
	if strings.ContainsAny(value, " \t\"=") {
		value = "\"" + strings.ReplaceAll(value, "\"", "\\\"") + "\""
	}
	return a.Key + "=" + value
}
