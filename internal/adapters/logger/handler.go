package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/relo/internal/ui/output"
	"go.trai.ch/relo/internal/ui/style"
)

// PrettyHandler is a slog.Handler for human consumption: one colored line
// per record, level glyphs, and flat key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// levelDecoration returns the glyph prefix and line color for a level.
func levelDecoration(level slog.Level) (glyph string, color termenv.Color) {
	switch level {
	case slog.LevelWarn:
		return style.Warning + " ", termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return style.Cross + " ", termenv.RGBColor(string(style.Red))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	glyph, color := levelDecoration(r.Level)

	var line strings.Builder
	line.WriteString(glyph)
	line.WriteString(r.Message)

	appendAttr := func(attr slog.Attr) bool {
		line.WriteByte(' ')
		if h.group != "" {
			line.WriteString(h.group)
			line.WriteByte('.')
		}
		line.WriteString(attr.Key)
		line.WriteByte('=')
		line.WriteString(attr.Value.String())
		return true
	}
	for _, attr := range h.attrs {
		appendAttr(attr)
	}
	r.Attrs(appendAttr)

	styled := h.out.String(line.String()).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs[:len(clone.attrs):len(clone.attrs)], attrs...)
	return clone
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.group = name
	return clone
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: h.group,
	}
}
