package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/reuse/internal/ui/output"
	"go.trai.ch/reuse/internal/ui/style"
)

// PrettyHandler writes one colored line per record: an icon for the level, the message,
// then key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// attrs holds the attributes added through WithAttrs, already rendered.
	attrs string
	// prefix is the dotted group path applied to keys of later attributes.
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, or to stderr when w is nil.
// The level is read on every record, so a *slog.LevelVar can be changed later.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

type levelMark struct {
	min   slog.Level
	icon  string
	color lipgloss.Color
}

// marks is ordered from the most to the least severe level.
var marks = []levelMark{
	{slog.LevelError, style.Cross, style.Red},
	{slog.LevelWarn, style.Warning, style.Yellow},
	{slog.LevelInfo, "", style.Slate},
}

var debugMark = levelMark{icon: style.Dot, color: style.Iris}

func markFor(level slog.Level) levelMark {
	for _, m := range marks {
		if level >= m.min {
			return m
		}
	}
	return debugMark
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark := markFor(r.Level)

	var line strings.Builder
	if mark.icon != "" {
		line.WriteString(mark.icon + " ")
	}
	line.WriteString(r.Message)
	line.WriteString(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&line, h.prefix, attr)
		return true
	})

	styled := h.out.String(line.String()).Foreground(termenv.RGBColor(string(mark.color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var rendered strings.Builder
	rendered.WriteString(h.attrs)
	for _, attr := range attrs {
		appendAttr(&rendered, h.prefix, attr)
	}

	clone := *h
	clone.attrs = rendered.String()
	return &clone
}

// WithGroup returns a new Handler qualifying the keys of later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = qualify(h.prefix, name)
	return &clone
}

// appendAttr writes " key=value" to b. Group values are flattened into dotted keys.
func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		nested := prefix
		if attr.Key != "" {
			nested = qualify(prefix, attr.Key)
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, nested, member)
		}
		return
	}

	b.WriteString(" " + qualify(prefix, attr.Key) + "=" + attr.Value.String())
}

func qualify(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
