package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}

			switch a.Key {
			case slog.TimeKey:
				if c.stamp == nil {
					return slog.Attr{}
				}

				a.Value = slog.StringValue(c.stamp(a.Value.Time()))

			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(Level(l).label())
				}
			}

			return a
		},
	}

	switch {
	case c.pretty:
		return &prettyHandler{
			out:   c.output,
			mu:    new(sync.Mutex),
			opts:  *opts,
			stamp: c.stamp,
			json:  c.format == FormatJSON,
		}

	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)

	default:
		return slog.NewTextHandler(c.output, opts)
	}
}

// Terminal colors used by pretty output.
const (
	ansiReset   = "\033[0m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiGray    = "\033[90m"
)

// prettyHandler writes colorized records in either a key=value line or an
// indented JSON-like block. Groups are flattened into dotted keys.
type prettyHandler struct {
	out   io.Writer
	mu    *sync.Mutex
	opts  slog.HandlerOptions
	stamp func(time.Time) string
	json  bool
	attrs []slog.Attr
	group string
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if h.stamp != nil && !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.group, a)

		return true
	})

	var buf bytes.Buffer

	sep, assign := " ", "="
	if h.json {
		sep, assign = ",\n  ", ": "
		buf.WriteString("{\n  ")
	}

	for i, a := range fields {
		if i > 0 {
			buf.WriteString(sep)
		}

		buf.WriteString(ansiGray + a.Key + ansiReset + assign)
		buf.WriteString(h.paint(a.Value))
	}

	if h.json {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)

	for _, a := range attrs {
		c.attrs = flatten(c.attrs, h.group, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group += name + "."

	return &c
}

// flatten appends a to fields, prefixing its key with group and expanding
// group values into one field per member.
func flatten(fields []slog.Attr, group string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		if a.Key == "" {
			return fields
		}

		a.Key = group + a.Key

		return append(fields, a)
	}

	if a.Key != "" {
		group += a.Key + "."
	}

	for _, member := range a.Value.Group() {
		fields = flatten(fields, group, member)
	}

	return fields
}

func (h *prettyHandler) paint(v slog.Value) string {
	color, text := ansiCyan, v.String()

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		color = ansiYellow

	case slog.KindBool:
		color = ansiRed
		if v.Bool() {
			color = ansiGreen
		}

	case slog.KindDuration:
		color = ansiMagenta

	case slog.KindTime:
		color = ansiBlue
		if h.stamp != nil {
			text = h.stamp(v.Time())
		}

	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			color, text = ansiGray, "null"

		case slog.Level:
			text = Level(a).label()

			switch {
			case a >= slog.LevelError:
				color = ansiRed
			case a >= slog.LevelWarn:
				color = ansiYellow
			case a >= slog.LevelInfo:
				color = ansiGreen
			default:
				color = ansiBlue
			}
		}
	}

	return color + text + ansiReset
}
