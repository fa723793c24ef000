package log

import (
	"io"
	"strings"
	"time"
)

// DefaultTimeLayout is the timestamp layout used unless [WithTimeLayout]
// selects another.
const DefaultTimeLayout = time.RFC3339

// Option adjusts the configuration of a [Logger] under construction.
type Option func(*config)

type config struct {
	output io.Writer
	stamp  func(time.Time) string
	level  Level
	format Format
	caller bool
	pretty bool
}

func defaults(w io.Writer) config {
	c := config{
		level:  DefaultLevel,
		format: DefaultFormat,
		pretty: true,
	}
	WithOutput(w)(&c)
	WithTimeLayout(DefaultTimeLayout)(&c)

	return c
}

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithOutput sends records to w. A nil w discards them.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel drops records less severe than level.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat selects the record encoding.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithCaller adds the source file and line of the logging call to records.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty colorizes records for a terminal. Text records lose their
// quoting and JSON records span multiple lines.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}

// WithTimeLayout sets the timestamp layout.
//
// The layout is matched, ignoring case and punctuation, against the names of
// the [time] package layouts ("RFC3339", "Kitchen", "StampMilli", ...) and a
// few short aliases ("ms", "us", "ns"). Unmatched layouts are passed to
// [time.Time.Format] unchanged. A blank layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	key := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case 'A' <= r && r <= 'Z':
			return r + 'a' - 'A'
		}

		return -1
	}, layout)

	if named, ok := namedLayouts[key]; ok {
		layout = named
	}

	return func(c *config) {
		if key == "" || layout == "" {
			c.stamp = nil

			return
		}

		c.stamp = func(t time.Time) string { return t.Format(layout) }
	}
}

var namedLayouts = map[string]string{
	"none":        "",
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"ms":          time.StampMilli,
	"stampmicro":  time.StampMicro,
	"us":          time.StampMicro,
	"stampnano":   time.StampNano,
	"ns":          time.StampNano,
}
