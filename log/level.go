package log

//go:generate go tool stringer --linecomment --type Level,Format --output level_string.go

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Level is the severity of a log record.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is used when no level, or an unrecognized one, is given.
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels yields the name of every level from least to most severe.
func Levels() iter.Seq[string] { return names(levels) }

// ParseLevel returns the level named by s, ignoring case.
//
// Besides the names yielded by [Levels], s may be any string accepted by
// [slog.Level.UnmarshalText], such as "INFO+2". Anything else yields
// [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// label is the upper-case level name written to log records. Levels between
// the named ones use slog's offset notation, such as "INFO+2".
func (l Level) label() string {
	if slices.Contains(levels, l) {
		return strings.ToUpper(l.String())
	}

	return slog.Level(l).String()
}

// Format selects how log records are encoded.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is used when no format, or an unrecognized one, is given.
// Resolution reports read best as plain lines, so text is preferred.
const DefaultFormat = FormatText

var formats = []Format{FormatText, FormatJSON}

// Formats yields the name of every format.
func Formats() iter.Seq[string] { return names(formats) }

// ParseFormat returns the format named by s, ignoring case and surrounding
// space. Anything else yields [DefaultFormat].
func ParseFormat(s string) Format {
	for _, f := range formats {
		if strings.EqualFold(strings.TrimSpace(s), f.String()) {
			return f
		}
	}

	return DefaultFormat
}

func names[T interface{ String() string }](all []T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range all {
			if !yield(v.String()) {
				return
			}
		}
	}
}
