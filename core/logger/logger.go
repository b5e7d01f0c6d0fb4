package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log  zerolog.Logger
	once sync.Once
)

func init() {
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures the global logger level and output. Safe to call once at
// startup; subsequent calls are no-ops.
func Init(level string, pretty bool) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}

		out := zerolog.New(os.Stderr)
		if pretty {
			out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		}

		log = out.Level(lvl).With().Timestamp().Logger()
	})
}

func Debug(msg string, args ...any) {
	withFields(log.Debug(), args).Msg(msg)
}

func Info(msg string, args ...any) {
	withFields(log.Info(), args).Msg(msg)
}

func Warn(msg string, args ...any) {
	withFields(log.Warn(), args).Msg(msg)
}

func Error(msg string, args ...any) {
	withFields(log.Error(), args).Msg(msg)
}

// withFields attaches variadic key/value pairs to an event. A dangling
// trailing value (usually a bare error) is logged under "error".
func withFields(e *zerolog.Event, args []any) *zerolog.Event {
	n := len(args)
	for i := 0; i+1 < n; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, args[i+1])
	}
	if n%2 == 1 {
		if err, ok := args[n-1].(error); ok {
			e = e.Err(err)
		} else {
			e = e.Interface("error", args[n-1])
		}
	}
	return e
}
