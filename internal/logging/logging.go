// Package logging wraps zerolog for the library's own output. Everything is
// off below warn until the embedding process calls Configure.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu    sync.Mutex
	level = zerolog.WarnLevel
	out   io.Writer = os.Stderr
)

// Configure sets the library's log level by zerolog level name ("debug",
// "info", ...); unknown names fall back to warn. Pretty switches to the
// console writer for interactive runs.
func Configure(name string, pretty bool) {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	mu.Lock()
	defer mu.Unlock()
	level = lvl
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	} else {
		out = os.Stderr
	}
}

// SetOutput redirects the library's log output, for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Component returns a logger tagged for one subsystem ("arena", "pool"),
// reflecting the configuration at call time. Cold paths fetch one per event
// rather than caching. The pointer is what zerolog's level starters are
// declared on.
func Component(name string) *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := zerolog.New(out).With().Timestamp().Str("component", name).Logger().Level(level)
	return &l
}
