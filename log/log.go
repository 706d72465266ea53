package log

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu    sync.Mutex
	root  zerolog.Logger
	ready bool
)

// Logger returns a component logger tagged with the given name. Safe to call
// before InitGlobalLogger; such loggers inherit the default stderr writer.
func Logger(name string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		root = zerolog.New(os.Stderr).With().Timestamp().Logger()
		ready = true
	}
	return root.With().Str("component", name).Logger()
}

// InitGlobalLogger configures the process-wide log level and output. level is
// one of zerolog's level strings; unknown values fall back to info.
func InitGlobalLogger(hostname, level string) {
	mu.Lock()
	defer mu.Unlock()
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	root = zerolog.New(os.Stderr).With().Timestamp().Str("host", hostname).Logger()
	ready = true
}
