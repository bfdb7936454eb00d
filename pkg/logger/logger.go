// Package logger holds the process-wide zerolog logger of the identity
// service. main calls Init once; packages take a child via Component and
// receive it through their constructors.
package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	Level   string    // see ParseLevel; unknown values mean info
	Pretty  bool      // console output instead of JSON
	Output  io.Writer // defaults to os.Stdout
	Service string    // stamped as "service" when set
	Env     string    // stamped as "env" when set
}

var (
	current  atomic.Pointer[zerolog.Logger]
	initOnce sync.Once
)

// Init builds the process logger from opts. Only the first call has effect;
// later calls return the logger already in place.
func Init(opts Options) zerolog.Logger {
	initOnce.Do(func() {
		l := build(opts)
		current.Store(&l)
	})
	return Get()
}

// Get returns the process logger. It panics when Init has not run.
func Get() zerolog.Logger {
	l := current.Load()
	if l == nil {
		panic("logger: Get() called before Init()")
	}
	return *l
}

// Component returns a child of the process logger tagged component=name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset clears the process logger so the next Init rebuilds it. Tests only.
func Reset() {
	current.Store(nil)
	initOnce = sync.Once{}
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	fields := map[string]any{}
	if opts.Service != "" {
		fields["service"] = opts.Service
	}
	if opts.Env != "" {
		fields["env"] = opts.Env
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Fields(fields).
		Logger()
}
