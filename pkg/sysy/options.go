package sysy

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"gosylib/pkg/profiler"
)

type config struct {
	input       io.Reader
	output      io.Writer
	diagnostics io.Writer
	logger      *zerolog.Logger
	logLevel    string
	clock       profiler.Clock
	pairing     profiler.Pairing
	source      string
	profileOut  io.Writer
	total       bool
	beforeMain  []func(*Runtime)
	afterMain   []func(*Runtime)
}

func defaultConfig() config {
	return config{
		input:       os.Stdin,
		output:      os.Stdout,
		diagnostics: os.Stderr,
		logLevel:    "warn",
		clock:       profiler.SystemClock,
		pairing:     profiler.PairExact,
		total:       true,
	}
}

// Option configures a Runtime.
type Option func(*config)

// WithInput replaces stdin as the input source.
func WithInput(r io.Reader) Option {
	return func(c *config) { c.input = r }
}

// WithOutput replaces stdout as the output sink.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithDiagnostics replaces stderr as the stream that receives the timing
// report and log messages.
func WithDiagnostics(w io.Writer) Option {
	return func(c *config) { c.diagnostics = w }
}

// WithLogger uses logger instead of one built on the diagnostic stream.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = &logger }
}

// WithLogLevel sets the level of the default logger. It has no effect
// together with WithLogger.
func WithLogLevel(level string) Option {
	return func(c *config) { c.logLevel = level }
}

func WithClock(clock profiler.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithPairing selects how stoptime calls find their starttime.
func WithPairing(p profiler.Pairing) Option {
	return func(c *config) { c.pairing = p }
}

// WithSource names the program's source file in exported profiles.
func WithSource(name string) Option {
	return func(c *config) { c.source = name }
}

// WithProfileOutput additionally writes the timers as a pprof profile to w
// when the runtime closes.
func WithProfileOutput(w io.Writer) Option {
	return func(c *config) { c.profileOut = w }
}

// WithoutTotal drops the TOTAL line from the timing report.
func WithoutTotal() Option {
	return func(c *config) { c.total = false }
}

// WithBeforeMain registers f to run once the runtime is initialized, before
// any program code.
func WithBeforeMain(f func(*Runtime)) Option {
	return func(c *config) { c.beforeMain = append(c.beforeMain, f) }
}

// WithAfterMain registers f to run after finalization.
func WithAfterMain(f func(*Runtime)) Option {
	return func(c *config) { c.afterMain = append(c.afterMain, f) }
}
