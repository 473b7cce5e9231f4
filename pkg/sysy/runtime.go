package sysy

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gosylib/pkg/emit"
	"gosylib/pkg/logging"
	"gosylib/pkg/profiler"
	"gosylib/pkg/scan"
)

// Runtime is the state shared by one run of a compiled program: the input
// cursor, the output sink and the timer registry. It is not safe for
// concurrent use; hosts running programs on several goroutines must give
// each its own Runtime or serialize access.
type Runtime struct {
	id      uuid.UUID
	cfg     config
	log     zerolog.Logger
	in      *scan.Scanner
	out     *emit.Writer
	prof    *profiler.Profiler
	started time.Time

	closed   bool
	closeErr error
}

// New performs the before-main step: it builds the runtime, records the
// start time and runs the WithBeforeMain hooks.
func New(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New()
	var log zerolog.Logger
	if cfg.logger != nil {
		log = *cfg.logger
	} else {
		lc := logging.DefaultConfig()
		lc.Level = cfg.logLevel
		lc.Output = cfg.diagnostics
		lc.Pretty = logging.IsTerminal(cfg.diagnostics)
		log = logging.NewWithComponent(lc, "sysy")
	}
	log = log.With().Str("run", id.String()).Logger()

	profOpts := []profiler.Option{
		profiler.WithClock(cfg.clock),
		profiler.WithPairing(cfg.pairing),
		profiler.WithLogger(log.With().Str("subsystem", "profiler").Logger()),
	}
	if cfg.source != "" {
		profOpts = append(profOpts, profiler.WithSource(cfg.source))
	}

	rt := &Runtime{
		id:   id,
		cfg:  cfg,
		log:  log,
		in:   scan.NewScanner(cfg.input),
		out:  emit.NewWriter(cfg.output),
		prof: profiler.New(profOpts...),
	}
	rt.started = cfg.clock.Now()

	log.Debug().Stringer("pairing", cfg.pairing).Msg("runtime initialized")
	for _, f := range cfg.beforeMain {
		f(rt)
	}
	return rt
}

func (rt *Runtime) ID() uuid.UUID                { return rt.id }
func (rt *Runtime) Input() *scan.Scanner         { return rt.in }
func (rt *Runtime) Output() *emit.Writer         { return rt.out }
func (rt *Runtime) Profiler() *profiler.Profiler { return rt.prof }

// Logger returns the run's logger. It writes to the diagnostic stream and
// carries the run ID.
func (rt *Runtime) Logger() *zerolog.Logger { return &rt.log }

// Elapsed returns the time since New.
func (rt *Runtime) Elapsed() time.Duration {
	return rt.cfg.clock.Now().Sub(rt.started)
}

// Close performs the after-main step: it flushes program output, writes the
// timing report to the diagnostic stream and runs the WithAfterMain hooks.
// Only the first call does anything; later calls return the same result.
//
// Only output flush failures are returned. Report and profile failures are
// logged, since timing diagnostics must not change a program's outcome.
func (rt *Runtime) Close() error {
	if rt.closed {
		return rt.closeErr
	}
	rt.closed = true
	total := rt.Elapsed()

	var errs []error
	if err := rt.out.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush output: %w", err))
	}

	for _, e := range rt.prof.Report() {
		if e.Running {
			rt.log.Warn().Int("line", e.Line).Msg("timer still running at exit")
		}
	}
	reportTotal := total
	if !rt.cfg.total {
		reportTotal = -1
	}
	if err := rt.prof.WriteReport(rt.cfg.diagnostics, reportTotal); err != nil {
		rt.log.Warn().Err(err).Msg("write timing report")
	}
	if rt.cfg.profileOut != nil {
		if err := rt.prof.WriteProfile(rt.cfg.profileOut, rt.started, total); err != nil {
			rt.log.Warn().Err(err).Msg("write timing profile")
		}
	}
	if f, ok := rt.cfg.diagnostics.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			rt.log.Warn().Err(err).Msg("flush diagnostics")
		}
	}

	rt.log.Debug().Dur("total", total).Int("timers", rt.prof.Len()).Msg("runtime finalized")
	for _, f := range rt.cfg.afterMain {
		f(rt)
	}

	rt.closeErr = errors.Join(errs...)
	return rt.closeErr
}

var _ io.Closer = (*Runtime)(nil)
