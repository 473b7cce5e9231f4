package profiler

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var ErrUnbalancedTimer = errors.New("timer stopped without a matching start")

// Clock is the timing source. The default reads time.Now, whose monotonic
// component makes differences immune to wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var SystemClock Clock = ClockFunc(time.Now)

// Pairing decides which running timer a stop closes.
type Pairing uint8

const (
	// PairExact closes only the timer started on the same line.
	PairExact Pairing = iota
	// PairInnermost falls back to the most recently started running timer
	// when none is open on the stop's line. starttime() and stoptime()
	// expand __LINE__ at different call sites, so compiled programs need
	// this.
	PairInnermost
)

func (p Pairing) String() string {
	if p == PairInnermost {
		return "innermost"
	}
	return "exact"
}

type record struct {
	line     int
	stopLine int
	elapsed  time.Duration
	started  time.Time
	running  bool
	calls    int
	seq      uint64
}

// Entry is one line of the timing report.
type Entry struct {
	Line     int
	StopLine int
	Elapsed  time.Duration
	Calls    int
	Running  bool
}

// Profiler is the timer registry: records keyed by the line of their start
// call, reported in first-seen order. It is not safe for concurrent use.
type Profiler struct {
	clock   Clock
	pairing Pairing
	source  string
	log     zerolog.Logger

	records map[int]*record
	order   []int
	seq     uint64
}

type Option func(*Profiler)

func WithClock(c Clock) Option {
	return func(p *Profiler) {
		if c != nil {
			p.clock = c
		}
	}
}

func WithPairing(pairing Pairing) Option {
	return func(p *Profiler) { p.pairing = pairing }
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *Profiler) { p.log = log }
}

// WithSource names the source file in exported profiles.
func WithSource(name string) Option {
	return func(p *Profiler) { p.source = name }
}

func New(opts ...Option) *Profiler {
	p := &Profiler{
		clock:   SystemClock,
		source:  "main.sy",
		log:     zerolog.Nop(),
		records: make(map[int]*record),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start opens the timer for line. Starting a timer that is already running
// discards the open interval.
func (p *Profiler) Start(line int) {
	r, ok := p.records[line]
	if !ok {
		r = &record{line: line, stopLine: line}
		p.records[line] = r
		p.order = append(p.order, line)
	}
	r.calls++
	p.seq++
	r.seq = p.seq

	now := p.clock.Now()
	if r.running {
		p.log.Debug().Int("line", line).Dur("discarded", now.Sub(r.started)).Msg("timer restarted before stop")
	}
	r.started = now
	r.running = true
}

// Stop closes a running timer and adds the interval to its total. A stop
// that matches no running timer changes nothing; it is logged and reported
// as ErrUnbalancedTimer.
func (p *Profiler) Stop(line int) error {
	now := p.clock.Now()

	r := p.open(line)
	if r == nil {
		p.log.Warn().Int("line", line).Msg("stoptime without matching starttime")
		return fmt.Errorf("line %d: %w", line, ErrUnbalancedTimer)
	}

	d := now.Sub(r.started)
	if d < 0 {
		p.log.Warn().Int("line", r.line).Dur("interval", d).Msg("clock went backwards, interval dropped")
		d = 0
	}
	r.elapsed += d
	r.stopLine = line
	r.running = false
	r.started = time.Time{}
	return nil
}

func (p *Profiler) open(line int) *record {
	if r, ok := p.records[line]; ok && r.running {
		return r
	}
	if p.pairing != PairInnermost {
		return nil
	}
	var inner *record
	for _, r := range p.records {
		if r.running && (inner == nil || r.seq > inner.seq) {
			inner = r
		}
	}
	return inner
}

// Len returns the number of distinct timed lines.
func (p *Profiler) Len() int {
	return len(p.order)
}

// Report returns one entry per timer in first-seen order. Running timers
// contribute only their completed intervals.
func (p *Profiler) Report() []Entry {
	entries := make([]Entry, 0, len(p.order))
	for _, line := range p.order {
		r := p.records[line]
		entries = append(entries, Entry{
			Line:     r.line,
			StopLine: r.stopLine,
			Elapsed:  r.elapsed,
			Calls:    r.calls,
			Running:  r.running,
		})
	}
	return entries
}
