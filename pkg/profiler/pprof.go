package profiler

import (
	"fmt"
	"io"
	"time"

	"github.com/google/pprof/profile"
)

// Profile converts the registry into a pprof profile with one sample per
// timed line. start and total describe the whole run.
func (p *Profiler) Profile(start time.Time, total time.Duration) *profile.Profile {
	prof := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "calls", Unit: "count"},
			{Type: "elapsed", Unit: "nanoseconds"},
		},
		DefaultSampleType: "elapsed",
		PeriodType:        &profile.ValueType{Type: "elapsed", Unit: "nanoseconds"},
		Period:            1,
		TimeNanos:         start.UnixNano(),
		DurationNanos:     total.Nanoseconds(),
	}

	for i, e := range p.Report() {
		id := uint64(i + 1)
		fn := &profile.Function{
			ID:         id,
			Name:       fmt.Sprintf("timer@%d-%d", e.Line, e.StopLine),
			SystemName: fmt.Sprintf("_sysy_starttime:%d", e.Line),
			Filename:   p.source,
			StartLine:  int64(e.Line),
		}
		loc := &profile.Location{
			ID:   id,
			Line: []profile.Line{{Function: fn, Line: int64(e.Line)}},
		}
		prof.Function = append(prof.Function, fn)
		prof.Location = append(prof.Location, loc)
		prof.Sample = append(prof.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{int64(e.Calls), e.Elapsed.Nanoseconds()},
			NumLabel: map[string][]int64{
				"start_line": {int64(e.Line)},
				"stop_line":  {int64(e.StopLine)},
			},
		})
	}
	return prof
}

// WriteProfile writes the registry as a gzip-compressed pprof protobuf.
func (p *Profiler) WriteProfile(w io.Writer, start time.Time, total time.Duration) error {
	prof := p.Profile(start, total)
	if err := prof.CheckValid(); err != nil {
		return fmt.Errorf("build timing profile: %w", err)
	}
	return prof.Write(w)
}
