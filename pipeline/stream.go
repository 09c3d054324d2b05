package pipeline

import (
	"fmt"
	"time"

	"github.com/rustyeddy/ta/indicators"
	"github.com/rustyeddy/ta/series"
)

// Row is one output position of a stream, aligned with Pipeline.Columns.
type Row struct {
	Time   time.Time
	Values []float64
}

// Stream feeds a pipeline's indicators one observation at a time. After k
// pushes its rows equal the first k rows of Run over the same observations.
type Stream struct {
	inds    []indicators.Indicator
	width   int
	last    time.Time
	started bool
}

// NewStream returns a stream with fresh indicator state.
func (p *Pipeline) NewStream() *Stream {
	return &Stream{inds: p.build(), width: len(p.columns)}
}

// Push consumes o and returns the indicator values at its position.
func (s *Stream) Push(o series.Observation) (Row, error) {
	if s.started && !o.Time.After(s.last) {
		return Row{}, fmt.Errorf("%w: %s does not follow %s",
			ErrInvalidIndex, o.Time.Format(time.RFC3339), s.last.Format(time.RFC3339))
	}
	s.started = true
	s.last = o.Time

	row := Row{Time: o.Time, Values: make([]float64, 0, s.width)}
	for _, ind := range s.inds {
		ind.Update(o)
		row.Values = append(row.Values, ind.Values()...)
	}
	return row, nil
}

// Reset discards all indicator state.
func (s *Stream) Reset() {
	for _, ind := range s.inds {
		ind.Reset()
	}
	s.started = false
	s.last = time.Time{}
}
