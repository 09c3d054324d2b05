package indicators

import (
	"math"

	"github.com/rustyeddy/ta/series"
)

// Window is a fixed-capacity sliding buffer over the last Cap values pushed.
// Its statistics are undefined (missing) until the buffer is full, and while
// any buffered value is missing.
//
// Statistics are recomputed from the buffered values on each call, oldest
// first, so results never depend on how long the window has been running.
type Window struct {
	buf     []float64
	head    int // next write position
	size    int
	missing int // missing values currently buffered
}

// NewWindow returns an empty window holding up to period values.
func NewWindow(period int) *Window {
	checkPeriod(period)
	return &Window{buf: make([]float64, period)}
}

// Push appends v, evicting the oldest value when the window is full.
func (w *Window) Push(v float64) {
	if w.size == len(w.buf) {
		if series.IsMissing(w.buf[w.head]) {
			w.missing--
		}
	} else {
		w.size++
	}
	if series.IsMissing(v) {
		w.missing++
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
}

func (w *Window) Len() int   { return w.size }
func (w *Window) Cap() int   { return len(w.buf) }
func (w *Window) Full() bool { return w.size == len(w.buf) }

// Defined reports whether the window is full and holds no missing values.
func (w *Window) Defined() bool { return w.Full() && w.missing == 0 }

func (w *Window) Reset() {
	w.head = 0
	w.size = 0
	w.missing = 0
	for i := range w.buf {
		w.buf[i] = 0
	}
}

// each visits buffered values from oldest to newest.
func (w *Window) each(fn func(float64)) {
	start := (w.head - w.size + len(w.buf)) % len(w.buf)
	for i := 0; i < w.size; i++ {
		fn(w.buf[(start+i)%len(w.buf)])
	}
}

func (w *Window) Sum() float64 {
	if !w.Defined() {
		return series.Missing()
	}
	sum := 0.0
	w.each(func(v float64) { sum += v })
	return sum
}

func (w *Window) Mean() float64 {
	return w.Sum() / float64(len(w.buf))
}

// StdDev returns the sample (n-1) standard deviation of the window. A window
// of one value has no sample deviation and reports missing.
func (w *Window) StdDev() float64 {
	n := len(w.buf)
	if n < 2 {
		return series.Missing()
	}
	mean := w.Mean()
	if series.IsMissing(mean) {
		return mean
	}
	ss := 0.0
	w.each(func(v float64) {
		d := v - mean
		ss += d * d
	})
	return math.Sqrt(ss / float64(n-1))
}
