package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/ta/series"
)

func sample(t *testing.T) *series.Frame {
	t.Helper()

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f := series.NewFrame([]time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)})
	nan := series.Missing()
	require.NoError(t, f.Set("sma_3", []float64{nan, nan, 11}))
	require.NoError(t, f.Set("obv", []float64{100, 250, 160}))
	return f
}

func TestCSVWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.Write(context.Background(), Run{}, sample(t)))
	require.NoError(t, w.Close())

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"time", "sma_3", "obv"},
		{"2024-01-02T00:00:00Z", "", "100.000000"},
		{"2024-01-03T00:00:00Z", "", "250.000000"},
		{"2024-01-04T00:00:00Z", "11.000000", "160.000000"},
	}, recs)
}

func TestCSVFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), Run{}, sample(t)))
	require.NoError(t, w.Close())

	f, err := series.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sma_3", "obv"}, f.Names())

	sma, _ := f.Column("sma_3")
	assert.True(t, series.IsMissing(sma[0]))
	assert.Equal(t, 11.0, sma[2])
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	_, err := NewCSV(filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSQLiteWriteAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "ta.db"))
	require.NoError(t, err)
	defer s.Close()

	run := Run{ID: "01HZX0000000000000000000AA", Source: "prices.csv", Created: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Write(ctx, run, sample(t)))

	got, f, err := s.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []string{"sma_3", "obv"}, f.Names())

	sma, _ := f.Column("sma_3")
	assert.True(t, series.IsMissing(sma[0]))
	assert.True(t, series.IsMissing(sma[1]))
	assert.Equal(t, 11.0, sma[2])

	obv, _ := f.Column("obv")
	assert.Equal(t, []float64{100, 250, 160}, obv)
	assert.True(t, f.Index()[0].Equal(sample(t).Index()[0]))
}

func TestSQLiteDuplicateRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "ta.db"))
	require.NoError(t, err)
	defer s.Close()

	run := Run{ID: "run-1", Source: "x", Created: time.Now()}
	require.NoError(t, s.Write(ctx, run, sample(t)))
	assert.Error(t, s.Write(ctx, run, sample(t)))

	_, _, err = s.LoadRun(ctx, "nope")
	assert.Error(t, err)
}

func TestCSVWriterRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	ts := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, w.WriteHeader([]string{"rsi_14"}))
	require.NoError(t, w.WriteRow(ts, []float64{series.Missing()}))
	require.NoError(t, w.WriteRow(ts.Add(time.Minute), []float64{55.5}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "time,rsi_14\n2024-01-02T09:30:00Z,\n2024-01-02T09:31:00Z,55.500000\n", buf.String())
}

func subSecond(t *testing.T) *series.Frame {
	t.Helper()

	ts := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	f := series.NewFrame([]time.Time{ts, ts.Add(500 * time.Millisecond), ts.Add(time.Second)})
	require.NoError(t, f.Set("obv", []float64{1, 2, 3}))
	return f
}

func TestSQLiteSubSecondOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "ta.db"))
	require.NoError(t, err)
	defer s.Close()

	want := subSecond(t)
	require.NoError(t, s.Write(ctx, Run{ID: "intraday", Source: "ticks.csv", Created: time.Now()}, want))

	_, got, err := s.LoadRun(ctx, "intraday")
	require.NoError(t, err)
	require.NoError(t, got.CheckIndex())
	require.Equal(t, want.Len(), got.Len())
	for i, ts := range want.Index() {
		assert.True(t, got.Index()[i].Equal(ts), "row %d: got %v want %v", i, got.Index()[i], ts)
	}
	obv, _ := got.Column("obv")
	assert.Equal(t, []float64{1, 2, 3}, obv)
}

func TestCSVSubSecondRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "intraday.csv")
	w, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), Run{}, subSecond(t)))
	require.NoError(t, w.Close())

	f, err := series.LoadCSV(path)
	require.NoError(t, err)
	require.NoError(t, f.CheckIndex())
	assert.Equal(t, 500*time.Millisecond, f.Index()[1].Sub(f.Index()[0]))
}
