package series

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedCSV = `Date,Close,Volume,Ticker
2024-01-01,10,100,ABC
2024-01-02,,150,ABC

2024-01-03,12,90,ABC
2024-01-04,13,,ABC
`

func drain(t *testing.T, f *Feed) []Observation {
	t.Helper()

	var out []Observation
	for {
		o, ok, err := f.Next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, o)
	}
}

func TestFeedNext(t *testing.T) {
	t.Parallel()

	f, err := NewFeed(strings.NewReader(feedCSV), FeedOptions{
		Price:  []string{"close", "price"},
		Volume: []string{"volume"},
	})
	require.NoError(t, err)

	price, volume := f.Columns()
	assert.Equal(t, "Close", price)
	assert.Equal(t, "Volume", volume)

	obs := drain(t, f)
	require.Len(t, obs, 4)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), obs[0].Time)
	assert.Equal(t, 10.0, obs[0].Price)
	assert.True(t, IsMissing(obs[1].Price))
	assert.Equal(t, 150.0, obs[1].Volume)
	assert.True(t, IsMissing(obs[3].Volume))
}

func TestFeedRange(t *testing.T) {
	t.Parallel()

	f, err := NewFeed(strings.NewReader(feedCSV), FeedOptions{
		Price: []string{"close"},
		From:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	obs := drain(t, f)
	require.Len(t, obs, 2)
	assert.Equal(t, 2, obs[0].Time.Day())
	assert.Equal(t, 3, obs[1].Time.Day())
	assert.True(t, IsMissing(obs[1].Volume), "volume column not requested")
}

func TestFeedAbsentColumns(t *testing.T) {
	t.Parallel()

	f, err := NewFeed(strings.NewReader(feedCSV), FeedOptions{Price: []string{"adj_close"}})
	require.NoError(t, err)

	price, volume := f.Columns()
	assert.Empty(t, price)
	assert.Empty(t, volume)

	o, ok, err := f.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, IsMissing(o.Price))
}

func TestFeedErrors(t *testing.T) {
	t.Parallel()

	_, err := NewFeed(strings.NewReader(""), FeedOptions{})
	assert.ErrorContains(t, err, "empty csv")

	_, err = NewFeed(strings.NewReader("close\n1\n"), FeedOptions{})
	assert.ErrorContains(t, err, "no time column")

	f, err := NewFeed(strings.NewReader("time,close\nyesterday,1\n"), FeedOptions{Price: []string{"close"}})
	require.NoError(t, err)
	_, _, err = f.Next()
	assert.ErrorContains(t, err, "line 2")

	f, err = NewFeed(strings.NewReader("time,close\n2024-01-01,abc\n"), FeedOptions{Price: []string{"close"}})
	require.NoError(t, err)
	_, _, err = f.Next()
	assert.ErrorContains(t, err, "close")
}

func TestOpenFeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(feedCSV), 0o644))

	f, err := OpenFeed(path, FeedOptions{Price: []string{"close"}})
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, drain(t, f), 4)

	_, err = OpenFeed(filepath.Join(t.TempDir(), "nope.csv"), FeedOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
