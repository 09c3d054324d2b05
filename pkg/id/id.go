// Package id generates run identifiers.
//
// IDs are ULIDs: they sort lexicographically by creation time, so runs
// stored in SQLite come back in the order they were made.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	entropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a run ID stamped with the current time.
func New() string {
	return At(time.Now())
}

// At returns a run ID stamped with t (millisecond precision).
// IDs made within the same millisecond still increase.
func At(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t.UTC()), entropy).String()
}

// Time extracts the creation time of a run ID.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
