package chronos

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// processEpoch anchors the monotonic clock used for call ids.
var processEpoch = time.Now()

// steadyMicros returns the monotonic clock reading in microseconds.
func steadyMicros() int64 {
	return time.Since(processEpoch).Microseconds()
}

// HashTick hashes a microsecond tick into a decimal call id. The same tick
// always yields the same id.
func HashTick(tick int64) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(tick))
	return strconv.FormatInt(int64(xxhash.Sum64(buf[:])), 10)
}
