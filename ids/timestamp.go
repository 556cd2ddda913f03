package ids

import (
	"fmt"
	"time"

	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// Timestamp is a (seconds, nanos) pair. Timestamps compare lexicographically
// by (Seconds, Nanos); Nanos must stay within [0, 1e9).
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

const nanosPerSecond = 1_000_000_000

// TimestampFromTime converts a time.Time, normalizing to a valid Nanos
// range.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos))
}

// Validate reports an error if Nanos is out of its legal range.
func (ts Timestamp) Validate() error {
	if ts.Nanos < 0 || ts.Nanos >= nanosPerSecond {
		return fmt.Errorf("ids: timestamp nanos %d out of range [0, %d)", ts.Nanos, nanosPerSecond)
	}
	return nil
}

// Before reports whether ts sorts strictly before o.
func (ts Timestamp) Before(o Timestamp) bool {
	if ts.Seconds != o.Seconds {
		return ts.Seconds < o.Seconds
	}
	return ts.Nanos < o.Nanos
}

func (ts Timestamp) Equal(o Timestamp) bool {
	return ts.Seconds == o.Seconds && ts.Nanos == o.Nanos
}

// Add returns ts advanced by d, normalizing any nanosecond overflow.
func (ts Timestamp) Add(d time.Duration) Timestamp {
	total := ts.Seconds*nanosPerSecond + int64(ts.Nanos) + d.Nanoseconds()
	return Timestamp{Seconds: total / nanosPerSecond, Nanos: int32(total % nanosPerSecond)}
}

func (ts Timestamp) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteSint(1, ts.Seconds)
	inner.WriteVarint(2, uint64(ts.Nanos))
	w.WriteNested(field, inner)
}

// Duration transports only a second count; spec.md §3 notes nanos are not
// carried for durations.
type Duration struct {
	Seconds int64
}

func (d Duration) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteSint(1, d.Seconds)
	w.WriteNested(field, inner)
}
