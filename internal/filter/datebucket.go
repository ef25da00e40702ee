package filter

import (
	"math"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// Bucket is a named recency classification for a last-contact timestamp.
type Bucket string

// Recognized date buckets.
const (
	BucketAll         Bucket = model.FilterAll
	BucketToday       Bucket = "today"
	BucketWeek        Bucket = "week"
	BucketMonth       Bucket = "month"
	BucketThreeMonths Bucket = "3months"
	BucketOlder       Bucket = "older"
)

// Clock supplies the current time; injected so bucket checks stay pure
// and testable.
type Clock func() time.Time

// InBucket reports whether ts falls inside the named bucket relative to now.
//
// "today" compares calendar dates in local time by truncating both sides to
// midnight, so a contact late yesterday evening is never miscounted as today.
// The day-based buckets use the ceiling of the absolute difference in whole
// days, which means a timestamp up to N*24h in the future also satisfies the
// N-day bucket. Unknown bucket names pass everything through.
func InBucket(ts time.Time, bucket Bucket, now time.Time) bool {
	if bucket == BucketAll {
		return true
	}

	diff := now.Sub(ts)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch bucket {
	case BucketToday:
		return midnight(ts).Equal(midnight(now))
	case BucketWeek:
		return days <= 7
	case BucketMonth:
		return days <= 30
	case BucketThreeMonths:
		return days <= 90
	case BucketOlder:
		return days > 90
	default:
		return true
	}
}

// midnight truncates t to the start of its calendar day in local time.
func midnight(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
