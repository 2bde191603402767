package inventory

import (
	"time"

	"github.com/erazemk/inventar/internal/model"
)

// AgeBucket aggregates items whose age falls into one named day range.
type AgeBucket struct {
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Quantity int    `json:"quantity"`
}

// ageRanges are the aging report ranges in days, inclusive of the low bound
// and exclusive of the high bound. Classification walks them in order.
var ageRanges = []struct {
	label     string
	low, high int
}{
	{"< 6 months", 0, 180},
	{"6-12 months", 180, 365},
	{"1-2 years", 365, 730},
	{"> 2 years", 730, 1 << 30},
}

// AgeDays returns the number of whole calendar days between the procurement
// date and today. Negative when the date is in the future.
func AgeDays(procured model.Date, today time.Time) int {
	return int(model.DateOf(today).Sub(procured.Time) / (24 * time.Hour))
}

// ApplyAges fills in the computed AgeDays on each item.
func ApplyAges(items []model.Item, today time.Time) {
	for i := range items {
		items[i].AgeDays = AgeDays(items[i].DateOfProcurement, today)
	}
}

// bucketIndex returns the index of the first range containing age.
// Ages beyond the last finite bound land in the final range; a negative
// age (future-dated procurement, blocked at validation but possible in
// pre-existing rows) clamps to the first.
func bucketIndex(age int) int {
	if age < 0 {
		return 0
	}
	for i, r := range ageRanges {
		if age >= r.low && age < r.high {
			return i
		}
	}
	return len(ageRanges) - 1
}

// SummarizeAges classifies every item into exactly one bucket and
// aggregates per-bucket item counts and quantity sums. All buckets are
// always present in the result, in display order, even when empty.
func SummarizeAges(items []model.Item, today time.Time) []AgeBucket {
	buckets := make([]AgeBucket, len(ageRanges))
	for i, r := range ageRanges {
		buckets[i].Label = r.label
	}

	for _, item := range items {
		i := bucketIndex(AgeDays(item.DateOfProcurement, today))
		buckets[i].Count++
		buckets[i].Quantity += item.Quantity
	}

	return buckets
}
