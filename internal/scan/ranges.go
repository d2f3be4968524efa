package scan

import (
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// FormatRanges renders a set of line numbers as comma-separated runs,
// e.g. "3-5,9". A nil or empty set renders as "".
func FormatRanges(bm *roaring.Bitmap) string {
	if bm == nil || bm.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	var start, prev uint32
	first := true

	flush := func() {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(start), 10))
		if prev != start {
			sb.WriteByte('-')
			sb.WriteString(strconv.FormatUint(uint64(prev), 10))
		}
	}

	it := bm.Iterator()
	for it.HasNext() {
		n := it.Next()
		switch {
		case first:
			start, prev, first = n, n, false
		case n == prev+1:
			prev = n
		default:
			flush()
			start, prev = n, n
		}
	}
	flush()
	return sb.String()
}
