// Package numbering computes per-year challan document numbers.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
)

// DefaultScheme is the document-numbering prefix convention.
const DefaultScheme = "JME"

// NextChallanNumber returns the next challan number for the given year as
// <scheme>/<year>/<n>, n zero-padded to 3 digits. n is the highest suffix
// already present for that scheme and year, plus one. It is never a count, so
// deleted records never free a number for reuse.
//
// Pure read-then-compute over the full record set: two concurrent
// allocations against a stale read can collide. Last write wins.
func NextChallanNumber(scheme string, year int, records []entity.DeliveryRecord) string {
	pattern := regexp.MustCompile(fmt.Sprintf(`^%s/%d/(\d+)$`, regexp.QuoteMeta(scheme), year))

	maxNum := 0
	for _, r := range records {
		m := pattern.FindStringSubmatch(r.ChallanNumber)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxNum {
			maxNum = n
		}
	}

	return fmt.Sprintf("%s/%d/%03d", scheme, year, maxNum+1)
}
