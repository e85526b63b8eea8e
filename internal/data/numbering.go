package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GenerateNumber produces the next request number for the reference date,
// in the form REQ-YYYYMMDD-####. The sequence is scoped to the day prefix:
// the highest existing suffix for that prefix plus one.
//
// Two offline devices can mint the same number for the same day and both
// survive sync; there is no server-side arbitration. Known limitation.
func GenerateNumber(existing []string, reference time.Time) string {
	prefix := "REQ-" + reference.Format("20060102") + "-"

	max := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}

	return fmt.Sprintf("%s%04d", prefix, max+1)
}
