package models

import (
	"strings"
	"time"
)

// Result is the outcome of one counter check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the whole seconds until the window frees a slot, at least 1.
func (r *Result) RetryAfter(now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}

// Key joins segments with ':' after escaping ':' inside each segment, so an
// identifier like "a:b" cannot spill into a neighbouring bucket.
func Key(segments ...string) string {
	clean := make([]string, len(segments))
	for i, s := range segments {
		clean[i] = SanitizeKeySegment(s)
	}
	return strings.Join(clean, ":")
}

func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
