// Package ops implements the browse operations: List, Search, Grep,
// View, Stats, and Export. Each operation takes an Input struct and
// returns an Output struct over a fresh store snapshot.
package ops

import (
	"strings"
	"time"
)

// DefaultPreviewContext is the match-context window for grep previews.
const DefaultPreviewContext = 100

// timestampLayouts are the accepted session timestamp shapes. Claude
// writes RFC3339 with a Z suffix; older transcripts omit the zone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a session timestamp, normalizing a trailing Z
// to an explicit zero UTC offset.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a session timestamp as "YYYY-MM-DD HH:MM".
// Anything unparsable comes back unchanged.
func FormatDate(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format("2006-01-02 15:04")
}

// truncateRunes clips s to max runes without a marker.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
