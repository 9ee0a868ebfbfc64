package schedule

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order. Month, day and hour may be one or two
// digits. Every timestamp is read as UTC.
var dateLayouts = []string{
	"1/2/2006-15:04:05",
	"1/2/2006-15:04",
	"1/2/2006-15",
	"1/2/2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseDate parses a model timestamp such as "03/10/2001-00" or
// "2001-03-10T06:00:00".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
