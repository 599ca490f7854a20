package services

import (
	"math"
	"strings"
	"time"

	"github.com/alloylab/apperrors"
)

// DefaultWindow is the report window used when no start date is given
const DefaultWindow = 30 * 24 * time.Hour

// endOfDay extends an explicit end date so date-only input covers the whole day
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseTimestamp parses ISO-8601 dates and timestamps. Values without a zone
// are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.Validation("invalid date %q, expected YYYY-MM-DD or an ISO-8601 timestamp", value)
}

// ResolveWindow turns optional start/end query values into an inclusive range.
// No start means 30 days before now; no end means now; an explicit end is
// moved to 23:59:59 of that day.
func ResolveWindow(start, end string, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()

	startAt := now.Add(-DefaultWindow)
	if start != "" {
		parsed, err := ParseTimestamp(start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		startAt = parsed
	}

	endAt := now
	if end != "" {
		parsed, err := ParseTimestamp(end)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		endAt = parsed.Add(endOfDay)
	}

	if startAt.After(endAt) {
		return time.Time{}, time.Time{}, apperrors.Validation("start %s is after end %s",
			startAt.Format(dateLayout), endAt.Format(dateLayout))
	}
	return startAt, endAt, nil
}

func round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// percent returns part/whole*100 rounded to places, or 0 for an empty whole
func percent(part, whole int64, places int) float64 {
	if whole == 0 {
		return 0
	}
	return round(float64(part)/float64(whole)*100, places)
}
