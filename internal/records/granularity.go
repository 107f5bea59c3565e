package records

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the time resolution of a metric table.
type Granularity string

const (
	Daily  Granularity = "D"
	Hourly Granularity = "H"
	Minute Granularity = "M"
	Second Granularity = "S"
)

// AllGranularities in the order they are offered to the user.
var AllGranularities = []Granularity{Daily, Hourly, Minute, Second}

// activity exports write intra-day timestamps as "4/12/2016 7:21:00 AM"
const intraDayLayout = "1/2/2006 3:04:05 PM"

// daily exports are inconsistent: activity has a bare date, sleep and
// weight carry a time of day
var dailyLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006",
	intraDayLayout,
}

// ParseGranularity accepts either the short code (D, H, M, S) or the label.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "day", "daily":
		return Daily, nil
	case "h", "hour", "hourly":
		return Hourly, nil
	case "m", "minute", "minute-by-minute":
		return Minute, nil
	case "s", "second", "second-by-second":
		return Second, nil
	default:
		return "", &InvalidSelectionError{
			Field:  "granularity",
			Value:  s,
			Reason: "expected one of D, H, M, S",
		}
	}
}

func (g Granularity) Label() string {
	switch g {
	case Daily:
		return "Daily"
	case Hourly:
		return "Hourly"
	case Minute:
		return "Minute-by-Minute"
	case Second:
		return "Second-by-Second"
	default:
		return string(g)
	}
}

// TimeColumn is the canonical timestamp column name of tables at this granularity.
func (g Granularity) TimeColumn() string {
	switch g {
	case Daily:
		return "ActivityDay"
	case Hourly:
		return "ActivityHour"
	case Minute:
		return "ActivityMinute"
	case Second:
		return "ActivitySecond"
	default:
		return ""
	}
}

// ParseTime parses a raw timestamp cell using the layout of this granularity.
// Timestamps carry no zone in the exports and are read as UTC. Daily
// timestamps are reduced to the calendar day.
func (g Granularity) ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	switch g {
	case Hourly, Minute, Second:
		return time.ParseInLocation(intraDayLayout, raw, time.UTC)
	case Daily:
		for _, layout := range dailyLayouts {
			if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
				// weight rows are stamped 11:59:59 PM, activity and sleep rows at midnight
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized daily timestamp [%s]", raw)
	default:
		return time.Time{}, fmt.Errorf("unknown granularity [%s]", g)
	}
}
