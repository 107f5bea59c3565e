package timerange

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitinsights/internal/records"
)

// DateLayout is the layout of date range bounds in requests.
const DateLayout = "2006-01-02"

// DateRange selects whole calendar days, both ends inclusive.
// A zero Start or End leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: truncateDay(start),
		End:   truncateDay(end),
	}
}

// All is the open range matching every timestamp.
func All() DateRange {
	return DateRange{}
}

// ParseDateRange parses both bounds with DateLayout. Empty bounds are open.
// Malformed or reversed bounds are invalid selections.
func ParseDateRange(from, to string) (DateRange, error) {
	var dr DateRange
	if from = strings.TrimSpace(from); from != "" {
		start, err := time.ParseInLocation(DateLayout, from, time.UTC)
		if err != nil {
			return DateRange{}, &records.InvalidSelectionError{Field: "from", Value: from, Reason: "expected YYYY-MM-DD"}
		}
		dr.Start = start
	}
	if to = strings.TrimSpace(to); to != "" {
		end, err := time.ParseInLocation(DateLayout, to, time.UTC)
		if err != nil {
			return DateRange{}, &records.InvalidSelectionError{Field: "to", Value: to, Reason: "expected YYYY-MM-DD"}
		}
		dr.End = end
	}
	if !dr.Start.IsZero() && !dr.End.IsZero() && dr.End.Before(dr.Start) {
		return DateRange{}, &records.InvalidSelectionError{
			Field:  "to",
			Value:  to,
			Reason: fmt.Sprintf("before from [%s]", from),
		}
	}
	return dr, nil
}

// Contains reports whether the calendar day of t falls within the range.
func (d DateRange) Contains(t time.Time) bool {
	day := truncateDay(t)
	if !d.Start.IsZero() && day.Before(d.Start) {
		return false
	}
	if !d.End.IsZero() && day.After(d.End) {
		return false
	}
	return true
}

func (d DateRange) IsOpen() bool {
	return d.Start.IsZero() && d.End.IsZero()
}

func (d DateRange) String() string {
	format := func(t time.Time) string {
		if t.IsZero() {
			return "*"
		}
		return t.Format(DateLayout)
	}
	return format(d.Start) + ".." + format(d.End)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
