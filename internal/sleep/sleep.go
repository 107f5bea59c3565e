package sleep

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/timerange"
)

const (
	asleepColumn = "TotalMinutesAsleep"
	inBedColumn  = "TotalTimeInBed"
)

type Metric string

const (
	MetricEfficiency Metric = "SleepEfficiency"
	MetricDuration   Metric = "SleepDuration"
	MetricLatency    Metric = "SleepLatency"
)

var AllMetrics = []Metric{MetricEfficiency, MetricDuration, MetricLatency}

func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sleepefficiency", "efficiency":
		return MetricEfficiency, nil
	case "sleepduration", "duration":
		return MetricDuration, nil
	case "sleeplatency", "latency":
		return MetricLatency, nil
	default:
		return "", &records.InvalidSelectionError{
			Field:  "metric",
			Value:  s,
			Reason: "expected SleepEfficiency, SleepDuration or SleepLatency",
		}
	}
}

func (m Metric) Label() string {
	switch m {
	case MetricEfficiency:
		return "Sleep Efficiency"
	case MetricDuration:
		return "Sleep Duration"
	case MetricLatency:
		return "Sleep Latency"
	default:
		return string(m)
	}
}

func (m Metric) Unit() string {
	if m == MetricEfficiency {
		return "percent"
	}
	return "minutes"
}

// Day holds the sleep figures of one recorded night.
type Day struct {
	Date          time.Time `json:"date"`
	MinutesAsleep float64   `json:"minutesAsleep"`
	TimeInBed     float64   `json:"timeInBed"`
	// Efficiency is the share of time in bed spent asleep, in percent.
	Efficiency float64 `json:"efficiency"`
	Duration   float64 `json:"duration"`
	// Latency is time in bed not spent asleep.
	Latency float64 `json:"latency"`
}

func (d Day) Value(m Metric) float64 {
	switch m {
	case MetricEfficiency:
		return d.Efficiency
	case MetricDuration:
		return d.Duration
	case MetricLatency:
		return d.Latency
	default:
		return math.NaN()
	}
}

// Compute derives the sleep figures of every night of userID within dr,
// ordered by date. Nights with no time in bed or empty cells are skipped.
func Compute(table *records.Table, userID int64, dr timerange.DateRange) ([]Day, error) {
	days := []Day{}
	for _, row := range table.UserRows(userID) {
		date := table.Time(row)
		if !dr.Contains(date) {
			continue
		}
		asleep, err := table.Value(asleepColumn, row)
		if err != nil {
			return nil, fmt.Errorf("compute sleep: %w", err)
		}
		inBed, err := table.Value(inBedColumn, row)
		if err != nil {
			return nil, fmt.Errorf("compute sleep: %w", err)
		}
		if math.IsNaN(asleep) || math.IsNaN(inBed) || inBed <= 0 {
			continue
		}
		days = append(days, Day{
			Date:          date,
			MinutesAsleep: asleep,
			TimeInBed:     inBed,
			Efficiency:    100 * asleep / inBed,
			Duration:      asleep,
			Latency:       inBed - asleep,
		})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days, nil
}

// Average is the mean of a metric across days. It reports false for no days.
func Average(days []Day, m Metric) (float64, bool) {
	if len(days) == 0 {
		return 0, false
	}
	var sum float64
	for _, d := range days {
		sum += d.Value(m)
	}
	return sum / float64(len(days)), true
}

// UsersWithData lists the users that have at least one night within dr, ascending.
func UsersWithData(table *records.Table, dr timerange.DateRange) ([]int64, error) {
	var users []int64
	for _, userID := range table.UserIDs() {
		days, err := Compute(table, userID, dr)
		if err != nil {
			return nil, err
		}
		if len(days) > 0 {
			users = append(users, userID)
		}
	}
	return users, nil
}
