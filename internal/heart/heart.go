package heart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/series"
	"github.com/2beens/fitinsights/internal/timerange"
)

// raw MET values are stored as ten times the MET score
const metScale = 10

type Metric string

const (
	MetricHeartRate Metric = "heartrate"
	MetricMET       Metric = "MET"
)

var AllMetrics = []Metric{MetricHeartRate, MetricMET}

func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heartrate", "heart_rate", "heart-rate", "heart rate":
		return MetricHeartRate, nil
	case "met", "mets":
		return MetricMET, nil
	default:
		return "", &records.InvalidSelectionError{
			Field:  "metric",
			Value:  s,
			Reason: "expected heartrate or MET",
		}
	}
}

func (m Metric) Label() string {
	switch m {
	case MetricHeartRate:
		return "Heart Rate"
	case MetricMET:
		return "Metabolic Equivalents (MET) Score"
	default:
		return string(m)
	}
}

// Sample is one minute of a user where both signals were recorded.
type Sample struct {
	UserID    int64     `json:"userId"`
	Minute    time.Time `json:"minute"`
	HeartRate float64   `json:"heartRate"`
	MET       float64   `json:"met"`
}

type bucketKey struct {
	userID int64
	minute time.Time
}

type bucket struct {
	sum   float64
	count int
}

// Table holds the per-minute heart rate averages joined with MET scores.
// Samples are ordered by user, then minute.
type Table struct {
	samples []Sample
	byUser  map[int64][]int
}

// BuildTable averages heart rate samples into one-minute buckets and joins
// them with the minute MET table on (user, minute). Minutes missing either
// signal are dropped.
func BuildTable(heartRate, mets *records.Table) (*Table, error) {
	const (
		heartRateColumn = "Heartbeat"
		metColumn       = "MET"
	)
	if !heartRate.HasColumn(heartRateColumn) {
		return nil, fmt.Errorf("%s.%s: %w", heartRate.Name(), heartRateColumn, records.ErrMissingColumn)
	}
	if !mets.HasColumn(metColumn) {
		return nil, fmt.Errorf("%s.%s: %w", mets.Name(), metColumn, records.ErrMissingColumn)
	}

	buckets := make(map[bucketKey]*bucket)
	for row := 0; row < heartRate.Len(); row++ {
		v, err := heartRate.Value(heartRateColumn, row)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) {
			continue
		}
		key := bucketKey{
			userID: heartRate.UserID(row),
			minute: toMinute(heartRate.Time(row).Truncate(time.Minute)),
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += v
		b.count++
	}

	t := &Table{byUser: make(map[int64][]int)}
	for row := 0; row < mets.Len(); row++ {
		raw, err := mets.Value(metColumn, row)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(raw) {
			continue
		}
		key := bucketKey{
			userID: mets.UserID(row),
			minute: toMinute(mets.Time(row)),
		}
		b, ok := buckets[key]
		if !ok {
			continue
		}
		t.samples = append(t.samples, Sample{
			UserID:    key.userID,
			Minute:    key.minute,
			HeartRate: b.sum / float64(b.count),
			MET:       raw / metScale,
		})
	}

	sort.SliceStable(t.samples, func(i, j int) bool {
		if t.samples[i].UserID != t.samples[j].UserID {
			return t.samples[i].UserID < t.samples[j].UserID
		}
		return t.samples[i].Minute.Before(t.samples[j].Minute)
	})
	for i, s := range t.samples {
		t.byUser[s.UserID] = append(t.byUser[s.UserID], i)
	}

	return t, nil
}

// toMinute rounds to the nearest minute boundary, so truncated and rounded
// sources land on the same key.
func toMinute(t time.Time) time.Time {
	return t.UTC().Round(time.Minute)
}

func (t *Table) Len() int {
	return len(t.samples)
}

// UserIDs returns users with at least one joined minute, ascending.
func (t *Table) UserIDs() []int64 {
	ids := make([]int64, 0, len(t.byUser))
	for id := range t.byUser {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Samples returns the joined minutes of a user within dr, ordered by minute.
func (t *Table) Samples(userID int64, dr timerange.DateRange) []Sample {
	samples := []Sample{}
	for _, i := range t.byUser[userID] {
		if dr.Contains(t.samples[i].Minute) {
			samples = append(samples, t.samples[i])
		}
	}
	return samples
}

// Query projects the user's joined minutes within dr onto one metric.
// An unknown user or metric gives an empty result.
func (t *Table) Query(userID int64, dr timerange.DateRange, metric Metric) []series.Point {
	points := []series.Point{}
	for _, s := range t.Samples(userID, dr) {
		switch metric {
		case MetricHeartRate:
			points = append(points, series.Point{Timestamp: s.Minute, Value: s.HeartRate})
		case MetricMET:
			points = append(points, series.Point{Timestamp: s.Minute, Value: s.MET})
		}
	}
	return points
}
