package series

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/timerange"
)

type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is one metric of one user at one granularity, ordered by time.
type Series struct {
	UserID      int64               `json:"userId"`
	Granularity records.Granularity `json:"granularity"`
	Metric      string              `json:"metric"`
	Points      []Point             `json:"points"`
}

func (s Series) Empty() bool {
	return len(s.Points) == 0
}

func (s Series) Len() int {
	return len(s.Points)
}

// Values returns the point values in order.
func (s Series) Values() []float64 {
	return Values(s.Points)
}

func Values(points []Point) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

// Extract projects a catalog metric onto one user. Rows are sorted by time,
// keeping file order between equal timestamps. Empty cells are skipped.
// A user with no rows gets an empty series; only an unknown granularity or
// metric is an error.
func Extract(catalog *records.Catalog, g records.Granularity, metric string, userID int64) (Series, error) {
	return ExtractRange(catalog, g, metric, userID, timerange.All())
}

// ExtractRange is Extract limited to the calendar days of dr.
func ExtractRange(catalog *records.Catalog, g records.Granularity, metric string, userID int64, dr timerange.DateRange) (Series, error) {
	table, err := catalog.Table(g, metric)
	if err != nil {
		return Series{}, err
	}

	s := Series{
		UserID:      userID,
		Granularity: g,
		Metric:      metric,
		Points:      []Point{},
	}
	for _, row := range table.UserRows(userID) {
		ts := table.Time(row)
		if !dr.Contains(ts) {
			continue
		}
		v, err := table.Value(metric, row)
		if err != nil {
			return Series{}, fmt.Errorf("extract %s: %w", metric, err)
		}
		if math.IsNaN(v) {
			continue
		}
		s.Points = append(s.Points, Point{Timestamp: ts, Value: v})
	}

	sort.SliceStable(s.Points, func(i, j int) bool {
		return s.Points[i].Timestamp.Before(s.Points[j].Timestamp)
	})

	return s, nil
}
