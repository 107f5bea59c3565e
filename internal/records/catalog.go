package records

import "fmt"

// catalogLayout defines which metric names are offered at each granularity and
// which source table backs them. Many names alias the same table.
var catalogLayout = []struct {
	granularity Granularity
	source      Source
	metrics     []string
}{
	{Daily, SourceDailyActivity, []string{
		"TotalSteps", "TotalDistance", "TrackerDistance", "LoggedActivitiesDistance",
		"VeryActiveDistance", "ModeratelyActiveDistance", "LightActiveDistance",
		"SedentaryActiveDistance", "VeryActiveMinutes", "FairlyActiveMinutes",
		"LightlyActiveMinutes", "SedentaryMinutes", "Calories",
	}},
	{Daily, SourceDailySleep, []string{"TotalMinutesAsleep", "TotalSleepRecords", "TotalTimeInBed"}},
	{Daily, SourceDailyWeight, []string{"WeightKg", "WeightPounds", "BMI"}},
	{Hourly, SourceHourlyCalories, []string{"Calories"}},
	{Hourly, SourceHourlyIntensities, []string{"TotalIntensity"}},
	{Hourly, SourceHourlySteps, []string{"StepTotal"}},
	{Minute, SourceMinuteSteps, []string{"Steps"}},
	{Minute, SourceMinuteCalories, []string{"Calories"}},
	{Minute, SourceMinuteIntensities, []string{"Intensity"}},
	{Minute, SourceMinuteSleep, []string{"TotalSleepRecords"}},
	{Second, SourceHeartRate, []string{"Heartbeat"}},
}

// Catalog maps granularity -> metric name -> table.
type Catalog struct {
	metrics map[Granularity][]string
	tables  map[Granularity]map[string]*Table
}

func newCatalog(tables map[string]*Table) (*Catalog, error) {
	c := &Catalog{
		metrics: make(map[Granularity][]string),
		tables:  make(map[Granularity]map[string]*Table),
	}
	for _, entry := range catalogLayout {
		t, ok := tables[entry.source.Name]
		if !ok {
			return nil, fmt.Errorf("catalog: table %s not loaded", entry.source.Name)
		}
		if c.tables[entry.granularity] == nil {
			c.tables[entry.granularity] = make(map[string]*Table)
		}
		for _, metric := range entry.metrics {
			if !t.HasColumn(metric) {
				return nil, fmt.Errorf("catalog: %s.%s: %w", t.Name(), metric, ErrMissingColumn)
			}
			c.tables[entry.granularity][metric] = t
			c.metrics[entry.granularity] = append(c.metrics[entry.granularity], metric)
		}
	}
	return c, nil
}

// Granularities returns the granularities that have at least one metric.
func (c *Catalog) Granularities() []Granularity {
	var gs []Granularity
	for _, g := range AllGranularities {
		if len(c.metrics[g]) > 0 {
			gs = append(gs, g)
		}
	}
	return gs
}

// Metrics returns the metric names valid for g, in display order.
func (c *Catalog) Metrics(g Granularity) []string {
	metrics := make([]string, len(c.metrics[g]))
	copy(metrics, c.metrics[g])
	return metrics
}

func (c *Catalog) HasMetric(g Granularity, metric string) bool {
	_, ok := c.tables[g][metric]
	return ok
}

// Table resolves a metric at a granularity. Unknown granularities and metrics
// not recorded at g are rejected with an InvalidSelectionError.
func (c *Catalog) Table(g Granularity, metric string) (*Table, error) {
	byMetric, ok := c.tables[g]
	if !ok {
		return nil, &InvalidSelectionError{
			Field:  "granularity",
			Value:  string(g),
			Reason: "expected one of D, H, M, S",
		}
	}
	t, ok := byMetric[metric]
	if !ok {
		return nil, &InvalidSelectionError{
			Field:  "metric",
			Value:  metric,
			Reason: fmt.Sprintf("not recorded at %s granularity", g.Label()),
		}
	}
	return t, nil
}
