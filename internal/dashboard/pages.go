package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitinsights/internal/correlation"
	"github.com/2beens/fitinsights/internal/heart"
	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/series"
	"github.com/2beens/fitinsights/internal/sleep"
	"github.com/2beens/fitinsights/internal/telemetry/tracing"
	"github.com/2beens/fitinsights/internal/timerange"

	"go.opentelemetry.io/otel/attribute"
	"gonum.org/v1/gonum/stat"
)

const noDataNote = "If the chart shows gaps or no data points, no data was recorded during the selected time period."

type TimeSeriesSelection struct {
	Granularity records.Granularity
	Metric      string
	UserID      int64
	Range       timerange.DateRange
}

type TimeSeriesChart struct {
	Title  string        `json:"title"`
	XLabel string        `json:"xLabel"`
	YLabel string        `json:"yLabel"`
	Series series.Series `json:"series"`
}

// TimeSeries is the line chart of one metric of one user.
func (s *Service) TimeSeries(ctx context.Context, sel TimeSeriesSelection) (_ *TimeSeriesChart, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.timeSeries")
	defer tracing.EndSpanWithErrCheck(span, &err)
	defer func(begin time.Time) { s.observe("timeseries", begin, err) }(time.Now())

	span.SetAttributes(
		attribute.String("granularity", string(sel.Granularity)),
		attribute.String("metric", sel.Metric),
		attribute.Int64("user", sel.UserID),
	)
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	userSeries, err := series.ExtractRange(s.store.Catalog(), sel.Granularity, sel.Metric, sel.UserID, sel.Range)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("points", userSeries.Len()))

	return &TimeSeriesChart{
		Title:  fmt.Sprintf("Line plot of %s %s", sel.Granularity.Label(), sel.Metric),
		XLabel: sel.Granularity.TimeColumn(),
		YLabel: sel.Metric,
		Series: userSeries,
	}, nil
}

func rangeTitle(dr timerange.DateRange) string {
	if dr.IsOpen() {
		return "over all recorded days"
	}
	return "from " + strings.Replace(dr.String(), "..", " to ", 1)
}

type CorrelationSelection struct {
	Granularity records.Granularity
	XMetric     string
	YMetric     string
	UserID      int64
	Range       timerange.DateRange
}

type CorrelationChart struct {
	Title          string                `json:"title"`
	XLabel         string                `json:"xLabel"`
	YLabel         string                `json:"yLabel"`
	UserID         int64                 `json:"userId"`
	Alignment      correlation.Alignment `json:"alignment"`
	Result         correlation.Result    `json:"result"`
	Strength       correlation.Strength  `json:"strength,omitempty"`
	Interpretation string                `json:"interpretation"`
}

// Correlation is the scatter plot of two metrics of one user at one granularity,
// with the least squares line and Pearson r.
func (s *Service) Correlation(ctx context.Context, sel CorrelationSelection) (_ *CorrelationChart, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.correlation")
	defer tracing.EndSpanWithErrCheck(span, &err)
	defer func(begin time.Time) { s.observe("correlation", begin, err) }(time.Now())

	span.SetAttributes(
		attribute.String("granularity", string(sel.Granularity)),
		attribute.String("x", sel.XMetric),
		attribute.String("y", sel.YMetric),
		attribute.Int64("user", sel.UserID),
	)
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	catalog := s.store.Catalog()
	xs, err := series.ExtractRange(catalog, sel.Granularity, sel.XMetric, sel.UserID, sel.Range)
	if err != nil {
		return nil, err
	}
	ys, err := series.ExtractRange(catalog, sel.Granularity, sel.YMetric, sel.UserID, sel.Range)
	if err != nil {
		return nil, err
	}

	res := correlation.Correlate(xs, ys, s.alignment)
	span.SetAttributes(
		attribute.String("outcome", string(res.Outcome)),
		attribute.Int("samples", res.SampleCount),
	)
	if res.Outcome == correlation.OutcomeDegenerate {
		s.metricsManager.CounterDegenerateCorrelations.Inc()
	}

	chart := &CorrelationChart{
		Title:          fmt.Sprintf("%s vs %s", sel.XMetric, sel.YMetric),
		XLabel:         sel.XMetric,
		YLabel:         sel.YMetric,
		UserID:         sel.UserID,
		Alignment:      s.alignment,
		Result:         res,
		Interpretation: correlation.Describe(res),
	}
	if res.HasR() {
		chart.Strength = correlation.Interpret(res.R)
	}
	return chart, nil
}

type SleepSelection struct {
	Metric sleep.Metric
	UserID int64
	Range  timerange.DateRange
}

type SleepReport struct {
	Title       string            `json:"title"`
	XLabel      string            `json:"xLabel"`
	YLabel      string            `json:"yLabel"`
	UserID      int64             `json:"userId"`
	Metric      sleep.Metric      `json:"metric"`
	Unit        string            `json:"unit"`
	Days        []sleep.Day       `json:"days"`
	Points      []series.Point    `json:"points"`
	Average     *float64          `json:"average,omitempty"`
	Assessment  *sleep.Assessment `json:"assessment,omitempty"`
	Description string            `json:"description"`
}

// Sleep charts one sleep metric per night and rates its average over the range.
func (s *Service) Sleep(ctx context.Context, sel SleepSelection) (_ *SleepReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.sleep")
	defer tracing.EndSpanWithErrCheck(span, &err)
	defer func(begin time.Time) { s.observe("sleep", begin, err) }(time.Now())

	span.SetAttributes(
		attribute.String("metric", string(sel.Metric)),
		attribute.Int64("user", sel.UserID),
		attribute.String("range", sel.Range.String()),
	)
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	metric, err := sleep.ParseMetric(string(sel.Metric))
	if err != nil {
		return nil, err
	}
	sel.Metric = metric

	days, err := sleep.Compute(s.store.SleepDays(), sel.UserID, sel.Range)
	if err != nil {
		return nil, fmt.Errorf("compute sleep: %w", err)
	}

	report := &SleepReport{
		Title:       fmt.Sprintf("%s %s", sel.Metric.Label(), rangeTitle(sel.Range)),
		XLabel:      "Date",
		YLabel:      sel.Metric.Label(),
		UserID:      sel.UserID,
		Metric:      sel.Metric,
		Unit:        sel.Metric.Unit(),
		Days:        days,
		Points:      make([]series.Point, 0, len(days)),
		Description: sleep.Describe(sel.Metric),
	}
	for _, d := range days {
		report.Points = append(report.Points, series.Point{Timestamp: d.Date, Value: d.Value(sel.Metric)})
	}

	avg, ok := sleep.Average(days, sel.Metric)
	if !ok {
		return report, nil
	}
	assessment, err := sleep.Assess(sel.Metric, avg)
	if err != nil {
		return nil, err
	}
	report.Average = &avg
	report.Assessment = &assessment
	return report, nil
}

type HeartSelection struct {
	Metric heart.Metric
	UserID int64
	Range  timerange.DateRange
}

type HeartReport struct {
	Title   string         `json:"title"`
	XLabel  string         `json:"xLabel"`
	YLabel  string         `json:"yLabel"`
	UserID  int64          `json:"userId"`
	Metric  heart.Metric   `json:"metric"`
	Points  []series.Point `json:"points"`
	Average *float64       `json:"average,omitempty"`

	// METCategory rates the average MET score; only set for the MET metric.
	METCategory heart.METCategory `json:"metCategory,omitempty"`
	Description string            `json:"description"`
	Note        string            `json:"note,omitempty"`
}

// Heart charts per-minute heart rate or MET score of one user.
func (s *Service) Heart(ctx context.Context, sel HeartSelection) (_ *HeartReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.heart")
	defer tracing.EndSpanWithErrCheck(span, &err)
	defer func(begin time.Time) { s.observe("heart", begin, err) }(time.Now())

	span.SetAttributes(
		attribute.String("metric", string(sel.Metric)),
		attribute.Int64("user", sel.UserID),
		attribute.String("range", sel.Range.String()),
	)
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	metric, err := heart.ParseMetric(string(sel.Metric))
	if err != nil {
		return nil, err
	}
	sel.Metric = metric

	points := s.heartTable.Query(sel.UserID, sel.Range, sel.Metric)
	report := &HeartReport{
		Title:       fmt.Sprintf("%s %s", sel.Metric.Label(), rangeTitle(sel.Range)),
		XLabel:      "Time",
		YLabel:      sel.Metric.Label(),
		UserID:      sel.UserID,
		Metric:      sel.Metric,
		Points:      points,
		Description: heart.Describe(sel.Metric),
	}
	if len(points) == 0 {
		report.Note = noDataNote
		return report, nil
	}

	avg := stat.Mean(series.Values(points), nil)
	report.Average = &avg
	if sel.Metric == heart.MetricMET {
		report.METCategory = heart.ClassifyMET(avg)
	}
	return report, nil
}
