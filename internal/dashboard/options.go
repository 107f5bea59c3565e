package dashboard

import (
	"context"
	"strconv"

	"github.com/2beens/fitinsights/internal/heart"
	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/sleep"
	"github.com/2beens/fitinsights/internal/telemetry/tracing"
	"github.com/2beens/fitinsights/internal/timerange"
)

// Option is one entry of a selection list. Lists are built per request from
// the current selection and never shared between callers.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (s *Service) GranularityOptions() []Option {
	gs := s.store.Catalog().Granularities()
	opts := make([]Option, 0, len(gs))
	for _, g := range gs {
		opts = append(opts, Option{Label: g.Label(), Value: string(g)})
	}
	return opts
}

func (s *Service) MetricOptions(g records.Granularity) ([]Option, error) {
	metrics := s.store.Catalog().Metrics(g)
	if len(metrics) == 0 {
		err := &records.InvalidSelectionError{
			Field:  "granularity",
			Value:  string(g),
			Reason: "expected one of D, H, M, S",
		}
		s.countInvalid(err)
		return nil, err
	}
	return metricOptions(metrics), nil
}

// PairedMetricOptions lists the metrics that can be plotted against first:
// those whose table has the same number of rows as first's table.
func (s *Service) PairedMetricOptions(g records.Granularity, first string) ([]Option, error) {
	catalog := s.store.Catalog()
	firstTable, err := catalog.Table(g, first)
	if err != nil {
		s.countInvalid(err)
		return nil, err
	}

	var paired []string
	for _, metric := range catalog.Metrics(g) {
		t, err := catalog.Table(g, metric)
		if err != nil {
			return nil, err
		}
		if t.Len() == firstTable.Len() {
			paired = append(paired, metric)
		}
	}
	return metricOptions(paired), nil
}

// UserOptions lists the users that have rows in the table behind metric.
func (s *Service) UserOptions(ctx context.Context, g records.Granularity, metric string) ([]Option, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "dashboard.userOptions")
	defer span.End()

	t, err := s.store.Catalog().Table(g, metric)
	if err != nil {
		s.countInvalid(err)
		return nil, err
	}
	return userOptions(t.UserIDs()), nil
}

// SleepUserOptions lists the users with at least one night recorded in dr.
func (s *Service) SleepUserOptions(ctx context.Context, dr timerange.DateRange, metric sleep.Metric) ([]Option, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "dashboard.sleepUserOptions")
	defer span.End()

	if _, err := sleep.ParseMetric(string(metric)); err != nil {
		s.countInvalid(err)
		return nil, err
	}
	users, err := sleep.UsersWithData(s.store.SleepDays(), dr)
	if err != nil {
		return nil, err
	}
	return userOptions(users), nil
}

func (s *Service) HeartUserOptions(ctx context.Context) []Option {
	_, span := tracing.GlobalTracer.Start(ctx, "dashboard.heartUserOptions")
	defer span.End()

	return userOptions(s.heartTable.UserIDs())
}

func SleepMetricOptions() []Option {
	opts := make([]Option, 0, len(sleep.AllMetrics))
	for _, m := range sleep.AllMetrics {
		opts = append(opts, Option{Label: m.Label(), Value: string(m)})
	}
	return opts
}

func HeartMetricOptions() []Option {
	opts := make([]Option, 0, len(heart.AllMetrics))
	for _, m := range heart.AllMetrics {
		opts = append(opts, Option{Label: m.Label(), Value: string(m)})
	}
	return opts
}

func metricOptions(metrics []string) []Option {
	opts := make([]Option, 0, len(metrics))
	for _, m := range metrics {
		opts = append(opts, Option{Label: m, Value: m})
	}
	return opts
}

func userOptions(users []int64) []Option {
	opts := make([]Option, 0, len(users))
	for _, id := range users {
		v := strconv.FormatInt(id, 10)
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}
