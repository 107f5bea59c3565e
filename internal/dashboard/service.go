package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitinsights/internal/correlation"
	"github.com/2beens/fitinsights/internal/heart"
	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/telemetry/metrics"
	"github.com/2beens/fitinsights/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// Service computes the dashboard pages from an explicitly owned record store.
// Everything it holds is read-only after NewService returns, so a single
// Service is shared by all requests.
type Service struct {
	store          *records.Store
	heartTable     *heart.Table
	alignment      correlation.Alignment
	metricsManager *metrics.Manager
}

type NewServiceParams struct {
	Store          *records.Store
	Alignment      correlation.Alignment
	MetricsManager *metrics.Manager
}

// NewService builds the heart rate / MET table once; it is the only derived
// structure and is queried by every heart page request.
func NewService(ctx context.Context, params NewServiceParams) (_ *Service, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.newService")
	defer tracing.EndSpanWithErrCheck(span, &err)

	if params.Store == nil {
		return nil, errors.New("record store is nil")
	}
	if params.MetricsManager == nil {
		return nil, errors.New("metrics manager is nil")
	}

	alignment := params.Alignment
	if alignment == "" {
		alignment = correlation.AlignTimestamp
	}

	begin := time.Now()
	heartTable, err := heart.BuildTable(params.Store.HeartRate(), params.Store.METs())
	if err != nil {
		return nil, fmt.Errorf("build heart table: %w", err)
	}
	took := time.Since(begin)
	params.MetricsManager.HistogramHeartTableBuild.Observe(took.Seconds())
	log.Debugf("heart table built in %s: %d minutes joined", took, heartTable.Len())

	params.MetricsManager.RecordTableRows(params.Store.Stats())

	return &Service{
		store:          params.Store,
		heartTable:     heartTable,
		alignment:      alignment,
		metricsManager: params.MetricsManager,
	}, nil
}

func (s *Service) Alignment() correlation.Alignment {
	return s.alignment
}

// observe records the duration of a page computation and counts rejected selections.
func (s *Service) observe(page string, begin time.Time, err error) {
	s.metricsManager.HistogramComputeDuration.WithLabelValues(page).Observe(time.Since(begin).Seconds())
	s.countInvalid(err)
}

func (s *Service) countInvalid(err error) {
	var selErr *records.InvalidSelectionError
	if errors.As(err, &selErr) {
		s.metricsManager.CounterInvalidSelections.WithLabelValues(selErr.Field).Inc()
	}
}

// ctxErr is checked before each computation; they are cheap and not interrupted midway.
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
