package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/2beens/fitinsights/internal/cache"
	"github.com/2beens/fitinsights/internal/heart"
	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/sleep"
	"github.com/2beens/fitinsights/internal/telemetry/tracing"
	"github.com/2beens/fitinsights/internal/timerange"
	"github.com/2beens/fitinsights/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

type dashboardService interface {
	GranularityOptions() []Option
	MetricOptions(g records.Granularity) ([]Option, error)
	PairedMetricOptions(g records.Granularity, first string) ([]Option, error)
	UserOptions(ctx context.Context, g records.Granularity, metric string) ([]Option, error)
	SleepUserOptions(ctx context.Context, dr timerange.DateRange, metric sleep.Metric) ([]Option, error)
	HeartUserOptions(ctx context.Context) []Option
	TimeSeries(ctx context.Context, sel TimeSeriesSelection) (*TimeSeriesChart, error)
	Correlation(ctx context.Context, sel CorrelationSelection) (*CorrelationChart, error)
	Sleep(ctx context.Context, sel SleepSelection) (*SleepReport, error)
	Heart(ctx context.Context, sel HeartSelection) (*HeartReport, error)
}

var _ dashboardService = (*Service)(nil)

type Handler struct {
	service       dashboardService
	responseCache cache.Cache
}

func NewHandler(service dashboardService, responseCache cache.Cache) *Handler {
	return &Handler{
		service:       service,
		responseCache: responseCache,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/granularities", handler.HandleGranularities).Methods("GET", "OPTIONS").Name("granularities")
	r.HandleFunc("/metrics", handler.HandleMetrics).Methods("GET", "OPTIONS").Name("metrics")
	r.HandleFunc("/metrics/paired", handler.HandlePairedMetrics).Methods("GET", "OPTIONS").Name("paired-metrics")
	r.HandleFunc("/users", handler.HandleUsers).Methods("GET", "OPTIONS").Name("users")
	r.HandleFunc("/timeseries", handler.HandleTimeSeries).Methods("GET", "OPTIONS").Name("timeseries")
	r.HandleFunc("/correlation", handler.HandleCorrelation).Methods("GET", "OPTIONS").Name("correlation")
	r.HandleFunc("/sleep", handler.HandleSleep).Methods("GET", "OPTIONS").Name("sleep")
	r.HandleFunc("/sleep/metrics", handler.HandleSleepMetrics).Methods("GET", "OPTIONS").Name("sleep-metrics")
	r.HandleFunc("/sleep/users", handler.HandleSleepUsers).Methods("GET", "OPTIONS").Name("sleep-users")
	r.HandleFunc("/heart", handler.HandleHeart).Methods("GET", "OPTIONS").Name("heart")
	r.HandleFunc("/heart/metrics", handler.HandleHeartMetrics).Methods("GET", "OPTIONS").Name("heart-metrics")
	r.HandleFunc("/heart/users", handler.HandleHeartUsers).Methods("GET", "OPTIONS").Name("heart-users")
}

func (handler *Handler) HandleGranularities(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.granularities")
	defer span.End()

	handler.respond(ctx, w, r, func(context.Context, url.Values) (any, error) {
		return handler.service.GranularityOptions(), nil
	})
}

func (handler *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.metrics")
	defer span.End()

	handler.respond(ctx, w, r, func(_ context.Context, q url.Values) (any, error) {
		g, err := records.ParseGranularity(q.Get("granularity"))
		if err != nil {
			return nil, err
		}
		return handler.service.MetricOptions(g)
	})
}

func (handler *Handler) HandlePairedMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.pairedMetrics")
	defer span.End()

	handler.respond(ctx, w, r, func(_ context.Context, q url.Values) (any, error) {
		g, err := records.ParseGranularity(q.Get("granularity"))
		if err != nil {
			return nil, err
		}
		first, err := requiredParam(q, "metric")
		if err != nil {
			return nil, err
		}
		return handler.service.PairedMetricOptions(g, first)
	})
}

func (handler *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.users")
	defer span.End()

	handler.respond(ctx, w, r, func(ctx context.Context, q url.Values) (any, error) {
		g, err := records.ParseGranularity(q.Get("granularity"))
		if err != nil {
			return nil, err
		}
		metric, err := requiredParam(q, "metric")
		if err != nil {
			return nil, err
		}
		return handler.service.UserOptions(ctx, g, metric)
	})
}

func (handler *Handler) HandleTimeSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.timeSeries")
	defer span.End()

	handler.respond(ctx, w, r, func(ctx context.Context, q url.Values) (any, error) {
		g, err := records.ParseGranularity(q.Get("granularity"))
		if err != nil {
			return nil, err
		}
		metric, err := requiredParam(q, "metric")
		if err != nil {
			return nil, err
		}
		userID, err := parseUserID(q)
		if err != nil {
			return nil, err
		}
		dr, err := timerange.ParseDateRange(q.Get("from"), q.Get("to"))
		if err != nil {
			return nil, err
		}
		return handler.service.TimeSeries(ctx, TimeSeriesSelection{
			Granularity: g,
			Metric:      metric,
			UserID:      userID,
			Range:       dr,
		})
	})
}

func (handler *Handler) HandleCorrelation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.correlation")
	defer span.End()

	handler.respond(ctx, w, r, func(ctx context.Context, q url.Values) (any, error) {
		g, err := records.ParseGranularity(q.Get("granularity"))
		if err != nil {
			return nil, err
		}
		x, err := requiredParam(q, "x")
		if err != nil {
			return nil, err
		}
		y, err := requiredParam(q, "y")
		if err != nil {
			return nil, err
		}
		userID, err := parseUserID(q)
		if err != nil {
			return nil, err
		}
		dr, err := timerange.ParseDateRange(q.Get("from"), q.Get("to"))
		if err != nil {
			return nil, err
		}
		return handler.service.Correlation(ctx, CorrelationSelection{
			Granularity: g,
			XMetric:     x,
			YMetric:     y,
			UserID:      userID,
			Range:       dr,
		})
	})
}

func (handler *Handler) HandleSleep(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.sleep")
	defer span.End()

	handler.respond(ctx, w, r, func(ctx context.Context, q url.Values) (any, error) {
		metric, err := sleep.ParseMetric(q.Get("metric"))
		if err != nil {
			return nil, err
		}
		userID, err := parseUserID(q)
		if err != nil {
			return nil, err
		}
		dr, err := timerange.ParseDateRange(q.Get("from"), q.Get("to"))
		if err != nil {
			return nil, err
		}
		return handler.service.Sleep(ctx, SleepSelection{
			Metric: metric,
			UserID: userID,
			Range:  dr,
		})
	})
}

func (handler *Handler) HandleSleepMetrics(w http.ResponseWriter, _ *http.Request) {
	handler.writeJSON(w, SleepMetricOptions())
}

func (handler *Handler) HandleSleepUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.sleepUsers")
	defer span.End()

	handler.respond(ctx, w, r, func(ctx context.Context, q url.Values) (any, error) {
		metric := sleep.MetricEfficiency
		if raw := q.Get("metric"); raw != "" {
			var err error
			if metric, err = sleep.ParseMetric(raw); err != nil {
				return nil, err
			}
		}
		dr, err := timerange.ParseDateRange(q.Get("from"), q.Get("to"))
		if err != nil {
			return nil, err
		}
		return handler.service.SleepUserOptions(ctx, dr, metric)
	})
}

func (handler *Handler) HandleHeart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.heart")
	defer span.End()

	handler.respond(ctx, w, r, func(ctx context.Context, q url.Values) (any, error) {
		metric, err := heart.ParseMetric(q.Get("metric"))
		if err != nil {
			return nil, err
		}
		userID, err := parseUserID(q)
		if err != nil {
			return nil, err
		}
		dr, err := timerange.ParseDateRange(q.Get("from"), q.Get("to"))
		if err != nil {
			return nil, err
		}
		return handler.service.Heart(ctx, HeartSelection{
			Metric: metric,
			UserID: userID,
			Range:  dr,
		})
	})
}

func (handler *Handler) HandleHeartMetrics(w http.ResponseWriter, _ *http.Request) {
	handler.writeJSON(w, HeartMetricOptions())
}

func (handler *Handler) HandleHeartUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.heartUsers")
	defer span.End()

	handler.respond(ctx, w, r, func(ctx context.Context, _ url.Values) (any, error) {
		return handler.service.HeartUserOptions(ctx), nil
	})
}

// respond serves the payload from the response cache when present, otherwise
// computes, caches and writes it. Errors are never cached.
func (handler *Handler) respond(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	compute func(ctx context.Context, q url.Values) (any, error),
) {
	span := trace.SpanFromContext(ctx)
	q := r.URL.Query()
	key := r.URL.Path + "?" + q.Encode()

	if cached, ok := handler.responseCache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	payload, err := compute(ctx, q)
	if err != nil {
		handler.writeError(span, w, r, err)
		return
	}

	respJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("marshal %s response: %s", r.URL.Path, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	handler.responseCache.Set(key, respJson)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) writeError(span trace.Span, w http.ResponseWriter, r *http.Request, err error) {
	span.RecordError(err)
	switch {
	case records.IsInvalidSelection(err):
		log.Debugf("%s: %s", r.URL.Path, err)
		span.SetStatus(codes.Error, "invalid-selection")
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Debugf("%s: request gone: %s", r.URL.Path, err)
		span.SetStatus(codes.Error, "cancelled")
		pkg.WriteJSONError(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		log.Errorf("%s [%s]: %s", r.URL.Path, r.URL.RawQuery, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "internal error", http.StatusInternalServerError)
	}
}

func (handler *Handler) writeJSON(w http.ResponseWriter, payload any) {
	respJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		pkg.WriteJSONError(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func requiredParam(q url.Values, name string) (string, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return "", &records.InvalidSelectionError{Field: name, Value: v, Reason: "required"}
	}
	return v, nil
}

func parseUserID(q url.Values) (int64, error) {
	raw, err := requiredParam(q, "user")
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &records.InvalidSelectionError{Field: "user", Value: raw, Reason: "not a number"}
	}
	return userID, nil
}
