package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitinsights/internal/cache"
	"github.com/2beens/fitinsights/internal/config"
	"github.com/2beens/fitinsights/internal/correlation"
	"github.com/2beens/fitinsights/internal/dashboard"
	dashboardmcp "github.com/2beens/fitinsights/internal/dashboard/mcp"
	"github.com/2beens/fitinsights/internal/middleware"
	"github.com/2beens/fitinsights/internal/misc"
	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/telemetry/metrics"
	"github.com/2beens/fitinsights/internal/telemetry/tracing"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config           *config.Config
	store            *records.Store
	dashboardService *dashboard.Service
	responseCache    *cache.ResponseCache

	// nil unless rate limiting is enabled
	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	alignment, err := correlation.ParseAlignment(params.Config.CorrelationAlignment)
	if err != nil {
		return nil, fmt.Errorf("correlation alignment: %w", err)
	}

	promRegistry := metrics.SetupPrometheus("fitinsights")
	metricsManager := metrics.NewManager("fitinsights", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	store, err := loadStore(ctx, params.Config.DataDir, metricsManager)
	if err != nil {
		return nil, err
	}

	dashboardService, err := dashboard.NewService(ctx, dashboard.NewServiceParams{
		Store:          store,
		Alignment:      alignment,
		MetricsManager: metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new dashboard service: %w", err)
	}

	var rdb *redis.Client
	if params.Config.RateLimitEnabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if err := pingRedis(ctx, rdb); err != nil {
			log.Errorf("--> %s", err)
		}
	} else {
		log.Debugln("rate limiting disabled, not connecting to redis")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitinsights", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:           params.Config,
		versionInfo:      params.VersionInfo,
		store:            store,
		dashboardService: dashboardService,
		responseCache: cache.NewResponseCache(
			params.Config.ResponseCacheSizeMB,
			params.Config.ResponseCacheTTLSec,
			metricsManager,
		),
		redisClient: rdb,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func loadStore(ctx context.Context, dataDir string, metricsManager *metrics.Manager) (*records.Store, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "server.loadStore")
	defer span.End()

	start := time.Now()
	store, err := records.Load(ctx, dataDir)
	if err != nil {
		return nil, fmt.Errorf("load records from %s: %w", dataDir, err)
	}
	metricsManager.HistogramCatalogLoad.Observe(time.Since(start).Seconds())
	log.Infof("records loaded from [%s] in %s", dataDir, time.Since(start))

	return store, nil
}

func pingRedis(ctx context.Context, rdb *redis.Client) error {
	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	log.Debugf("redis ping: %s", rdbStatus.Val())
	return nil
}

// routerSetup registers all routes. rateLimiter may be nil, then the
// dashboard routes are not rate limited.
func (s *Server) routerSetup(rateLimiter middleware.RequestRateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitinsights-router"))

	miscHandler := misc.NewHandler(s.store, s.versionInfo)
	miscHandler.SetupRoutes(r)

	mcpServer := dashboardmcp.NewServer(s.dashboardService, s.versionInfo)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "mcp")).Name("mcp")

	dashboardRouter := r.NewRoute().Subrouter()
	dashboardHandler := dashboard.NewHandler(s.dashboardService, s.responseCache)
	dashboardHandler.SetupRoutes(dashboardRouter)
	if rateLimiter != nil {
		dashboardRouter.Use(middleware.RateLimit(
			rateLimiter,
			"dashboard",
			s.config.RateLimitAllowedPerMin,
			s.metricsManager,
		))
	}

	middlewares := []mux.MiddlewareFunc{
		middleware.PanicRecovery(s.metricsManager),
		middleware.LogRequest(),
		middleware.RequestMetrics(s.metricsManager),
		middleware.Cors(),
		middleware.DrainAndCloseRequest(),
	}
	r.Use(middlewares...)

	// mux does not run router middlewares for unmatched paths
	var notFound http.Handler = http.NotFoundHandler()
	for i := len(middlewares) - 1; i >= 0; i-- {
		notFound = middlewares[i](notFound)
	}
	r.NotFoundHandler = notFound

	return r
}

func (s *Server) Serve(host string, port int) {
	var rateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}
	router := s.routerSetup(rateLimiter)

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// MCP streams can stay open longer than a regular request
		WriteTimeout: 5 * time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
