package tracing

import (
	"fmt"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("fitinsights")

// EndSpanWithErrCheck marks the span as failed when err is not nil, then ends it.
// Meant to be deferred with a pointer to the named error result.
func EndSpanWithErrCheck(span trace.Span, err *error) {
	if err != nil && *err != nil {
		span.SetStatus(codes.Error, (*err).Error())
		span.RecordError(*err)
	}
	span.End()
}

// HoneycombSetup configures the OpenTelemetry SDK through the honeycomb distro.
// The api key and endpoint come from HONEYCOMB_* env vars. When disabled, the
// global no-op tracer provider stays in place and the returned shutdown is a no-op.
func HoneycombSetup(enabled bool, serviceName string, rdb *redis.Client) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	// enable multi-span attributes
	bsp := honeycomb.NewBaggageSpanProcessor()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithSpanProcessor(bsp),
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, fmt.Errorf("configure opentelemetry: %w", err)
	}

	if rdb != nil {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	log.Infof("honeycomb tracing enabled for %s", serviceName)
	return otelShutdown, nil
}
