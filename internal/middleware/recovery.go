package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitinsights/internal/telemetry/metrics"
	"github.com/2beens/fitinsights/pkg"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking handler into a JSON 500. The panic is
// logged at error level with the route it happened on, so the Sentry hook
// picks it up when enabled.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				log.WithFields(log.Fields{
					"route":  routeName(req),
					"method": req.Method,
					"query":  req.URL.RawQuery,
				}).Errorf("panic serving %s: %v\n%s", req.URL.Path, recovered, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}

				pkg.WriteJSONError(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
