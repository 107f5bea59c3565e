package middleware

import (
	"net/http"

	"github.com/2beens/fitinsights/pkg"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"query":  r.URL.RawQuery,
				"ip":     pkg.ClientIP(r),
				"ua":     r.Header.Get("User-Agent"),
			}).Trace(" ====> request")
			next.ServeHTTP(w, r)
		})
	}
}
