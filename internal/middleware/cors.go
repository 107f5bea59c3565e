package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

var allowedOrigins = map[string]bool{
	"https://fitinsights.2beens.online": true,
	"http://localhost:8050":             true,
	"http://localhost:8080":             true,
	"test":                              true,
}

func Cors() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			userAgent := r.Header.Get("User-Agent")

			switch {
			case
				allowedOrigins[origin],
				strings.HasPrefix(userAgent, "curl/"),
				strings.HasPrefix(userAgent, "Go-http-client/"),
				strings.HasPrefix(userAgent, "test-agent"),
				// allow MCP endpoint (MCP clients often send no Origin)
				strings.HasPrefix(r.URL.Path, "/mcp"):
				{
					allowOrigin := origin
					if allowOrigin == "" && strings.HasPrefix(r.URL.Path, "/mcp") {
						allowOrigin = "*"
					}
					w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
					w.Header().Set("Access-Control-Allow-Headers",
						"Accept, Content-Type, Content-Length, Accept-Encoding, MCP-Protocol-Version, MCP-Session-Id",
					)
					w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
				}
			default:
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
