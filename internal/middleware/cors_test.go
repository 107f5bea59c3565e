package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		origin         string
		userAgent      string
		path           string
		expectCors     bool
		expectOrigin   string
		expectNext     bool
		expectedStatus int
	}{
		{
			name:           "AllowedOrigin",
			origin:         "http://localhost:8050",
			path:           "/timeseries",
			expectCors:     true,
			expectOrigin:   "http://localhost:8050",
			expectNext:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedOrigin",
			origin:         "https://www.notallowed.com",
			path:           "/timeseries",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "AllowedUserAgent",
			userAgent:      "curl/8.5.0",
			path:           "/sleep",
			expectCors:     true,
			expectNext:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedUserAgent",
			userAgent:      "UnknownAgent/1.0",
			path:           "/sleep",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "MCPWithoutOrigin",
			path:           "/mcp",
			expectCors:     true,
			expectOrigin:   "*",
			expectNext:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Preflight",
			method:         http.MethodOptions,
			origin:         "test",
			path:           "/correlation",
			expectCors:     true,
			expectOrigin:   "test",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "UnknownPathNoOrigin",
			path:           "/unknown/path",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			method := tc.method
			if method == "" {
				method = http.MethodGet
			}
			rr := httptest.NewRecorder()
			req, err := http.NewRequest(method, tc.path, nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("User-Agent", tc.userAgent)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})
			handler := Cors()(nextHandler)

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNext, nextCalled)
			if tc.expectCors {
				assert.Equal(t, tc.expectOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
				assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Methods"))
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
