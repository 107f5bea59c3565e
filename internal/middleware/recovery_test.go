package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/fitinsights/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_panicRecoveryMiddleware_nonPanic(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	handler := PanicRecovery(metricsManager)
	next := &panicRecTestHandler{}
	handlerFunc := handler(next)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	handlerFunc.ServeHTTP(rr, req)

	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, rr.Code)
	// panic did not happen
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

func Test_panicRecoveryMiddleware_panic(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	handler := PanicRecovery(metricsManager)
	next := &panicRecTestHandler{panic: true}
	handlerFunc := handler(next)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/correlation", nil)
	handlerFunc.ServeHTTP(rr, req)

	assert.True(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal error"}`, rr.Body.String())
	// panic DID happen
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

func Test_panicRecoveryMiddleware_logsRoute(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	router := mux.NewRouter()
	router.Use(PanicRecovery(metrics.NewTestManager()))
	router.Handle("/heart", &panicRecTestHandler{panic: true}).Name("heart")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/heart?user=1", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "heart", entry.Data["route"])
	assert.Equal(t, "user=1", entry.Data["query"])
	assert.Contains(t, entry.Message, "panic serving /heart: YOLO")
}

func Test_panicRecoveryMiddleware_abortHandler(t *testing.T) {
	handlerFunc := PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handlerFunc.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}

func Test_panicRecoveryMiddleware_nilManager(t *testing.T) {
	handlerFunc := PanicRecovery(nil)(&panicRecTestHandler{panic: true})

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handlerFunc.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type panicRecTestHandler struct {
	panic  bool
	called bool
}

func (p *panicRecTestHandler) ServeHTTP(http.ResponseWriter, *http.Request) {
	p.called = true
	if p.panic {
		panic("YOLO")
	}
}
