//go:build integration

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/fitinsights/internal/correlation"
	"github.com/2beens/fitinsights/internal/dashboard"
	"github.com/2beens/fitinsights/internal/records/recordstest"
	"github.com/2beens/fitinsights/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) getJSON(ctx context.Context, path, clientIP string, wantStatus int, target any) {
	t := s.T()

	resp, err := s.get(ctx, path, clientIP)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, string(respBytes))
	if target != nil {
		require.NoError(t, json.Unmarshal(respBytes, target))
	}
}

func (s *IntegrationTestSuite) TestRoot() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	resp, err := s.get(ctx, "/", "10.0.0.1")
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "I'm OK, thanks ;)", string(respBytes))
}

func (s *IntegrationTestSuite) TestTimeSeries() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	var chart dashboard.TimeSeriesChart
	s.getJSON(ctx,
		fmt.Sprintf("/timeseries?granularity=D&metric=TotalSteps&user=%d&from=2016-04-13&to=2016-04-14", recordstest.UserActive),
		"10.0.0.2", http.StatusOK, &chart,
	)
	assert.Equal(t, "Line plot of Daily TotalSteps", chart.Title)
	assert.Equal(t, []float64{10735, 10460}, series.Values(chart.Series.Points))

	// unknown users are not an error
	chart = dashboard.TimeSeriesChart{}
	s.getJSON(ctx,
		fmt.Sprintf("/timeseries?granularity=H&metric=StepTotal&user=%d", recordstest.UserUnknown),
		"10.0.0.2", http.StatusOK, &chart,
	)
	assert.Empty(t, chart.Series.Points)

	var errResp map[string]string
	s.getJSON(ctx,
		fmt.Sprintf("/timeseries?granularity=H&metric=TotalSteps&user=%d", recordstest.UserActive),
		"10.0.0.2", http.StatusBadRequest, &errResp,
	)
	assert.Equal(t, "invalid metric [TotalSteps]: not recorded at Hourly granularity", errResp["error"])
}

func (s *IntegrationTestSuite) TestCorrelation() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	var chart dashboard.CorrelationChart
	s.getJSON(ctx,
		fmt.Sprintf("/correlation?granularity=H&x=Calories&y=TotalIntensity&user=%d", recordstest.UserActive),
		"10.0.0.3", http.StatusOK, &chart,
	)
	assert.Equal(t, "Calories vs TotalIntensity", chart.Title)
	assert.Equal(t, correlation.OutcomeFitted, chart.Result.Outcome)
	assert.Equal(t, correlation.VeryStrong, chart.Strength)
}

func (s *IntegrationTestSuite) TestSleepAndHeart() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	var sleepReport dashboard.SleepReport
	s.getJSON(ctx,
		fmt.Sprintf("/sleep?metric=SleepDuration&user=%d", recordstest.UserActive),
		"10.0.0.4", http.StatusOK, &sleepReport,
	)
	require.NotNil(t, sleepReport.Average)
	assert.InDelta(t, 365.75, *sleepReport.Average, 1e-9)

	var heartReport dashboard.HeartReport
	s.getJSON(ctx,
		fmt.Sprintf("/heart?metric=MET&user=%d", recordstest.UserHeart),
		"10.0.0.4", http.StatusOK, &heartReport,
	)
	require.NotNil(t, heartReport.Average)
	assert.InDelta(t, 7.8667, *heartReport.Average, 1e-4)

	var users []dashboard.Option
	s.getJSON(ctx, "/heart/users", "10.0.0.4", http.StatusOK, &users)
	assert.Contains(t, users, dashboard.Option{
		Label: fmt.Sprint(recordstest.UserHeart),
		Value: fmt.Sprint(recordstest.UserHeart),
	})
}

func (s *IntegrationTestSuite) TestRateLimit() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	clientIP := "10.0.0.99"
	for i := 0; i < rateLimitAllowedPerMin; i++ {
		s.getJSON(ctx, "/granularities", clientIP, http.StatusOK, nil)
	}

	resp, err := s.get(ctx, "/granularities", clientIP)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// liveness is never limited
	rootResp, err := s.get(ctx, "/", clientIP)
	require.NoError(t, err)
	defer rootResp.Body.Close()
	assert.Equal(t, http.StatusOK, rootResp.StatusCode)
}
