package mcp

import (
	"github.com/2beens/fitinsights/internal/dashboard"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the dashboard computations as tools.
// Mounted at /mcp by internal/server and served over stdio by cmd/fitinsights_mcp.
func NewServer(service *dashboard.Service, version string) *mcp.Server {
	return newServer(service, version)
}

func newServer(service dashboardService, version string) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitinsights",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_granularities",
		Description: "Returns the granularities that have at least one table loaded (daily, hourly, minute, second). Use first to pick a granularity for the other tools.",
	}, h.ListGranularitiesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_metrics",
		Description: "Returns the metric names available at a granularity (e.g. TotalSteps, Calories, StepTotal). Arg: granularity.",
	}, h.ListMetricsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_users",
		Description: "Returns the ids of users with data for a metric at a granularity. Args: granularity, metric.",
	}, h.ListUsersTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_sleep_users",
		Description: "Returns the ids of users with at least one night of sleep data in the date range. Optional: metric, from_date, to_date (YYYY-MM-DD).",
	}, h.ListSleepUsersTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_heart_users",
		Description: "Returns the ids of users with per-minute heart rate or MET data.",
	}, h.ListHeartUsersTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_time_series",
		Description: "Returns the points of one metric of one user over time. Args: granularity, metric, user_id; optional: from_date, to_date (YYYY-MM-DD). Use when you need a user's trend for a metric.",
	}, h.GetTimeSeriesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_correlation",
		Description: "Returns the scatter points of two metrics of one user, the least squares line, the Pearson correlation coefficient and its interpretation. Args: granularity, x_metric, y_metric, user_id; optional: from_date, to_date.",
	}, h.GetCorrelationTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_sleep_report",
		Description: "Returns per-night sleep efficiency, duration or latency of one user, the average over the range and its quality assessment. Args: metric, user_id; optional: from_date, to_date.",
	}, h.GetSleepReportTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_heart_report",
		Description: "Returns per-minute heart rate or MET score of one user, the average and (for MET) the activity category. Args: metric (heartrate or MET), user_id; optional: from_date, to_date.",
	}, h.GetHeartReportTool())

	return s
}
