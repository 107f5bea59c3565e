package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/fitinsights/internal/dashboard"
	"github.com/2beens/fitinsights/internal/heart"
	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/sleep"
	"github.com/2beens/fitinsights/internal/timerange"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// dashboardService is the part of dashboard.Service the tools need.
type dashboardService interface {
	GranularityOptions() []dashboard.Option
	MetricOptions(g records.Granularity) ([]dashboard.Option, error)
	UserOptions(ctx context.Context, g records.Granularity, metric string) ([]dashboard.Option, error)
	SleepUserOptions(ctx context.Context, dr timerange.DateRange, metric sleep.Metric) ([]dashboard.Option, error)
	HeartUserOptions(ctx context.Context) []dashboard.Option
	TimeSeries(ctx context.Context, sel dashboard.TimeSeriesSelection) (*dashboard.TimeSeriesChart, error)
	Correlation(ctx context.Context, sel dashboard.CorrelationSelection) (*dashboard.CorrelationChart, error)
	Sleep(ctx context.Context, sel dashboard.SleepSelection) (*dashboard.SleepReport, error)
	Heart(ctx context.Context, sel dashboard.HeartSelection) (*dashboard.HeartReport, error)
}

// Handler handles MCP tool requests: parses input, calls the dashboard service, formats MCP result.
type Handler struct {
	service dashboardService
}

func NewHandler(service dashboardService) *Handler {
	return &Handler{
		service: service,
	}
}

// ListGranularitiesTool returns the MCP tool handler for list_granularities.
func (h *Handler) ListGranularitiesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.GranularityOptions())
	}
}

// MetricsInput is the input for list_metrics.
type MetricsInput struct {
	Granularity string `json:"granularity" jsonschema:"Granularity: D, H, M or S (daily, hourly, minute, second)"`
}

// ListMetricsTool returns the MCP tool handler for list_metrics.
func (h *Handler) ListMetricsTool() func(context.Context, *mcp.CallToolRequest, MetricsInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in MetricsInput) (*mcp.CallToolResult, any, error) {
		g, err := records.ParseGranularity(in.Granularity)
		if err != nil {
			return errorResult("Invalid granularity", err)
		}
		options, err := h.service.MetricOptions(g)
		if err != nil {
			return errorResult("Error listing metrics", err)
		}
		return jsonResult(options)
	}
}

// UsersInput is the input for list_users.
type UsersInput struct {
	Granularity string `json:"granularity" jsonschema:"Granularity: D, H, M or S (daily, hourly, minute, second)"`
	Metric      string `json:"metric" jsonschema:"Metric name as returned by list_metrics (e.g. TotalSteps)"`
}

// ListUsersTool returns the MCP tool handler for list_users.
func (h *Handler) ListUsersTool() func(context.Context, *mcp.CallToolRequest, UsersInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UsersInput) (*mcp.CallToolResult, any, error) {
		g, err := records.ParseGranularity(in.Granularity)
		if err != nil {
			return errorResult("Invalid granularity", err)
		}
		options, err := h.service.UserOptions(ctx, g, in.Metric)
		if err != nil {
			return errorResult("Error listing users", err)
		}
		return jsonResult(options)
	}
}

// SleepUsersInput is the input for list_sleep_users.
type SleepUsersInput struct {
	Metric   string `json:"metric,omitempty" jsonschema:"Sleep metric: SleepEfficiency, SleepDuration or SleepLatency (default SleepEfficiency)"`
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), open when empty"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), open when empty"`
}

// ListSleepUsersTool returns the MCP tool handler for list_sleep_users.
func (h *Handler) ListSleepUsersTool() func(context.Context, *mcp.CallToolRequest, SleepUsersInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SleepUsersInput) (*mcp.CallToolResult, any, error) {
		metric := sleep.MetricEfficiency
		if in.Metric != "" {
			var err error
			if metric, err = sleep.ParseMetric(in.Metric); err != nil {
				return errorResult("Invalid metric", err)
			}
		}
		dr, err := timerange.ParseDateRange(in.FromDate, in.ToDate)
		if err != nil {
			return errorResult("Invalid date range", err)
		}
		options, err := h.service.SleepUserOptions(ctx, dr, metric)
		if err != nil {
			return errorResult("Error listing sleep users", err)
		}
		return jsonResult(options)
	}
}

// ListHeartUsersTool returns the MCP tool handler for list_heart_users.
func (h *Handler) ListHeartUsersTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.HeartUserOptions(ctx))
	}
}

// TimeSeriesInput is the input for get_time_series.
type TimeSeriesInput struct {
	Granularity string `json:"granularity" jsonschema:"Granularity: D, H, M or S (daily, hourly, minute, second)"`
	Metric      string `json:"metric" jsonschema:"Metric name as returned by list_metrics"`
	UserID      int64  `json:"user_id" jsonschema:"User id as returned by list_users"`
	FromDate    string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), open when empty"`
	ToDate      string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), open when empty"`
}

// GetTimeSeriesTool returns the MCP tool handler for get_time_series.
func (h *Handler) GetTimeSeriesTool() func(context.Context, *mcp.CallToolRequest, TimeSeriesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TimeSeriesInput) (*mcp.CallToolResult, any, error) {
		g, err := records.ParseGranularity(in.Granularity)
		if err != nil {
			return errorResult("Invalid granularity", err)
		}
		dr, err := timerange.ParseDateRange(in.FromDate, in.ToDate)
		if err != nil {
			return errorResult("Invalid date range", err)
		}
		chart, err := h.service.TimeSeries(ctx, dashboard.TimeSeriesSelection{
			Granularity: g,
			Metric:      in.Metric,
			UserID:      in.UserID,
			Range:       dr,
		})
		if err != nil {
			return errorResult("Error computing time series", err)
		}
		return jsonResult(chart)
	}
}

// CorrelationInput is the input for get_correlation.
type CorrelationInput struct {
	Granularity string `json:"granularity" jsonschema:"Granularity: D, H, M or S (daily, hourly, minute, second)"`
	XMetric     string `json:"x_metric" jsonschema:"Metric on the x axis"`
	YMetric     string `json:"y_metric" jsonschema:"Metric on the y axis"`
	UserID      int64  `json:"user_id" jsonschema:"User id as returned by list_users"`
	FromDate    string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), open when empty"`
	ToDate      string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), open when empty"`
}

// GetCorrelationTool returns the MCP tool handler for get_correlation.
func (h *Handler) GetCorrelationTool() func(context.Context, *mcp.CallToolRequest, CorrelationInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CorrelationInput) (*mcp.CallToolResult, any, error) {
		g, err := records.ParseGranularity(in.Granularity)
		if err != nil {
			return errorResult("Invalid granularity", err)
		}
		dr, err := timerange.ParseDateRange(in.FromDate, in.ToDate)
		if err != nil {
			return errorResult("Invalid date range", err)
		}
		chart, err := h.service.Correlation(ctx, dashboard.CorrelationSelection{
			Granularity: g,
			XMetric:     in.XMetric,
			YMetric:     in.YMetric,
			UserID:      in.UserID,
			Range:       dr,
		})
		if err != nil {
			return errorResult("Error computing correlation", err)
		}
		return jsonResult(chart)
	}
}

// SleepReportInput is the input for get_sleep_report.
type SleepReportInput struct {
	Metric   string `json:"metric" jsonschema:"Sleep metric: SleepEfficiency, SleepDuration or SleepLatency"`
	UserID   int64  `json:"user_id" jsonschema:"User id as returned by list_sleep_users"`
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), open when empty"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), open when empty"`
}

// GetSleepReportTool returns the MCP tool handler for get_sleep_report.
func (h *Handler) GetSleepReportTool() func(context.Context, *mcp.CallToolRequest, SleepReportInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SleepReportInput) (*mcp.CallToolResult, any, error) {
		metric, err := sleep.ParseMetric(in.Metric)
		if err != nil {
			return errorResult("Invalid metric", err)
		}
		dr, err := timerange.ParseDateRange(in.FromDate, in.ToDate)
		if err != nil {
			return errorResult("Invalid date range", err)
		}
		report, err := h.service.Sleep(ctx, dashboard.SleepSelection{
			Metric: metric,
			UserID: in.UserID,
			Range:  dr,
		})
		if err != nil {
			return errorResult("Error computing sleep report", err)
		}
		return jsonResult(report)
	}
}

// HeartReportInput is the input for get_heart_report.
type HeartReportInput struct {
	Metric   string `json:"metric" jsonschema:"heartrate (beats per minute) or MET"`
	UserID   int64  `json:"user_id" jsonschema:"User id as returned by list_heart_users"`
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), open when empty"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), open when empty"`
}

// GetHeartReportTool returns the MCP tool handler for get_heart_report.
func (h *Handler) GetHeartReportTool() func(context.Context, *mcp.CallToolRequest, HeartReportInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in HeartReportInput) (*mcp.CallToolResult, any, error) {
		metric, err := heart.ParseMetric(in.Metric)
		if err != nil {
			return errorResult("Invalid metric", err)
		}
		dr, err := timerange.ParseDateRange(in.FromDate, in.ToDate)
		if err != nil {
			return errorResult("Invalid date range", err)
		}
		report, err := h.service.Heart(ctx, dashboard.HeartSelection{
			Metric: metric,
			UserID: in.UserID,
			Range:  dr,
		})
		if err != nil {
			return errorResult("Error computing heart report", err)
		}
		return jsonResult(report)
	}
}

func errorResult(prefix string, err error) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: prefix + ": " + err.Error()}},
		IsError: true,
	}, nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}
