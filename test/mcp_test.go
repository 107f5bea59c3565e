//go:build integration

package test

import (
	"context"
	"encoding/json"

	"github.com/2beens/fitinsights/internal/dashboard"
	"github.com/2beens/fitinsights/internal/records/recordstest"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestMCP() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	client := mcp.NewClient(&mcp.Implementation{Name: "integration-test", Version: "test"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: serverEndpoint + "/mcp",
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 9)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "get_time_series",
		Arguments: map[string]any{
			"granularity": "D",
			"metric":      "TotalSteps",
			"user_id":     recordstest.UserActive,
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	var chart dashboard.TimeSeriesChart
	require.NoError(t, json.Unmarshal([]byte(text.Text), &chart))
	assert.Len(t, chart.Series.Points, 4)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name: "get_correlation",
		Arguments: map[string]any{
			"granularity": "H",
			"x_metric":    "TotalSteps",
			"y_metric":    "Calories",
			"user_id":     recordstest.UserActive,
		},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t,
		"Error computing correlation: invalid metric [TotalSteps]: not recorded at Hourly granularity",
		res.Content[0].(*mcp.TextContent).Text,
	)
}
