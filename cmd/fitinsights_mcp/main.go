// Package main runs the fitinsights MCP server over stdio (for local MCP clients).
// The same tools are mounted on the main service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/2beens/fitinsights/internal/config"
	"github.com/2beens/fitinsights/internal/correlation"
	"github.com/2beens/fitinsights/internal/dashboard"
	dashboardmcp "github.com/2beens/fitinsights/internal/dashboard/mcp"
	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/telemetry/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	logrus.SetOutput(log.Writer())

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	alignment, err := correlation.ParseAlignment(cfg.CorrelationAlignment)
	if err != nil {
		log.Fatalf("correlation alignment: %v", err)
	}

	ctx := context.Background()
	store, err := records.Load(ctx, cfg.DataDir)
	if err != nil {
		log.Fatalf("load records: %v", err)
	}

	service, err := dashboard.NewService(ctx, dashboard.NewServiceParams{
		Store:          store,
		Alignment:      alignment,
		MetricsManager: metrics.NewManager("fitinsights", "mcp", prometheus.NewRegistry()),
	})
	if err != nil {
		log.Fatalf("dashboard service: %v", err)
	}

	server := dashboardmcp.NewServer(service, "1.0.0")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
