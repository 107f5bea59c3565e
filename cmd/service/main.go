package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/fitinsights/internal"
	"github.com/2beens/fitinsights/internal/config"
	"github.com/2beens/fitinsights/internal/logging"
	"github.com/2beens/fitinsights/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	if err := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		MaxSizeMB:        cfg.LogMaxSizeMB,
		MaxBackups:       cfg.LogMaxBackups,
		MaxAgeDays:       cfg.LogMaxAgeDays,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "fitinsights-service",
	}); err != nil {
		log.Fatalf("logging setup: %s", err)
	}

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	dataDirOk, err := pkg.PathExists(cfg.DataDir, true)
	if err != nil {
		log.Fatalf("check data dir: %s", err)
	}
	if !dataDirOk {
		log.Fatalf("data dir does not exist: %s", cfg.DataDir)
	}
	log.Printf("data dir: %s", cfg.DataDir)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "unknown"
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	redisPassword := os.Getenv("FITINSIGHTS_REDIS_PASS")
	if cfg.RateLimitEnabled && redisPassword == "" {
		log.Warnln("redis password not set. use FITINSIGHTS_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
