package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/2beens/fitinsights/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	// rotation of LogFileName; zero MaxBackups and MaxAgeDays keep every rotated file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. It fails only on an unknown level.
func Setup(params LoggerSetupParams) error {
	level, err := GetLevel(params.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			TracesSampleRate: 1.0,
			ServerName:       params.SentryServerName,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		}

		logrus.AddHook(NewSentryHook([]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		}))
		logrus.Infoln("sentry hook added")
	}

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Debugln("writing logs only to STDOUT")
		return nil
	}

	logrus.SetOutput(newFileWriter(params))
	logrus.Debugf("writing logs to [%s], stdout: %t", params.LogFileName, params.LogToStdout)
	return nil
}

func newFileWriter(params LoggerSetupParams) *pkg.CombinedWriter {
	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	fileLogger := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    params.MaxSizeMB,
		MaxBackups: params.MaxBackups,
		MaxAge:     params.MaxAgeDays,
		LocalTime:  false,
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, fileLogger)
	}
	return pkg.NewCombinedWriter(fileLogger)
}

// GetLevel maps a config level name to a logrus level.
func GetLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	case "fatal":
		return logrus.FatalLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level [%s]", level)
	}
}
