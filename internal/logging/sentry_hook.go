package logging

import (
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards log entries of the given levels to Sentry.
type SentryHook struct {
	hub    *sentry.Hub
	levels []logrus.Level
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return NewSentryHookWithHub(sentry.CurrentHub(), levels)
}

func NewSentryHookWithHub(hub *sentry.Hub, levels []logrus.Level) *SentryHook {
	return &SentryHook{
		hub:    hub,
		levels: levels,
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	event := sentry.NewEvent()
	event.Level = sentryLevel(entry.Level)
	event.Message = entry.Message
	event.Timestamp = entry.Time

	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				event.Exception = append(event.Exception, sentry.Exception{
					Value: err.Error(),
					Type:  "error",
				})
				continue
			}
		}
		event.Extra[k] = v
	}

	h.hub.CaptureEvent(event)
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
