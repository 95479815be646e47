package logger

import (
	"os"

	"github.com/rs/zerolog"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type zeroLogger struct {
	log zerolog.Logger
}

func New(service string) Logger {
	hostname, _ := os.Hostname()
	zl := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", service).
		Str("hostname", hostname).
		Logger()

	return &zeroLogger{log: zl}
}

func (l *zeroLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.emit(l.log.Info(), action, message, requestID, details)
}

func (l *zeroLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.emit(l.log.Debug(), action, message, requestID, details)
}

func (l *zeroLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.emit(l.log.Error().Err(err), action, message, requestID, details)
}

func (l *zeroLogger) emit(e *zerolog.Event, action, message, requestID string, details map[string]interface{}) {
	if requestID != "" {
		e = e.Str("request_id", requestID)
	}
	if len(details) > 0 {
		e = e.Fields(details)
	}
	e.Str("action", action).Msg(message)
}
