package logger

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

type Logger struct {
	logger *logrus.Logger
}

// New builds a Logger writing to out. level is parsed by logrus and falls back
// to info; format "json" selects the JSON formatter, anything else text.
func New(out io.Writer, level string, format string) *Logger {
	l := logrus.New()
	l.Out = out

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	}

	return &Logger{logger: l}
}

func NewStdout(level string, format string) *Logger {
	return New(os.Stdout, level, format)
}

// Discard returns a Logger that drops everything, for tests.
func Discard() *Logger {
	return New(io.Discard, "panic", "text")
}

func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(context.Background(), logrus.DebugLevel, msg, fields...)
}

func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(context.Background(), logrus.InfoLevel, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(context.Background(), logrus.WarnLevel, msg, fields...)
}

func (l *Logger) Error(msg string, fields ...Fields) {
	l.log(context.Background(), logrus.ErrorLevel, msg, fields...)
}

// WarnCtx and ErrorCtx attach ctx so hooks can read request-scoped values.
func (l *Logger) WarnCtx(ctx context.Context, msg string, fields ...Fields) {
	l.log(ctx, logrus.WarnLevel, msg, fields...)
}

func (l *Logger) ErrorCtx(ctx context.Context, msg string, fields ...Fields) {
	l.log(ctx, logrus.ErrorLevel, msg, fields...)
}

func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, fields ...Fields) {
	if l == nil {
		return
	}
	entry := l.logger.WithContext(ctx)
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	entry.Log(level, msg)
}
