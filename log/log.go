package log

import (
	"context"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	G = GetLogger

	// L is an alias for the standard logger.
	L = logrus.NewEntry(logrus.StandardLogger())
)

type (
	loggerKey struct{}
)

// WithLogger returns a new context with the provided logger. Use in
// combination with logger.WithField(s) for great effect.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the current logger from the context. If no logger is
// available, the default logger is returned.
func GetLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(loggerKey{})

	if logger == nil {
		return L
	}

	return logger.(*logrus.Entry)
}

var okPrefix = color.New(color.FgGreen).Sprint("[OK]")

// Success logs a green-tagged info message for user-visible milestones.
func Success(ctx context.Context, format string, args ...interface{}) {
	GetLogger(ctx).Infof(okPrefix+" "+format, args...)
}
