package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"lazybtree"
)

// Logrus wraps a logrus.Logger to implement lazybtree.Logger.
type Logrus struct {
	logger *logrus.Logger
}

// NewLogrus creates a lazybtree.Logger from a logrus.Logger.
func NewLogrus(logger *logrus.Logger) lazybtree.Logger {
	return &Logrus{logger: logger}
}

// Error logs an error message with key-value pairs.
func (l *Logrus) Error(msg string, args ...any) {
	l.logger.WithFields(argsToFields(args)).Error(msg)
}

// Warn logs a warning message with key-value pairs.
func (l *Logrus) Warn(msg string, args ...any) {
	l.logger.WithFields(argsToFields(args)).Warn(msg)
}

// Info logs an info message with key-value pairs.
func (l *Logrus) Info(msg string, args ...any) {
	l.logger.WithFields(argsToFields(args)).Info(msg)
}

// argsToFields pairs up slog-style alternating keys and values. Non-string
// keys are formatted; a trailing key without a value is kept under "!BADKEY"
// like slog does.
func argsToFields(args []any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i < len(args); i += 2 {
		if i == len(args)-1 {
			fields["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields[key] = args[i+1]
	}
	return fields
}
