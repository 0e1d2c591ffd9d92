// Package logging is the structured logging seam of plannerfin. Loaders,
// the consultor service, the AI narrator and the commands all log through
// Logger, which is backed by logrus in production and by MockLogger in tests.
package logging

// Logger is the structured logger handed to every component at construction.
// Context such as the month under analysis or the category being budgeted
// travels as fields, keyed by the Field* constants.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal and Fatalf log and then exit the process. Only the command
	// entry points call them.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})

	// WithError, WithField and WithFields derive a logger that adds the
	// given context to every entry it writes.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is one key/value pair attached to a log entry, for example
// {Key: FieldMonth, Value: "2026-02"}.
type Field struct {
	Key   string
	Value interface{}
}
