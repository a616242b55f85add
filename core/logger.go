package core

// Logger is any service that can log messages with increasing severity.
// Implementations may inspect args for well-known types (errors, tagged
// maps, the acting account) and forward them to external sinks.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
