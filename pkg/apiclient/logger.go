package apiclient

// Logger defines the logging surface the client relies on.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
	InfoObj(msg, key string, obj any)
	ErrorObj(msg, key string, obj any)
}

// NopLogger discards everything. It is the default when no logger is injected.
type NopLogger struct{}

func (NopLogger) Infof(string, ...any)         {}
func (NopLogger) Errorf(string, ...any)        {}
func (NopLogger) InfoObj(string, string, any)  {}
func (NopLogger) ErrorObj(string, string, any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return NopLogger{}
	}
	return log
}
