package logging

import "errors"

// MultiLogger fans evaluation logs out to several sinks, such
// as the console and an engine.log file.
type MultiLogger struct {
	sinks []Logger
}

// NewMultiLogger combines loggers. nil entries are skipped and
// nested MultiLoggers are flattened.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		switch l := l.(type) {
		case nil:
		case *MultiLogger:
			m.sinks = append(m.sinks, l.sinks...)
		default:
			m.sinks = append(m.sinks, l)
		}
	}
	return m
}

// Len returns the number of sinks.
func (m *MultiLogger) Len() int { return len(m.sinks) }

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.sinks {
		fn(l)
	}
}

func (m *MultiLogger) Info(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Info(msg, fields...) })
}

func (m *MultiLogger) Warn(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Warn(msg, fields...) })
}

func (m *MultiLogger) Error(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Error(msg, fields...) })
}

// Debug forwards to every sink; each sink applies its own
// verbosity.
func (m *MultiLogger) Debug(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Debug(msg, fields...) })
}

// WithFields returns a MultiLogger whose sinks all carry fields.
func (m *MultiLogger) WithFields(fields ...Field) Logger {
	child := &MultiLogger{sinks: make([]Logger, 0, len(m.sinks))}
	m.each(func(l Logger) {
		child.sinks = append(child.sinks, l.WithFields(fields...))
	})
	return child
}

// Close closes every sink and joins their errors.
func (m *MultiLogger) Close() error {
	var errs []error
	m.each(func(l Logger) {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
