package logging

// Logger is the minimal logging surface the rest of the program consumes.
// Diagnostics are plain format strings; structure is the backend's concern.
type Logger interface {
	Debugf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
}

type LogFunc func(format string, args ...interface{})

type LogFuncs struct {
	Debugf LogFunc
	Infof  LogFunc
	Warnf  LogFunc
	Errorf LogFunc
}

type logger struct {
	prefix string
	funcs  LogFuncs
}

// NewLogger wraps a set of logging functions with a fixed message prefix.
func NewLogger(prefix string, funcs LogFuncs) Logger {
	return &logger{
		prefix: prefix,
		funcs:  funcs,
	}
}

func (l *logger) Debugf(msg string, args ...interface{}) {
	if l.funcs.Debugf != nil {
		l.funcs.Debugf(l.prefix+msg, args...)
	}
}

func (l *logger) Infof(msg string, args ...interface{}) {
	if l.funcs.Infof != nil {
		l.funcs.Infof(l.prefix+msg, args...)
	}
}

func (l *logger) Warnf(msg string, args ...interface{}) {
	if l.funcs.Warnf != nil {
		l.funcs.Warnf(l.prefix+msg, args...)
	}
}

func (l *logger) Errorf(msg string, args ...interface{}) {
	if l.funcs.Errorf != nil {
		l.funcs.Errorf(l.prefix+msg, args...)
	}
}
