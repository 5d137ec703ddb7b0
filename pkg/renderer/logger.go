package renderer

import (
	"github.com/golang/glog"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// GlogLogger implements core.Logger on top of glog at a fixed verbosity
type GlogLogger struct {
	level glog.Level
}

// NewGlogLogger creates a logger that emits only when glog's -v is at least level
func NewGlogLogger(level glog.Level) *GlogLogger {
	return &GlogLogger{level: level}
}

// NewDefaultLogger creates a logger that always writes at INFO
func NewDefaultLogger() core.Logger {
	return NewGlogLogger(0)
}

// Printf logs through glog.V(level).Infof
func (l *GlogLogger) Printf(format string, args ...interface{}) {
	glog.V(l.level).Infof(format, args...)
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}
