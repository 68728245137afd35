// Package monitoring provides the diagnostic sink for sensor descriptors.
// Validation corrections go to Warnf, configuration dumps to Logf.
package monitoring

import (
	"fmt"
	"log"
	"sync"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Warnf is the warning-level diagnostic logger. It defaults to log.Printf with a
// "[warn]" prefix and may be replaced by SetWarnLogger.
var Warnf func(format string, v ...interface{}) = func(format string, v ...interface{}) {
	log.Printf("[warn] "+format, v...)
}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetWarnLogger replaces the warning logger. Passing nil will set a no-op logger.
func SetWarnLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Warnf = func(string, ...interface{}) {}
		return
	}
	Warnf = f
}

// Recorder accumulates diagnostics in memory. Used by tests to assert on the
// exact corrections emitted by Validate.
type Recorder struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
}

// Infos returns a copy of the recorded info-level lines.
func (r *Recorder) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...)
}

// Warnings returns a copy of the recorded warning-level lines.
func (r *Recorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warnings...)
}

// Capture redirects both loggers into a Recorder and returns it together with a
// restore function. Callers must invoke restore (typically via defer) to put the
// previous loggers back.
func Capture() (*Recorder, func()) {
	rec := &Recorder{}
	prevLog, prevWarn := Logf, Warnf
	Logf = func(format string, v ...interface{}) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.infos = append(rec.infos, fmt.Sprintf(format, v...))
	}
	Warnf = func(format string, v ...interface{}) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.warnings = append(rec.warnings, fmt.Sprintf(format, v...))
	}
	return rec, func() {
		Logf, Warnf = prevLog, prevWarn
	}
}
