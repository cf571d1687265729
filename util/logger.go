package util

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	globalLogger Logger = defaultLogger{}
	globalLock   sync.RWMutex
	debugEnabled atomic.Bool
)

func SetLogger(log Logger) {
	if log == nil {
		panic("Can't set the logger to nil")
	}

	globalLock.Lock()
	globalLogger = log
	globalLock.Unlock()
}

func currentLogger() Logger {
	globalLock.RLock()
	defer globalLock.RUnlock()
	return globalLogger
}

// SetDebug turns debug level output on or off. It is driven by the
// tpaDebugLog configuration key.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

func DebugEnabled() bool {
	return debugEnabled.Load()
}

func Printf(format string, a ...any) {
	currentLogger().Printf(format, a...)
}

func Infof(format string, a ...any) {
	currentLogger().Infof(format, a...)
}

func Debugf(format string, a ...any) {
	if !debugEnabled.Load() {
		return
	}
	currentLogger().Debugf(format, a...)
}

func Warnf(format string, a ...any) {
	currentLogger().Warnf(format, a...)
}

func Errorf(format string, a ...any) error {
	return currentLogger().Errorf(format, a...)
}

type Logger interface {
	// Printf - Straight print passthrough
	Printf(format string, a ...any)
	// Infof - Info level print
	Infof(format string, a ...any)
	// Debugf - Debug level print, only emitted when debug logging is on
	Debugf(format string, a ...any)
	// Warnf - Warn level print, something that might be a problem
	Warnf(format string, a ...any)
	// Errorf - Error level print - returns an error
	Errorf(format string, a ...any) error
}

type defaultLogger struct{}

func withNewline(format string) string {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	return format
}

func (defaultLogger) Debugf(format string, a ...any) {
	log.Printf("TPA DEBUG: "+withNewline(format), a...)
}

func (defaultLogger) Infof(format string, a ...any) {
	log.Printf("TPA INFO: "+withNewline(format), a...)
}

func (defaultLogger) Printf(format string, a ...any) {
	log.Printf(withNewline(format), a...)
}

func (defaultLogger) Warnf(format string, a ...any) {
	log.Printf("TPA WARN: "+withNewline(format), a...)
}

func (defaultLogger) Errorf(format string, a ...any) error {
	log.Printf("TPA ERROR: "+withNewline(format), a...)
	return fmt.Errorf(format, a...)
}

type DiscardLogger struct{}

func (DiscardLogger) Printf(_ string, _ ...any) {

}

func (DiscardLogger) Infof(_ string, _ ...any) {

}

func (DiscardLogger) Debugf(_ string, _ ...any) {

}

func (DiscardLogger) Warnf(_ string, _ ...any) {

}

func (DiscardLogger) Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}
