package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mutex  sync.RWMutex
	global *Logger
)

func init() {
	// Start with error+warning level to stderr
	SetupGlobalLoger(WarningLevel, os.Stderr)
}

// SetupGlobalLoger replaces the package level logger.
// Safe to call while other goroutines are logging.
func SetupGlobalLoger(level int, writers ...io.Writer) {
	lgr := New(level, writers...)

	mutex.Lock()
	defer mutex.Unlock()
	global = lgr
}

func get() *Logger {
	mutex.RLock()
	defer mutex.RUnlock()
	return global
}

func Debug() *log.Logger {
	return get().Debug()
}

func Info() *log.Logger {
	return get().Info()
}

func Warning() *log.Logger {
	return get().Warning()
}

func Error() *log.Logger {
	return get().Error()
}
