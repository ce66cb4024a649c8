package logger

import (
	"io"
	"log"
	"strings"
)

const (
	DebugLevel = iota
	InfoLevel
	WarningLevel
	ErrorLevel
	logLevelsCount // actually not a real log level, but simplifies some code
)

type Logger struct {
	loggers [logLevelsCount]*log.Logger
}

func logLevelString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	default:
		return "?????"
	}
}

func logLevelPrefix(level int) string {
	switch level {
	case DebugLevel:
		return "[DBG] "
	case InfoLevel:
		return "[INF] "
	case WarningLevel:
		return "[WRN] "
	case ErrorLevel:
		return "[ERR] "
	default:
		return "[???] "
	}
}

// ParseLevel converts a level name to its constant. Unknown names map to InfoLevel.
func ParseLevel(name string) int {
	switch strings.ToUpper(name) {
	case "DEBUG", "DBG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARNING", "WARN":
		return WarningLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func New(level int, writers ...io.Writer) *Logger {
	var msgWriters []*MessageWriter
	w := []io.Writer{}
	for _, onewriter := range writers {
		// Message writers must know the level of the line they are formatting,
		// so they get a per-level copy below. Everything else is shared.
		switch typewr := onewriter.(type) {
		case *MessageWriter:
			msgWriters = append(msgWriters, typewr)
		default:
			w = append(w, typewr)
		}
	}

	nullWriter := &nullWritter{}
	lgr := Logger{}

	makeWriters := func(wrs ...io.Writer) io.Writer {
		switch len(wrs) {
		case 0:
			return nullWriter
		case 1:
			return wrs[0]
		default:
			return io.MultiWriter(wrs...)
		}
	}

	for i := 0; i < logLevelsCount; i++ {
		if i < level {
			lgr.loggers[i] = log.New(nullWriter, "", log.Ldate|log.Ltime)
			continue
		}

		levelWriters := append([]io.Writer{}, w...)
		for _, mw := range msgWriters {
			levelWriters = append(levelWriters, &MessageWriter{wr: mw.wr, level: logLevelString(i)})
		}
		lgr.loggers[i] = log.New(makeWriters(levelWriters...), logLevelPrefix(i), log.Ldate|log.Ltime)
	}
	return &lgr
}

func (lgr *Logger) Debug() *log.Logger {
	return lgr.loggers[DebugLevel]
}

func (lgr *Logger) Info() *log.Logger {
	return lgr.loggers[InfoLevel]
}

func (lgr *Logger) Warning() *log.Logger {
	return lgr.loggers[WarningLevel]
}

func (lgr *Logger) Error() *log.Logger {
	return lgr.loggers[ErrorLevel]
}
