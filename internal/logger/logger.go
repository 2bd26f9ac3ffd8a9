package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Logger handles dual-output logging (console + file)
type Logger struct {
	console *log.Logger
	file    *log.Logger
	logFile *os.File
	verbose bool
}

var globalLogger *Logger

// fallback is used before Init: warnings and errors only, on stderr
var fallback = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

// Init initializes the global logger
// consoleOutput: where to write INFO and above (typically os.Stderr)
// logFilePath: optional log file receiving every level in logfmt; empty disables it
// verbose: if true, show DEBUG logs on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	l := &Logger{
		console: log.NewWithOptions(consoleOutput, log.Options{
			Level:  level,
			Prefix: "mamlgen",
		}),
		verbose: verbose,
	}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.logFile = f
		l.file = log.NewWithOptions(f, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})
	}

	Close()
	globalLogger = l
	return nil
}

// Close closes the log file
func Close() {
	if globalLogger != nil && globalLogger.logFile != nil {
		globalLogger.logFile.Close()
		globalLogger.logFile = nil
		globalLogger.file = nil
	}
}

// Debug logs a debug message (file only, unless verbose)
func Debug(msg string, keyvals ...interface{}) {
	if globalLogger == nil {
		return
	}
	globalLogger.log(log.DebugLevel, msg, keyvals...)
}

// Info logs an info message (console + file)
func Info(msg string, keyvals ...interface{}) {
	if globalLogger == nil {
		return
	}
	globalLogger.log(log.InfoLevel, msg, keyvals...)
}

// Warn logs a warning message (console + file)
func Warn(msg string, keyvals ...interface{}) {
	if globalLogger == nil {
		fallback.Warn(msg, keyvals...)
		return
	}
	globalLogger.log(log.WarnLevel, msg, keyvals...)
}

// Error logs an error message (console + file)
func Error(msg string, keyvals ...interface{}) {
	if globalLogger == nil {
		fallback.Error(msg, keyvals...)
		return
	}
	globalLogger.log(log.ErrorLevel, msg, keyvals...)
}

func (l *Logger) log(level log.Level, msg string, keyvals ...interface{}) {
	if l.file != nil {
		l.file.Log(level, msg, keyvals...)
	}
	l.console.Log(level, msg, keyvals...)
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if globalLogger != nil && globalLogger.logFile != nil {
		return globalLogger.logFile.Name()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if globalLogger == nil {
		return false
	}
	return globalLogger.verbose
}
