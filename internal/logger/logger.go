package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the different logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, printf-style messages. A named logger prefixes
// every message with its component name and shares its parent's level.
type Logger struct {
	state *state
	name  string
}

type state struct {
	mu      sync.RWMutex
	level   LogLevel
	loggers map[LogLevel]*log.Logger
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// New creates a logger writing to output at the given level
func New(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	st := &state{
		level:   level,
		loggers: make(map[LogLevel]*log.Logger, 4),
	}
	for _, l := range []LogLevel{DEBUG, INFO, WARNING, ERROR} {
		st.loggers[l] = log.New(output, fmt.Sprintf("[%s] ", l.String()), log.LstdFlags)
	}

	return &Logger{state: st}
}

// Init initializes the global logger with the specified level and output
func Init(level LogLevel, output io.Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = New(level, output)
}

// ParseLogLevel parses a string log level and returns the corresponding LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = New(INFO, os.Stderr)
	}
	return globalLogger
}

// Named returns a logger sharing this logger's level and output, tagged with a component name
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &Logger{state: l.state, name: name}
}

// Named returns a component logger derived from the global logger
func Named(name string) *Logger {
	return GetLogger().Named(name)
}

// SetLevel changes the level of this logger and every logger named from it
func (l *Logger) SetLevel(level LogLevel) {
	l.state.mu.Lock()
	l.state.level = level
	l.state.mu.Unlock()
}

// Level returns the current level
func (l *Logger) Level() LogLevel {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	return l.state.level
}

func (l *Logger) logf(level LogLevel, format string, v ...interface{}) {
	if l.Level() > level {
		return
	}
	if l.name != "" {
		format = "[" + l.name + "] " + format
	}
	l.state.loggers[level].Printf(format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(DEBUG, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(INFO, format, v...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, v ...interface{}) {
	l.logf(WARNING, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(ERROR, format, v...)
}

// Global convenience functions
func Debug(format string, v ...interface{}) {
	GetLogger().Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	GetLogger().Info(format, v...)
}

func Warning(format string, v ...interface{}) {
	GetLogger().Warning(format, v...)
}

func Error(format string, v ...interface{}) {
	GetLogger().Error(format, v...)
}

// SetLevel changes the log level of the global logger
func SetLevel(level LogLevel) {
	GetLogger().SetLevel(level)
}

// GetLevel returns the current log level
func GetLevel() LogLevel {
	return GetLogger().Level()
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return GetLevel() <= DEBUG
}
