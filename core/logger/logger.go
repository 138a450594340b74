package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is what every core component depends on. Builds running in
// parallel each receive it explicitly.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range mw.writers {
		if _, err := w.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (mw *MultiWriter) Add(writer io.Writer) {
	mw.writers = append(mw.writers, writer)
}

type ColoredLogger struct {
	verbose bool
	colors  bool
	mu      sync.RWMutex
	writers map[LogLevel]io.Writer
	loggers map[LogLevel]*log.Logger
	now     func() time.Time
}

// New returns a logger writing every level to w.
func New(w io.Writer, verbose bool) *ColoredLogger {
	cl := &ColoredLogger{
		verbose: verbose,
		colors:  true,
		writers: make(map[LogLevel]io.Writer),
		loggers: make(map[LogLevel]*log.Logger),
		now:     time.Now,
	}
	for level := DEBUG; level <= ERROR; level++ {
		cl.writers[level] = w
		cl.loggers[level] = log.New(w, "", 0)
	}
	return cl
}

// NewStd writes DEBUG..WARN to stdout and ERROR to stderr.
func NewStd(verbose bool) *ColoredLogger {
	cl := New(os.Stdout, verbose)
	cl.SetWriter(ERROR, os.Stderr)
	return cl
}

func (cl *ColoredLogger) SetVerbose(verbose bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.verbose = verbose
}

func (cl *ColoredLogger) IsVerbose() bool {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.verbose
}

// SetColors toggles ANSI escapes, useful when the output is a file.
func (cl *ColoredLogger) SetColors(enabled bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.colors = enabled
}

func (cl *ColoredLogger) SetWriter(level LogLevel, writer io.Writer) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.writers[level] = writer
	cl.loggers[level] = log.New(writer, "", 0)
}

func (cl *ColoredLogger) AddWriter(level LogLevel, writer io.Writer) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	currentWriter := cl.writers[level]

	if mw, ok := currentWriter.(*MultiWriter); ok {
		mw.Add(writer)
	} else {
		multiWriter := NewMultiWriter(currentWriter, writer)
		cl.writers[level] = multiWriter
		cl.loggers[level] = log.New(multiWriter, "", 0)
	}
}

func (cl *ColoredLogger) AddWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= ERROR; level++ {
		cl.AddWriter(level, writer)
	}
}

func (cl *ColoredLogger) getColor(level LogLevel) string {
	switch level {
	case DEBUG:
		return ColorGray
	case INFO:
		return ColorBlue
	case WARN:
		return ColorYellow
	case ERROR:
		return ColorRed
	default:
		return ColorWhite
	}
}

func (cl *ColoredLogger) formatMessage(level LogLevel, message string, colors bool) string {
	timestamp := cl.now().Format("06-01-02 15:04:05")

	if !colors {
		return fmt.Sprintf("[%s] %-5s %s", timestamp, level.String(), message)
	}

	tsColor := ColorGray
	bracketColor := ColorGray
	levelColor := cl.getColor(level)
	reset := ColorReset

	return fmt.Sprintf(
		"%s[%s%s%s]%s %s%-5s%s %s%s",
		bracketColor, tsColor, timestamp, bracketColor, reset,
		levelColor, level.String(), reset,
		message, reset,
	)
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}

	logger := cl.loggers[level]
	colors := cl.colors
	cl.mu.RUnlock()

	message := fmt.Sprintf(format, args...)
	logger.Println(cl.formatMessage(level, message, colors))
}

func (cl *ColoredLogger) Debug(format string, args ...interface{}) {
	cl.log(DEBUG, format, args...)
}

func (cl *ColoredLogger) Info(format string, args ...interface{}) {
	cl.log(INFO, format, args...)
}

func (cl *ColoredLogger) Warn(format string, args ...interface{}) {
	cl.log(WARN, format, args...)
}

func (cl *ColoredLogger) Error(format string, args ...interface{}) {
	cl.log(ERROR, format, args...)
}

// GetLogFromLevel returns the printf-style function for level.
func GetLogFromLevel(l Logger, level LogLevel) func(format string, args ...interface{}) {
	switch level {
	case DEBUG:
		return l.Debug
	case WARN:
		return l.Warn
	case ERROR:
		return l.Error
	default:
		return l.Info
	}
}

type nop struct{}

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}

// Nop discards everything.
func Nop() Logger { return nop{} }
