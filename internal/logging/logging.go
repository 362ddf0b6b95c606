package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogFile is created in the temp directory when no path is configured.
const DefaultLogFile = "MoveToDesktop.log"

var (
	// Logger discards everything until Init is called.
	Logger  = zerolog.Nop()
	logFile *os.File
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// Options configures Init
type Options struct {
	Path  string // log file, empty = %TEMP%\MoveToDesktop.log
	Level string // zerolog level name, empty = info
}

// DefaultPath returns the log file used when Options.Path is empty
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultLogFile)
}

// Init opens the log file and installs the global logger
func Init(opts Options) error {
	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	zerolog.SetGlobalLevel(level)

	Logger = newLogger(logFile)
	return nil
}

// InitWriter installs a logger writing to w
func InitWriter(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	Logger = newLogger(w)
}

func newLogger(w io.Writer) zerolog.Logger {
	// Configure field names
	zerolog.MessageFieldName = "msg"

	exe, _ := os.Executable()
	return zerolog.New(w).Hook(timestampHook{}).With().Str("exe", exe).Logger()
}

// ParseLevel maps a config level name to a zerolog level
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// SetDebug toggles debug level globally
func SetDebug(enabled bool) {
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Close closes the log file and reverts to the no-op logger
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Logger = zerolog.Nop()
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
