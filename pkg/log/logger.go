// Package log provides module-named leveled loggers shared by the renderer,
// the scene loader and the command line tool.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
	"golang.org/x/term"
)

// Level is a logging verbosity, ordered from most to least verbose.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = [...]string{"debug", "info", "notice", "warning", "error"}

var backendLevels = [...]logging.Level{logging.DEBUG, logging.INFO, logging.NOTICE, logging.WARNING, logging.ERROR}

func (l Level) String() string {
	if l < Debug || l > Error {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel returns the level with the given case-insensitive name.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(name, n) {
			return Level(i), nil
		}
	}
	return Notice, fmt.Errorf("log: unknown level %q (want one of %s)", name, strings.Join(levelNames[:], ", "))
}

const (
	colorFormat = `%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`
	plainFormat = `[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`
)

// Logger is implemented by the loggers returned from New
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

var (
	mu      sync.Mutex
	backend logging.LeveledBackend
	level   = Notice
)

// New creates a logger reporting under the given module name.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to sink. Colors are used only when sink is a
// terminal. The current level is kept.
func SetSink(sink io.Writer) {
	format := plainFormat
	if f, ok := sink.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		format = colorFormat
	}

	mu.Lock()
	defer mu.Unlock()
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), logging.MustStringFormatter(format))
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(backendLevels[level], "")
	logging.SetBackend(backend)
}

// SetLevel sets the verbosity of every module.
func SetLevel(l Level) {
	if l < Debug || l > Error {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	level = l
	backend.SetLevel(backendLevels[l], "")
}

// GetLevel returns the verbosity set by the last SetLevel call.
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

func init() {
	SetSink(os.Stderr)
}
