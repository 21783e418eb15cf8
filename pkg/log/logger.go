package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Level is a logging verbosity. Messages below the active level are dropped.
type Level int

// Levels in increasing order of severity
const (
	Debug   Level = iota // Per-row progress and other diagnostics
	Info                 // Scene and BVH construction details
	Notice               // Render summaries, the default
	Warning              // Recoverable problems
	Error                // Failed operations
)

var levelNames = [...]string{"debug", "info", "notice", "warning", "error"}

var backendLevels = [...]logging.Level{logging.DEBUG, logging.INFO, logging.NOTICE, logging.WARNING, logging.ERROR}

// String returns the lower-case level name
func (l Level) String() string {
	if l < Debug || l > Error {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Logger is the leveled logging interface shared by every package.
// Implementations must be safe for concurrent use.
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

var lineFormat = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu      sync.Mutex
	backend logging.LeveledBackend
)

// current is reapplied whenever the sink changes
var current = Notice

// New returns a logger tagged with module name
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all log output to sink, keeping the active level.
// Rendered images may be streamed to stdout, so the default sink is stderr.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), lineFormat)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(backendLevels[current], "")
	logging.SetBackend(backend)
}

// SetLevel changes the verbosity of every module logger
func SetLevel(level Level) {
	if level < Debug {
		level = Debug
	}
	if level > Error {
		level = Error
	}

	mu.Lock()
	defer mu.Unlock()
	current = level
	backend.SetLevel(backendLevels[level], "")
}

// ParseLevel maps a level name such as "debug" or "warn" to a Level.
// An empty name selects Notice.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return Notice, nil
	case "warn":
		return Warning, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return Notice, fmt.Errorf("unknown log level %q", name)
}

func init() {
	SetSink(os.Stderr)
}
