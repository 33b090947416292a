// Package log is the printcal debug logger. Lines carry a level and a
// category and go to a file opened through tea.LogToFile, so nothing is
// written to the terminal the TUI owns. Logging is off unless --debug or
// PRINTCAL_DEBUG is set.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Category groups related log messages.
type Category string

const (
	CatStore   Category = "store"   // Calendar state mutations
	CatHistory Category = "history" // Undo/redo stacks
	CatDrag    Category = "drag"    // Pointer gesture state machine
	CatDrop    Category = "drop"    // Drop resolution
	CatSelect  Category = "select"  // Selection model
	CatPersist Category = "persist" // State file load/save
	CatOrders  Category = "orders"  // Order portal login and fetch
	CatDB      Category = "db"      // Order snapshot database
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
	CatUI      Category = "ui"      // UI component updates
	CatCache   Category = "cache"
)

const timeLayout = "2006-01-02T15:04:05"

type logger struct {
	mu       sync.Mutex
	out      io.Writer
	enabled  bool
	minLevel Level
	now      func() time.Time
}

var current *logger

func install(w io.Writer) {
	current = &logger{out: w, enabled: true, minLevel: LevelDebug, now: time.Now}
}

// InitWithTeaLog opens path through tea.LogToFile and routes every log call
// there. The returned func closes the file.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	install(f)
	return func() {
		current = nil
		_ = f.Close()
	}, nil
}

// InitWriter points the logger at w. Used by tests to capture output.
func InitWriter(w io.Writer) { install(w) }

// Enabled reports whether debug logging was requested through the environment.
func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("PRINTCAL_DEBUG"))
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current; l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops everything below level.
func SetMinLevel(level Level) {
	if l := current; l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields) }

func Info(cat Category, msg string, fields ...any) { write(LevelInfo, cat, msg, fields) }

func Warn(cat Category, msg string, fields ...any) { write(LevelWarn, cat, msg, fields) }

func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the last field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", text))
}

func write(level Level, cat Category, msg string, fields []any) {
	l := current
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}
	_, _ = io.WriteString(l.out, encode(l.now(), level, cat, msg, fields))
}

// encode renders one line:
//
//	2024-03-15T10:45:00 [ERROR] [drop] message key=value key2=value2
func encode(at time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(at.Format(timeLayout))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	b.WriteByte('\n')
	return b.String()
}
