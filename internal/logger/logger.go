package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogFilePath is the log file, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// DefaultKeep is how many formatted lines Lines can return.
const DefaultKeep = 200

// Options configures New. Zero values pick the defaults.
type Options struct {
	Path    string    // log file; "" uses LogFilePath, "-" disables the file
	Level   string    // zerolog level name; unknown names mean info
	Console io.Writer // colored console output; nil disables it
	Keep    int       // lines kept in memory
}

// Logger writes structured events to the console, a file on disk and an in-memory buffer shown
// by the in-window console.
type Logger struct {
	zerolog.Logger
	ring *ring
	file *os.File
}

// New builds a Logger. The log directory is created if needed.
func New(opts Options) (*Logger, error) {
	if opts.Keep <= 0 {
		opts.Keep = DefaultKeep
	}
	r := &ring{keep: opts.Keep}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: r, NoColor: true, TimeFormat: "15:04:05"}}

	var file *os.File
	if opts.Path != "-" {
		path := opts.Path
		if path == "" {
			path = LogFilePath
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		file = f
		writers = append(writers, zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339})
	}
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: "15:04:05"})
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().Logger()
	return &Logger{Logger: zl, ring: r, file: file}, nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Log records a line typed into the console.
func (l *Logger) Log(line string) {
	l.Info().Str("component", "console").Msg(line)
}

// Lines returns a copy of the most recent formatted lines, oldest first.
func (l *Logger) Lines() []string {
	return l.ring.lines()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

type ring struct {
	mu   sync.Mutex
	keep int
	buf  []string
}

func (r *ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		r.buf = append(r.buf, string(line))
	}
	if over := len(r.buf) - r.keep; over > 0 {
		r.buf = append(r.buf[:0], r.buf[over:]...)
	}
	return len(p), nil
}

func (r *ring) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.buf))
	copy(out, r.buf)
	return out
}
