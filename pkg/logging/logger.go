// Package logging provides session-scoped file logging for quickauth.
//
// Every process run gets a random session ID, and all components append to a
// single log file named after that session under ~/.quickauth/logs. Entries
// are tagged with the component name and level so one session file reads as
// a single interleaved timeline.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// logDir is resolved once per process. Tests swap it for a temp dir
	// before the first logger is created.
	logDir   string
	initErr  error
	initOnce sync.Once

	sessionID     string
	sessionIDOnce sync.Once
)

// GetSessionID returns the process-wide session identifier, generating it on
// first use.
func GetSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// GetLogDirectory returns the directory session logs are written to,
// creating it if needed.
func GetLogDirectory() (string, error) {
	initOnce.Do(func() {
		if logDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				initErr = fmt.Errorf("failed to resolve home directory: %w", err)
				return
			}
			logDir = filepath.Join(home, ".quickauth", "logs")
		}
		initErr = os.MkdirAll(logDir, 0750)
	})
	if initErr != nil {
		return "", initErr
	}
	return logDir, nil
}

// Logger writes component-tagged entries to the session log file. All
// methods are safe for concurrent use.
type Logger struct {
	component string
	sessionID string
	logPath   string

	mu        sync.Mutex
	file      *os.File
	logger    *log.Logger
	closeOnce sync.Once
}

// NewLogger creates a logger for the named component, appending to the
// shared session log file.
func NewLogger(component string) (*Logger, error) {
	dir, err := GetLogDirectory()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare log directory: %w", err)
	}

	id := GetSessionID()
	path := filepath.Join(dir, fmt.Sprintf("%s-quickauth.log", id))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		component: component,
		sessionID: id,
		logPath:   path,
		file:      file,
		logger:    log.New(file, "", 0),
	}, nil
}

func formatLogEntry(component, level, msg string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, component, level, msg)
}

func (l *Logger) log(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logger == nil {
		return
	}
	l.logger.Println(formatLogEntry(l.component, level, fmt.Sprintf(format, args...)))
}

// Printf logs at INFO level, matching the standard library signature so the
// logger can be dropped in where a *log.Logger is expected.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

// Debugf logs at DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", format, args...)
}

// Infof logs at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

// Warnf logs at WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Errorf logs at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

// Writer exposes the underlying log file for libraries that want an
// io.Writer. Falls back to stderr after Close.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file
	}
	return os.Stderr
}

// SessionID returns the session identifier this logger writes under.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the path of the session log file.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close releases the log file. Safe to call more than once; writes after
// Close are dropped.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.file != nil {
			err = l.file.Close()
			l.file = nil
			l.logger = nil
		}
	})
	return err
}
