// Package logging configures the process-wide zerolog logger
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/nightwhale/config"
)

const (
	logDir      = "logs"
	logFileName = "nightwhale.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
}

// Level maps a config level name to zerolog, unknown names fall back to info
func Level(name string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToUpper(name)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

func isTerminalAttached(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}

// DefaultPath is where logs go while the animation owns the terminal
func DefaultPath() string {
	return filepath.Join(logDir, logFileName)
}

// Setup points the global logger at its destination and returns a closer
// When ownsTerminal is set stdout and stderr are off limits, so an empty cfg.File means DefaultPath
func Setup(cfg config.Log, ownsTerminal bool) (func(), error) {
	zerolog.SetGlobalLevel(Level(cfg.Level))

	path := cfg.File
	if path == "" && ownsTerminal {
		path = DefaultPath()
	}
	if path == "" {
		var out io.Writer = os.Stderr
		if isTerminalAttached(os.Stderr) {
			out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
		}
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return func() {}, nil
	}

	f, err := openRotated(path)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() {
		log.Logger = zerolog.Nop()
		_ = f.Close()
	}, nil
}

// openRotated opens path for append, first moving it aside if it outgrew maxLogSize
func openRotated(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating log directory: %w", err)
		}
	}
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s.%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("error rotating log file: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return f, nil
}
