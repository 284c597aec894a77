package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// reloadDelay batches the burst of events an editor save produces
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk
// Successful reloads are delivered on Updates, failures are logged and skipped
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	path    string
	reload  func() (Config, error)
	log     zerolog.Logger
	updates chan Config
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher prepares a watcher for path; reload is called after each change
func NewWatcher(path string, reload func() (Config, error), log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating config watcher: %w", err)
	}
	return &Watcher{
		watcher: fw,
		path:    abs,
		reload:  reload,
		log:     log,
		updates: make(chan Config, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Updates carries freshly loaded configs; only the latest is kept if the reader lags
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Start watches the file's directory, since editors often replace files by rename
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("error watching %s: %w", w.path, err)
	}
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the watch goroutine and waits for it
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Error().Err(err).Msg("error closing config watcher")
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("config file event")
			timer.Reset(reloadDelay)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("config watcher error")
		case <-timer.C:
			conf, err := w.reload()
			if err != nil {
				w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed, keeping current config")
				continue
			}
			w.log.Info().Str("path", w.path).Msg("config reloaded")
			w.publish(conf)
		}
	}
}

func (w *Watcher) publish(conf Config) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- conf
}
