package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ErrReloadRejected wraps a reload whose config failed validation or a check.
var ErrReloadRejected = errors.New("config reload rejected")

// Loader reads a YAML config file and watches it for changes.
type Loader struct {
	path     string
	reloadMu sync.Mutex
	mu       sync.RWMutex
	current  *Config
	checks   []func(*Config) error
	onChange []func(*Config)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Path returns the watched file path.
func (l *Loader) Path() string { return l.path }

// Config returns the last configuration that was accepted.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the config reloads.
func (l *Loader) OnChange(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// AddCheck registers a check a reloaded config must pass before it replaces
// the current one. Checks run after Validate, in registration order, and
// never concurrently with each other.
func (l *Loader) AddCheck(fn func(*Config) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checks = append(l.checks, fn)
}

// Watch starts a background goroutine that hot-reloads the config on file changes.
// Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if _, err := l.Reload(); err != nil {
						slog.Warn("config reload failed, keeping previous config", "path", l.path, "err", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		<-exited
	}, nil
}

// Reload forces an immediate re-read of the config file. A config that fails
// Validate or a registered check is returned as ErrReloadRejected and the
// previous config stays current.
func (l *Loader) Reload() (*Config, error) {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()

	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.mu.RLock()
	checks := append([]func(*Config) error{Validate}, l.checks...)
	l.mu.RUnlock()
	for _, check := range checks {
		if err := check(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReloadRejected, err)
		}
	}

	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(*Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
	return cfg, nil
}

func (l *Loader) load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.path, err)
	}
	return cfg, nil
}

// Parse decodes YAML and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Process == "" {
		cfg.Process = "SMEAR"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Engine.Streams == 0 {
		cfg.Engine.Streams = 4
	}
	if cfg.Engine.QueueDepth == 0 {
		cfg.Engine.QueueDepth = 1000
	}
	if cfg.Engine.EventTimeoutMs == 0 {
		cfg.Engine.EventTimeoutMs = 5000
	}
	if cfg.Random.Seed == 0 {
		cfg.Random.Seed = 1
	}
	if cfg.Source.Label == "" {
		cfg.Source.Label = "generator"
		if cfg.Source.Instance == "" {
			cfg.Source.Instance = "unsmeared"
		}
	}
	if cfg.Output.Kind == "" {
		cfg.Output.Kind = "none"
	}
}
