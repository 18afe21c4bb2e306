package policies

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ManagerConfig configures a policy Manager.
type ManagerConfig struct {
	// FilePath is the definition source (structured file or extension).
	FilePath string

	// Watch enables hot-reload of the definition file in daemon mode.
	Watch bool
}

// Manager coordinates a definition loader with an optional file watcher.
// Reloads are atomic: when loading or resolution fails, the previously
// loaded policy set stays active.
type Manager struct {
	config ManagerConfig
	loader Loader
	logger *slog.Logger

	mu            sync.RWMutex
	current       []*Policy
	lastLoadTime  time.Time
	lastLoadError error

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
}

// NewManager creates a policy manager over the given loader.
func NewManager(config ManagerConfig, loader Loader, logger *slog.Logger) (*Manager, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("definition file path cannot be empty")
	}
	if loader == nil {
		return nil, fmt.Errorf("loader cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		config: config,
		loader: loader,
		logger: logger.With("component", "policies.manager"),
	}, nil
}

// Load loads the policy set from the definition source.
func (m *Manager) Load() error {
	return m.load(false)
}

// Reload reloads the policy set. On failure the previous set stays active
// and the error is returned.
func (m *Manager) Reload() error {
	return m.load(true)
}

func (m *Manager) load(reload bool) error {
	start := time.Now()

	policies, err := m.loader.GetPolicies(m.config.FilePath)
	if err != nil {
		m.mu.Lock()
		m.lastLoadError = err
		m.mu.Unlock()

		if reload {
			m.logger.Error("failed to reload policies, keeping previous set",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		} else {
			m.logger.Error("failed to load policies",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		return err
	}

	m.warnDuplicateNames(policies)

	m.mu.Lock()
	m.current = policies
	m.lastLoadTime = time.Now()
	m.lastLoadError = nil
	m.mu.Unlock()

	m.logger.Info("policies loaded",
		"count", len(policies),
		"path", m.config.FilePath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Policies returns the currently loaded policy set in definition order.
// The returned slice is a snapshot.
func (m *Manager) Policies() []*Policy {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Policy, len(m.current))
	copy(out, m.current)
	return out
}

// LastLoadTime returns the timestamp of the last successful load.
func (m *Manager) LastLoadTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastLoadTime
}

// LastLoadError returns the error from the last load attempt, nil after a
// successful load.
func (m *Manager) LastLoadError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastLoadError
}

// Watch starts watching the definition file, reloading on change. It blocks
// until the context is cancelled. Returns an error when watching is
// disabled in the configuration.
func (m *Manager) Watch(ctx context.Context) error {
	if !m.config.Watch {
		return fmt.Errorf("definition watching is not enabled in configuration")
	}

	m.watchMu.Lock()
	if m.watchCancel != nil {
		m.watchMu.Unlock()
		return fmt.Errorf("watch already started")
	}
	watchCtx, cancel := context.WithCancel(ctx)
	m.watchCancel = cancel
	m.watchMu.Unlock()

	watcher, err := NewFileWatcher(m.config.FilePath, m.logger)
	if err != nil {
		return fmt.Errorf("failed to create definition watcher: %w", err)
	}

	go func() {
		if err := watcher.Watch(watchCtx, m.Reload); err != nil {
			m.logger.Error("definition watcher error", "error", err)
		}
	}()

	<-watchCtx.Done()

	return watcher.Stop()
}

// Close stops any active watcher.
func (m *Manager) Close() error {
	m.watchMu.Lock()
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchMu.Unlock()
	return nil
}

// warnDuplicateNames flags duplicate policy names. Duplicates are not an
// error: the runner executes both, but they usually indicate a copy-paste
// mistake in the definition file.
func (m *Manager) warnDuplicateNames(policies []*Policy) {
	seen := make(map[string]bool, len(policies))
	for _, policy := range policies {
		if seen[policy.Name()] {
			m.logger.Warn("duplicate policy name in definition",
				"policy", policy.Name(),
			)
		}
		seen[policy.Name()] = true
	}
}
