package kitchen

import (
	"sync"

	"github.com/teedup/courseside/internal/domain"
)

// SettingsStore holds the live printer settings. Updates take effect
// for subsequent transitions, not retroactively.
type SettingsStore struct {
	mu      sync.RWMutex
	current domain.PrinterSettings
}

func NewSettingsStore(initial domain.PrinterSettings) *SettingsStore {
	return &SettingsStore{current: initial}
}

func (s *SettingsStore) Settings() domain.PrinterSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SettingsStore) Update(settings domain.PrinterSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = settings
}
