package kenburns

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

// Storage location of the persisted configuration.
const (
	settingsObject   = "slideshow"
	settingsProperty = "config"
)

// SettingsStore persists a Config across runs using gdata's cross-platform
// storage. With a nil manager it keeps settings in memory only.
type SettingsStore struct {
	manager *gdata.Manager
	config  Config
}

// OpenSettingsStore opens the gdata storage for appName. When the storage
// cannot be opened the store falls back to memory-only mode.
func OpenSettingsStore(appName string) *SettingsStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsStore] Warning: storage unavailable: %v (settings will not persist)", err)
		m = nil
	}
	return NewSettingsStore(m)
}

// NewSettingsStore creates a store and loads any saved settings. Load
// failures are logged and leave the defaults in place.
func NewSettingsStore(manager *gdata.Manager) *SettingsStore {
	s := &SettingsStore{manager: manager, config: DefaultConfig()}
	if err := s.Load(); err != nil {
		log.Printf("[SettingsStore] Warning: failed to load settings: %v (using defaults)", err)
	}
	return s
}

// Persistent reports whether settings are written to storage.
func (s *SettingsStore) Persistent() bool {
	return s.manager != nil
}

// Load reads the saved configuration. Missing data yields the defaults.
func (s *SettingsStore) Load() error {
	s.config = DefaultConfig()
	if s.manager == nil || !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("kenburns: load settings: %w", err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return err
	}
	s.config = cfg
	return nil
}

// Save writes the current configuration. In memory-only mode it does nothing.
func (s *SettingsStore) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := s.config.Marshal()
	if err != nil {
		return err
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("kenburns: save settings: %w", err)
	}
	return nil
}

// Config returns the current configuration.
func (s *SettingsStore) Config() Config {
	return s.config
}

// SetConfig validates and replaces the configuration. Call Save to persist it.
func (s *SettingsStore) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.config = cfg
	return nil
}
