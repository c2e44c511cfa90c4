package viewer

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// Settings are the viewer choices kept between runs.
type Settings struct {
	ShowGrid        bool   `json:"showGrid"`
	ShowGraph       bool   `json:"showGraph"`
	ShowHUD         bool   `json:"showHud"`
	Level           string `json:"level"`
	ResolutionIndex int    `json:"resolutionIndex"`
}

// DefaultSettings takes the overlay defaults from the viewer config.
func DefaultSettings() Settings {
	return Settings{
		ShowGrid:        cfg.Viewer.ShowGrid,
		ShowGraph:       cfg.Viewer.ShowGraph,
		ShowHUD:         cfg.Viewer.ShowHUD,
		ResolutionIndex: cfg.Window.DefaultResolutionIndex,
	}
}

// HandleActions applies the overlay and window actions pressed this frame
// and reports whether anything changed.
func (s *Settings) HandleActions(input *components.InputData) bool {
	changed := false
	toggle := func(id cfg.ActionID, v *bool) {
		if input.Action(id).JustPressed {
			*v = !*v
			changed = true
		}
	}
	toggle(cfg.ActionToggleGrid, &s.ShowGrid)
	toggle(cfg.ActionToggleGraph, &s.ShowGraph)
	toggle(cfg.ActionToggleHUD, &s.ShowHUD)

	if input.Action(cfg.ActionResize).JustPressed {
		s.ResolutionIndex = (s.ResolutionIndex + 1) % len(cfg.Window.Resolutions)
		changed = true
	}
	return changed
}

// itemStore is the part of gdata.Manager the settings need.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// SettingsStore reads and writes Settings. A store without a backend does
// nothing, so the viewer runs even when the data directory is unavailable.
type SettingsStore struct {
	items itemStore
}

// OpenSettingsStore opens the gdata storage for appName.
func OpenSettingsStore(appName string) (*SettingsStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return &SettingsStore{}, fmt.Errorf("open gdata: %w", err)
	}
	return &SettingsStore{items: m}, nil
}

// Load returns the saved settings, or the defaults when nothing was saved.
func (s *SettingsStore) Load() (Settings, error) {
	settings := DefaultSettings()
	if s == nil || s.items == nil {
		return settings, nil
	}

	data, err := s.items.LoadItem(settingsKey)
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parse saved settings: %w", err)
	}
	if settings.ResolutionIndex < 0 || settings.ResolutionIndex >= len(cfg.Window.Resolutions) {
		settings.ResolutionIndex = cfg.Window.DefaultResolutionIndex
	}
	return settings, nil
}

// Save writes settings to disk.
func (s *SettingsStore) Save(settings Settings) error {
	if s == nil || s.items == nil {
		return nil
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := s.items.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// saveQuietly saves and only logs failures.
func (s *SettingsStore) saveQuietly(settings Settings) {
	if err := s.Save(settings); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
	}
}
