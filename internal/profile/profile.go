package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
)

const (
	prefsKey  = "planning_preferences"
	energyKey = "energy_profile"
)

// Defaults returns the planning preferences assumed when the profile
// document omits the planning_preferences block or individual fields.
func Defaults() models.PlanningPreferences {
	return models.PlanningPreferences{
		Timezone:                constants.DefaultTimezone,
		WorkDays:                append([]string(nil), constants.DefaultWorkDays...),
		WorkHours:               models.WorkHours{Start: constants.DefaultWorkStart, End: constants.DefaultWorkEnd},
		MaxFocusBlocksPerDay:    constants.DefaultMaxFocusBlocks,
		DefaultTaskDurationMins: constants.DefaultTaskDurationMinutes,
	}
}

// Provider loads the user profile document from disk and exposes typed
// planning preferences and the energy profile. It never reloads behind the
// caller's back; call Reload to pick up edits made while running.
type Provider struct {
	path    string
	profile *models.UserProfile
	prefs   models.PlanningPreferences
	energy  []models.EnergyProfileEntry
}

// NewProvider creates a provider for the given profile path. An empty path
// falls back to the EXOCORTEX_PROFILE environment variable, then the
// default location under ~/.config.
func NewProvider(path string) *Provider {
	if path == "" {
		path = os.Getenv(constants.EnvProfilePath)
	}
	if path == "" {
		path = constants.DefaultProfilePath
	}
	return &Provider{path: expandHome(path)}
}

// Load reads and parses the profile document. A missing file yields the
// default preferences and an empty energy profile; a present but
// unparseable document or preferences block is an error, never a silent
// fallback to defaults.
func (p *Provider) Load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			p.profile = nil
			p.prefs = Defaults()
			p.energy = nil
			return nil
		}
		return fmt.Errorf("failed to read profile %s: %w", p.path, err)
	}

	profile := &models.UserProfile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return fmt.Errorf("failed to parse profile %s: %w", p.path, err)
	}

	prefs, err := parsePreferences(profile)
	if err != nil {
		return fmt.Errorf("profile %s: %w", p.path, err)
	}
	energy, err := parseEnergyProfile(profile)
	if err != nil {
		return fmt.Errorf("profile %s: %w", p.path, err)
	}

	p.profile = profile
	p.prefs = prefs
	p.energy = energy
	return nil
}

// Reload re-reads the document from disk. On failure the previously
// loaded values stay in effect.
func (p *Provider) Reload() error {
	fresh := NewProvider(p.path)
	if err := fresh.Load(); err != nil {
		return err
	}
	*p = *fresh
	return nil
}

// Path returns the resolved profile file path.
func (p *Provider) Path() string {
	return p.path
}

// Profile returns the raw profile document, or nil when no file exists.
func (p *Provider) Profile() *models.UserProfile {
	return p.profile
}

// Preferences returns the typed planning preferences. Valid only after a
// successful Load.
func (p *Provider) Preferences() models.PlanningPreferences {
	return p.prefs
}

// EnergyProfile returns the configured energy entries in document order.
func (p *Provider) EnergyProfile() []models.EnergyProfileEntry {
	return p.energy
}

// parsePreferences decodes the planning_preferences block over the
// defaults, so omitted fields keep their default values while present
// fields override them.
func parsePreferences(profile *models.UserProfile) (models.PlanningPreferences, error) {
	prefs := Defaults()
	raw, ok := profile.Preferences[prefsKey]
	if !ok {
		return prefs, nil
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return models.PlanningPreferences{}, fmt.Errorf("invalid %s block: %w", prefsKey, err)
	}
	return prefs, nil
}

func parseEnergyProfile(profile *models.UserProfile) ([]models.EnergyProfileEntry, error) {
	raw, ok := profile.Preferences[energyKey]
	if !ok {
		return nil, nil
	}
	var entries []models.EnergyProfileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("invalid %s block: %w", energyKey, err)
	}
	return entries, nil
}

// Write persists the given profile document to the provider's path,
// creating the parent directory when needed.
func (p *Provider) Write(profile *models.UserProfile) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
