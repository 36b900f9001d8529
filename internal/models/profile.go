package models

import "encoding/json"

// EnergyLevel is a coarse productivity label for a time-of-day range,
// used for ranking suggestions, never for feasibility filtering.
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

// Priority returns the sort rank of the level (high sorts first).
// Unknown levels rank with medium.
func (e EnergyLevel) Priority() int {
	switch e {
	case EnergyHigh:
		return 0
	case EnergyLow:
		return 2
	default:
		return 1
	}
}

// WorkHours is a non-wrapping daily clock-time range (HH:MM).
type WorkHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeBlock is a daily exclusion given as clock times; end <= start means
// the block wraps past midnight (e.g. sleep 23:00-07:00).
type TimeBlock struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SoftBlock is a labeled daily exclusion such as lunch or a break.
type SoftBlock struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// EnergyProfileEntry maps a clock-time range (possibly wrapping past
// midnight) to an energy level. Entries are scanned in configured order
// and the first match wins; keeping them disjoint is the profile owner's
// responsibility.
type EnergyProfileEntry struct {
	Label string      `json:"label"`
	Start string      `json:"start"`
	End   string      `json:"end"`
	Level EnergyLevel `json:"level"`
}

// PlanningPreferences configures the slot suggestion engine. Every field
// has an explicit default (see profile.Defaults); a preferences block
// that fails to parse is a reported configuration error, never a silent
// fallback.
type PlanningPreferences struct {
	Timezone                string       `json:"timezone"`
	WorkDays                []string     `json:"work_days"`
	WorkHours               WorkHours    `json:"work_hours"`
	SleepBlocks             []TimeBlock  `json:"sleep_blocks"`
	SoftBlocks              []SoftBlock  `json:"soft_blocks"`
	MaxFocusBlocksPerDay    int          `json:"max_focus_blocks_per_day"`
	DefaultTaskDurationMins int          `json:"default_task_duration_minutes"`
	AvoidAfter              string       `json:"avoid_after,omitempty"`
}

// UserProfile is the caller-owned profile document loaded from JSON.
// Preferences holds the raw blocks (planning_preferences, energy_profile)
// which the profile provider parses into typed values.
type UserProfile struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Roles           []string                   `json:"roles"`
	CurrentProjects []string                   `json:"current_projects"`
	Preferences     map[string]json.RawMessage `json:"preferences"`
	Narrative       string                     `json:"narrative"`
}
