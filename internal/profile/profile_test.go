package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MolchanovArt/exocortex/internal/models"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_profile.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing profile fixture: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "nope.json"))
	if err := p.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	prefs := p.Preferences()
	if prefs.Timezone != "Europe/Riga" {
		t.Errorf("timezone = %q, want default Europe/Riga", prefs.Timezone)
	}
	if prefs.MaxFocusBlocksPerDay != 3 {
		t.Errorf("max focus blocks = %d, want 3", prefs.MaxFocusBlocksPerDay)
	}
	if len(prefs.WorkDays) != 5 {
		t.Errorf("work days = %v, want Mon-Fri", prefs.WorkDays)
	}
	if p.Profile() != nil {
		t.Error("expected nil raw profile for missing file")
	}
}

func TestLoad_OverridesMergeOverDefaults(t *testing.T) {
	path := writeProfile(t, `{
		"id": "artem",
		"preferences": {
			"planning_preferences": {
				"timezone": "UTC",
				"work_hours": {"start": "09:00", "end": "17:00"},
				"avoid_after": "16:00"
			}
		}
	}`)

	p := NewProvider(path)
	if err := p.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	prefs := p.Preferences()
	if prefs.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC", prefs.Timezone)
	}
	if prefs.WorkHours.Start != "09:00" || prefs.WorkHours.End != "17:00" {
		t.Errorf("work hours = %+v, want 09:00-17:00", prefs.WorkHours)
	}
	if prefs.AvoidAfter != "16:00" {
		t.Errorf("avoid_after = %q, want 16:00", prefs.AvoidAfter)
	}
	// Omitted fields keep defaults.
	if prefs.DefaultTaskDurationMins != 60 {
		t.Errorf("default duration = %d, want 60", prefs.DefaultTaskDurationMins)
	}
	if len(prefs.WorkDays) != 5 {
		t.Errorf("work days = %v, want default Mon-Fri", prefs.WorkDays)
	}
}

func TestLoad_EnergyProfilePreservesOrder(t *testing.T) {
	path := writeProfile(t, `{
		"preferences": {
			"energy_profile": [
				{"label": "morning", "start": "08:00", "end": "12:00", "level": "high"},
				{"label": "override", "start": "08:00", "end": "10:00", "level": "low"},
				{"label": "night", "start": "22:00", "end": "02:00", "level": "low"}
			]
		}
	}`)

	p := NewProvider(path)
	if err := p.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	energy := p.EnergyProfile()
	if len(energy) != 3 {
		t.Fatalf("got %d energy entries, want 3", len(energy))
	}
	labels := []string{"morning", "override", "night"}
	for i, want := range labels {
		if energy[i].Label != want {
			t.Errorf("entry %d label = %q, want %q (document order must be preserved)", i, energy[i].Label, want)
		}
	}
	if energy[0].Level != models.EnergyHigh {
		t.Errorf("entry 0 level = %q, want high", energy[0].Level)
	}
}

func TestLoad_MalformedPreferencesIsError(t *testing.T) {
	path := writeProfile(t, `{
		"preferences": {
			"planning_preferences": {"max_focus_blocks_per_day": "three"}
		}
	}`)

	p := NewProvider(path)
	if err := p.Load(); err == nil {
		t.Fatal("expected parse error for malformed preferences, got nil")
	}
}

func TestLoad_MalformedDocumentIsError(t *testing.T) {
	path := writeProfile(t, `{not json`)
	p := NewProvider(path)
	if err := p.Load(); err == nil {
		t.Fatal("expected parse error for malformed document, got nil")
	}
}

func TestReload_KeepsOldValuesOnFailure(t *testing.T) {
	path := writeProfile(t, `{
		"preferences": {
			"planning_preferences": {"timezone": "UTC"}
		}
	}`)

	p := NewProvider(path)
	if err := p.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{broken`), 0600); err != nil {
		t.Fatalf("corrupting fixture: %v", err)
	}
	if err := p.Reload(); err == nil {
		t.Fatal("expected Reload to fail on corrupted document")
	}
	if p.Preferences().Timezone != "UTC" {
		t.Errorf("timezone = %q after failed reload, want previous UTC", p.Preferences().Timezone)
	}
}

func TestReload_PicksUpEdits(t *testing.T) {
	path := writeProfile(t, `{
		"preferences": {
			"planning_preferences": {"timezone": "UTC"}
		}
	}`)

	p := NewProvider(path)
	if err := p.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	edited := `{
		"preferences": {
			"planning_preferences": {"timezone": "Europe/Berlin"}
		}
	}`
	if err := os.WriteFile(path, []byte(edited), 0600); err != nil {
		t.Fatalf("editing fixture: %v", err)
	}
	if err := p.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if p.Preferences().Timezone != "Europe/Berlin" {
		t.Errorf("timezone = %q, want Europe/Berlin after reload", p.Preferences().Timezone)
	}
}
