package planner

import (
	"testing"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

func TestEnergyProfile_WrapAroundRange(t *testing.T) {
	profile, err := newEnergyProfile([]models.EnergyProfileEntry{
		{Label: "night", Start: "22:00", End: "02:00", Level: models.EnergyLow},
	})
	if err != nil {
		t.Fatalf("newEnergyProfile failed: %v", err)
	}

	at := func(hour, minute int) time.Time {
		return time.Date(2024, 1, 3, hour, minute, 0, 0, time.UTC)
	}

	if got := profile.levelAt(at(23, 0)); got != models.EnergyLow {
		t.Errorf("23:00 classified as %s, want low", got)
	}
	if got := profile.levelAt(at(1, 0)); got != models.EnergyLow {
		t.Errorf("01:00 classified as %s, want low", got)
	}
	if got := profile.levelAt(at(12, 0)); got != models.EnergyMedium {
		t.Errorf("12:00 classified as %s, want medium (no match)", got)
	}
}

func TestEnergyProfile_FirstMatchWinsInConfiguredOrder(t *testing.T) {
	// Overlapping entries: the configured order decides, not any re-sort.
	profile, err := newEnergyProfile([]models.EnergyProfileEntry{
		{Label: "deep work", Start: "09:00", End: "12:00", Level: models.EnergyHigh},
		{Label: "morning", Start: "08:00", End: "13:00", Level: models.EnergyLow},
	})
	if err != nil {
		t.Fatalf("newEnergyProfile failed: %v", err)
	}

	at := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	if got := profile.levelAt(at); got != models.EnergyHigh {
		t.Errorf("10:00 classified as %s, want high from the earlier entry", got)
	}
}

func TestEnergyProfile_EmptyDefaultsToMedium(t *testing.T) {
	profile, err := newEnergyProfile(nil)
	if err != nil {
		t.Fatalf("newEnergyProfile failed: %v", err)
	}

	at := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	if got := profile.levelAt(at); got != models.EnergyMedium {
		t.Errorf("empty profile classified %v as %s, want medium", at, got)
	}
}

func TestEnergyProfile_BoundariesHalfOpen(t *testing.T) {
	profile, err := newEnergyProfile([]models.EnergyProfileEntry{
		{Label: "morning", Start: "10:00", End: "12:00", Level: models.EnergyHigh},
	})
	if err != nil {
		t.Fatalf("newEnergyProfile failed: %v", err)
	}

	at := func(hour, minute int) time.Time {
		return time.Date(2024, 1, 3, hour, minute, 0, 0, time.UTC)
	}

	if got := profile.levelAt(at(10, 0)); got != models.EnergyHigh {
		t.Errorf("start boundary classified as %s, want high (inclusive)", got)
	}
	if got := profile.levelAt(at(12, 0)); got != models.EnergyMedium {
		t.Errorf("end boundary classified as %s, want medium (exclusive)", got)
	}
}

func TestEnergyProfile_MalformedEntryRejected(t *testing.T) {
	_, err := newEnergyProfile([]models.EnergyProfileEntry{
		{Label: "bad", Start: "25:99", End: "12:00", Level: models.EnergyHigh},
	})
	if err == nil {
		t.Fatal("expected error for malformed clock time, got nil")
	}
}
