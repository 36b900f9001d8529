package planner

import (
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

type energyEntry struct {
	start utils.Clock
	end   utils.Clock
	level models.EnergyLevel
}

// energyProfile is a parsed energy profile. Entry order is the configured
// order; the first matching entry wins.
type energyProfile []energyEntry

func newEnergyProfile(entries []models.EnergyProfileEntry) (energyProfile, error) {
	parsed := make(energyProfile, 0, len(entries))
	for _, e := range entries {
		start, err := utils.ParseClock(e.Start)
		if err != nil {
			return nil, err
		}
		end, err := utils.ParseClock(e.End)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, energyEntry{start: start, end: end, level: e.Level})
	}
	return parsed, nil
}

// levelAt classifies a timestamp by its clock time. Non-wrapping entries
// match start <= t < end; wrapping entries (end <= start) match t >= start
// or t < end. Defaults to medium when nothing matches.
func (p energyProfile) levelAt(t time.Time) models.EnergyLevel {
	minutes := t.Hour()*60 + t.Minute()
	for _, e := range p {
		start, end := e.start.Minutes(), e.end.Minutes()
		if start <= end {
			if start <= minutes && minutes < end {
				return e.level
			}
		} else {
			if minutes >= start || minutes < end {
				return e.level
			}
		}
	}
	return models.EnergyMedium
}
