package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

// Suggestion reason hints. Coarse display text, not correctness-bearing.
const (
	ReasonBetweenEvents = "free between calendar events"
	ReasonEmptyDay      = "no tasks yet this day"
)

// SuggestedSlot is a candidate time slot for planning a task. Slots are
// constructed fresh per call and never persisted by the engine; a caller
// may later commit the chosen slot onto a task record.
type SuggestedSlot struct {
	Start  time.Time
	End    time.Time
	Reason string
	Energy models.EnergyLevel
}

// Engine computes ranked slot suggestions from caller-owned preferences,
// an energy profile, and a busy-time source. It holds no mutable state and
// is safe for concurrent calls as long as the source provides a consistent
// read snapshot per call.
type Engine struct {
	source BusySource
	prefs  models.PlanningPreferences
	energy []models.EnergyProfileEntry

	// Now supplies the current time. Tests override it for determinism.
	Now func() time.Time
}

// New creates a slot suggestion engine.
func New(source BusySource, prefs models.PlanningPreferences, energy []models.EnergyProfileEntry) *Engine {
	return &Engine{
		source: source,
		prefs:  prefs,
		energy: energy,
		Now:    time.Now,
	}
}

// SuggestSlots computes up to maxSuggestions candidate slots of
// blockMinutes duration, searching from the anchor date through daysAhead
// additional days. A zero anchor means "now"; blockMinutes <= 0 falls back
// to the preference's default task duration. An empty result with a nil
// error means no free time was found, which callers must distinguish from
// failure.
func (e *Engine) SuggestSlots(anchor time.Time, daysAhead, blockMinutes, maxSuggestions int) ([]SuggestedSlot, error) {
	loc, err := utils.LoadLocation(e.prefs.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", e.prefs.Timezone, err)
	}

	if blockMinutes <= 0 {
		blockMinutes = e.prefs.DefaultTaskDurationMins
	}
	if blockMinutes <= 0 {
		return nil, fmt.Errorf("block duration must be positive, got %d minutes", blockMinutes)
	}
	blockDuration := time.Duration(blockMinutes) * time.Minute

	sleepBlocks, err := parseTimeBlocks(e.prefs.SleepBlocks)
	if err != nil {
		return nil, fmt.Errorf("invalid sleep block: %w", err)
	}
	softBlocks, err := parseSoftBlocks(e.prefs.SoftBlocks)
	if err != nil {
		return nil, fmt.Errorf("invalid soft block: %w", err)
	}

	var avoidAfter *utils.Clock
	if e.prefs.AvoidAfter != "" {
		c, err := utils.ParseClock(e.prefs.AvoidAfter)
		if err != nil {
			return nil, fmt.Errorf("invalid avoid_after: %w", err)
		}
		avoidAfter = &c
	}

	profile, err := newEnergyProfile(e.energy)
	if err != nil {
		return nil, fmt.Errorf("invalid energy profile: %w", err)
	}

	now := e.Now().In(loc)
	if anchor.IsZero() {
		anchor = now
	}
	startDay := utils.StartOfDay(anchor.In(loc))

	windows, err := buildWorkWindows(startDay, daysAhead, e.prefs)
	if err != nil {
		return nil, fmt.Errorf("invalid work hours: %w", err)
	}

	busy, err := collectBusyIntervals(e.source, startDay, startDay.AddDate(0, 0, daysAhead+2))
	if err != nil {
		return nil, err
	}

	var candidates []SuggestedSlot

	for _, window := range windows {
		workRange := window.Range()
		if workRange.End.Before(now) {
			continue
		}

		// The subtractor ignores non-overlapping blocks, so the whole
		// busy set is passed for every day; an event spilling across
		// midnight still blocks the morning it runs into.
		free := Subtract(workRange, busy)
		free = applyExclusions(free, sleepBlocks, window.Date)
		free = applyExclusions(free, softBlocks, window.Date)

		reason := ReasonEmptyDay
		if dayHasBusy(busy, window.Date) {
			reason = ReasonBetweenEvents
		}

		for _, interval := range free {
			if interval.End.Before(now) {
				continue
			}
			// avoid_after excludes intervals that start too late; it
			// does not clip intervals that merely extend past it.
			if avoidAfter != nil && !interval.Start.Before(avoidAfter.On(window.Date)) {
				continue
			}

			current := interval.Start
			if now.After(current) {
				current = now
			}
			for !current.Add(blockDuration).After(interval.End) {
				candidates = append(candidates, SuggestedSlot{
					Start:  current,
					End:    current.Add(blockDuration),
					Reason: reason,
					Energy: profile.levelAt(current),
				})
				current = current.Add(blockDuration)
			}
		}
	}

	return rankAndCap(candidates, e.prefs.MaxFocusBlocksPerDay, maxSuggestions), nil
}

// dayHasBusy reports whether any busy interval starts on the given date.
func dayHasBusy(busy []TimeRange, date time.Time) bool {
	next := date.AddDate(0, 0, 1)
	for _, b := range busy {
		if !b.Start.Before(date) && b.Start.Before(next) {
			return true
		}
	}
	return false
}

// rankAndCap orders candidates by (start, energy priority), enforces the
// per-day cap preferring higher energy, and truncates to maxSuggestions.
// A cap of zero or below disables day-capping.
func rankAndCap(candidates []SuggestedSlot, perDayCap, maxSuggestions int) []SuggestedSlot {
	if maxSuggestions < 0 {
		maxSuggestions = 0
	}

	sortByStartThenEnergy(candidates)

	if perDayCap <= 0 {
		return truncate(candidates, maxSuggestions)
	}

	byDate := make(map[string][]SuggestedSlot)
	var dates []string
	for _, slot := range candidates {
		key := slot.Start.Format(constants.DateFormat)
		if _, seen := byDate[key]; !seen {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], slot)
	}
	sort.Strings(dates)

	var capped []SuggestedSlot
	for _, date := range dates {
		day := byDate[date]
		// Within a day the cap keeps the highest-energy slots, earliest
		// first among equals.
		sort.SliceStable(day, func(i, j int) bool {
			pi, pj := day[i].Energy.Priority(), day[j].Energy.Priority()
			if pi != pj {
				return pi < pj
			}
			return day[i].Start.Before(day[j].Start)
		})
		capped = append(capped, truncate(day, perDayCap)...)
		if len(capped) >= maxSuggestions {
			break
		}
	}

	sortByStartThenEnergy(capped)
	return truncate(capped, maxSuggestions)
}

func sortByStartThenEnergy(slots []SuggestedSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		return slots[i].Energy.Priority() < slots[j].Energy.Priority()
	})
}

func truncate(slots []SuggestedSlot, n int) []SuggestedSlot {
	if len(slots) <= n {
		return slots
	}
	return slots[:n]
}
