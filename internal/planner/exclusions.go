package planner

import (
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

// clockBlock is a parsed daily exclusion block. End at or before start
// means the block wraps past midnight.
type clockBlock struct {
	start utils.Clock
	end   utils.Clock
}

func parseTimeBlocks(blocks []models.TimeBlock) ([]clockBlock, error) {
	parsed := make([]clockBlock, 0, len(blocks))
	for _, b := range blocks {
		cb, err := parseClockBlock(b.Start, b.End)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, cb)
	}
	return parsed, nil
}

func parseSoftBlocks(blocks []models.SoftBlock) ([]clockBlock, error) {
	parsed := make([]clockBlock, 0, len(blocks))
	for _, b := range blocks {
		cb, err := parseClockBlock(b.Start, b.End)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, cb)
	}
	return parsed, nil
}

func parseClockBlock(start, end string) (clockBlock, error) {
	s, err := utils.ParseClock(start)
	if err != nil {
		return clockBlock{}, err
	}
	e, err := utils.ParseClock(end)
	if err != nil {
		return clockBlock{}, err
	}
	return clockBlock{start: s, end: e}, nil
}

// resolveOnDate turns the daily blocks into absolute intervals on the
// given date, extending wrap-around blocks into the following day.
func resolveOnDate(blocks []clockBlock, date time.Time) []TimeRange {
	if len(blocks) == 0 {
		return nil
	}
	resolved := make([]TimeRange, 0, len(blocks))
	for _, b := range blocks {
		start := b.start.On(date)
		end := b.end.On(date)
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		resolved = append(resolved, TimeRange{Start: start, End: end})
	}
	return resolved
}

// applyExclusions subtracts the daily blocks, resolved on the given date,
// from every free interval.
func applyExclusions(free []TimeRange, blocks []clockBlock, date time.Time) []TimeRange {
	return subtractAll(free, resolveOnDate(blocks, date))
}
