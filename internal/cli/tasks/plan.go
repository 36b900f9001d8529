package tasks

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/planner"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

// planDecision is the outcome of one interactive planning prompt.
type planDecision int

const (
	decisionPlanned planDecision = iota
	decisionSkipped
	decisionQuit
)

// PlanCmd walks through unplanned tasks and books a suggested slot for
// each one the user accepts.
type PlanCmd struct {
	Days     int `short:"d" help:"How many days ahead to search for slots." default:"3"`
	Duration int `short:"m" help:"Slot duration in minutes (0 = profile default)." default:"0"`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.UnplannedTasks()
	if err != nil {
		return fmt.Errorf("failed to fetch unplanned tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No unplanned tasks.")
		return nil
	}

	engine := ctx.Engine()
	planned, skipped := 0, 0

	for _, task := range tasks {
		// Recompute per task so a slot booked for the previous task is
		// busy for the next one.
		slots, err := engine.SuggestSlots(time.Time{}, c.Days, c.Duration, 5)
		if err != nil {
			return err
		}

		decision, err := c.promptForSlot(ctx, task, slots)
		if err != nil {
			return err
		}

		switch decision {
		case decisionPlanned:
			planned++
		case decisionSkipped:
			skipped++
		case decisionQuit:
			fmt.Printf("Planned %d task(s), %d skipped, %d left for later.\n",
				planned, skipped, len(tasks)-planned-skipped)
			return nil
		}
	}

	fmt.Printf("Planned %d task(s), %d skipped.\n", planned, skipped)
	return nil
}

func (c *PlanCmd) promptForSlot(ctx *cli.Context, task models.MindItem, slots []planner.SuggestedSlot) (planDecision, error) {
	if len(slots) == 0 {
		fmt.Printf("No free slots for %q, leaving it unplanned.\n", task.Summary)
		return decisionSkipped, nil
	}

	const (
		optSkip   = -1
		optQuit   = -2
		optCustom = -3
	)

	options := make([]huh.Option[int], 0, len(slots)+2)
	for i, slot := range slots {
		label := fmt.Sprintf("%s %s - %s (%s, %s)",
			slot.Start.Format("Mon 02 Jan"),
			slot.Start.Format(constants.TimeFormat),
			slot.End.Format(constants.TimeFormat),
			slot.Energy, slot.Reason)
		options = append(options, huh.NewOption(label, i))
	}
	options = append(options,
		huh.NewOption("Pick another date/time", optCustom),
		huh.NewOption("Skip this task", optSkip),
		huh.NewOption("Stop planning", optQuit))

	var choice int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(fmt.Sprintf("Plan: %s", task.Summary)).
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return decisionQuit, err
	}

	switch choice {
	case optSkip:
		return decisionSkipped, nil
	case optQuit:
		return decisionQuit, nil
	case optCustom:
		return c.promptForCustomTime(ctx, task)
	}

	slot := slots[choice]
	return c.bookTask(ctx, task, slot.Start, slot.End)
}

// promptForCustomTime books a task at a user-typed date or timestamp. A
// date without a time lands at the start of the work day.
func (c *PlanCmd) promptForCustomTime(ctx *cli.Context, task models.MindItem) (planDecision, error) {
	prefs := ctx.Profile.Preferences()
	loc, err := utils.LoadLocation(prefs.Timezone)
	if err != nil {
		return decisionQuit, fmt.Errorf("invalid timezone in profile: %w", err)
	}
	workStart, err := utils.ParseClock(prefs.WorkHours.Start)
	if err != nil {
		return decisionQuit, fmt.Errorf("invalid work hours in profile: %w", err)
	}

	var input string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("When? (YYYY-MM-DD or YYYY-MM-DD HH:MM)").
			Value(&input),
	))
	if err := form.Run(); err != nil {
		return decisionQuit, err
	}

	start, err := utils.ParseUserDateTime(input, workStart, loc)
	if err != nil {
		fmt.Printf("%v, leaving %q unplanned.\n", err, task.Summary)
		return decisionSkipped, nil
	}

	duration := c.Duration
	if duration <= 0 {
		duration = prefs.DefaultTaskDurationMins
	}
	return c.bookTask(ctx, task, start, start.Add(time.Duration(duration)*time.Minute))
}

func (c *PlanCmd) bookTask(ctx *cli.Context, task models.MindItem, start, end time.Time) (planDecision, error) {
	task.Status = models.StatusPlanned
	task.PlannedStart = &start
	task.PlannedEnd = &end
	if err := ctx.Store.UpdateMindItem(task); err != nil {
		return decisionQuit, fmt.Errorf("failed to save planned task: %w", err)
	}

	fmt.Printf("✓ %s planned for %s %s\n", task.Summary,
		start.Format("Mon 02 Jan"), start.Format(constants.TimeFormat))
	return decisionPlanned, nil
}
