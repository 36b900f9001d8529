package query

import (
	"fmt"
	"time"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

// TodayCmd shows the committed tasks for today.
type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	return printTasksForDay(ctx, 0)
}

// TomorrowCmd shows the committed tasks for tomorrow.
type TomorrowCmd struct{}

func (c *TomorrowCmd) Run(ctx *cli.Context) error {
	return printTasksForDay(ctx, 1)
}

func printTasksForDay(ctx *cli.Context, dayOffset int) error {
	loc, err := utils.LoadLocation(ctx.Profile.Preferences().Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone in profile: %w", err)
	}

	day := utils.StartOfDay(time.Now().In(loc)).AddDate(0, 0, dayOffset)
	tasks, err := ctx.Store.TasksForDay(day)
	if err != nil {
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	header := day.Format("Mon 2006-01-02")
	if len(tasks) == 0 {
		fmt.Printf("%s: no committed tasks.\n", header)
		return nil
	}

	fmt.Println(titleStyle.Render(header))
	for _, task := range tasks {
		window := task.PlannedStart.In(loc).Format(constants.TimeFormat)
		if task.PlannedEnd != nil {
			window += " - " + task.PlannedEnd.In(loc).Format(constants.TimeFormat)
		}
		marker := " "
		if task.Status == models.StatusInProgress {
			marker = ">"
		}
		fmt.Printf("%s %s  %s\n", marker, timestampStyle.Render(window), task.Summary)
	}
	return nil
}
