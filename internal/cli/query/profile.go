package query

import (
	"fmt"
	"strings"

	"github.com/MolchanovArt/exocortex/internal/cli"
)

// ProfileCmd shows the resolved planning configuration.
type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	prefs := ctx.Profile.Preferences()

	fmt.Println(titleStyle.Render("Planning preferences"))
	fmt.Printf("  profile:       %s\n", ctx.Profile.Path())
	fmt.Printf("  timezone:      %s\n", prefs.Timezone)
	fmt.Printf("  work days:     %s\n", strings.Join(prefs.WorkDays, ", "))
	fmt.Printf("  work hours:    %s - %s\n", prefs.WorkHours.Start, prefs.WorkHours.End)
	fmt.Printf("  focus blocks:  %d per day\n", prefs.MaxFocusBlocksPerDay)
	fmt.Printf("  default block: %d min\n", prefs.DefaultTaskDurationMins)
	if prefs.AvoidAfter != "" {
		fmt.Printf("  avoid after:   %s\n", prefs.AvoidAfter)
	}

	for _, block := range prefs.SleepBlocks {
		fmt.Printf("  sleep:         %s - %s\n", block.Start, block.End)
	}
	for _, block := range prefs.SoftBlocks {
		fmt.Printf("  block:         %s - %s (%s)\n", block.Start, block.End, block.Label)
	}

	energy := ctx.Profile.EnergyProfile()
	if len(energy) > 0 {
		fmt.Println(titleStyle.Render("Energy profile"))
		for _, entry := range energy {
			fmt.Printf("  %s - %s  %-6s %s\n", entry.Start, entry.End, entry.Level, entry.Label)
		}
	}

	if raw := ctx.Profile.Profile(); raw != nil && raw.Name != "" {
		fmt.Printf("\nProfile of %s", raw.Name)
		if len(raw.Roles) > 0 {
			fmt.Printf(" (%s)", strings.Join(raw.Roles, ", "))
		}
		fmt.Println()
	}
	return nil
}
