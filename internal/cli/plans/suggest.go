package plans

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/planner"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

var (
	dayHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	slotTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	reasonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	energyStyles = map[models.EnergyLevel]lipgloss.Style{
		models.EnergyHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		models.EnergyMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.EnergyLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
)

// SuggestCmd computes and prints candidate focus slots.
type SuggestCmd struct {
	Date     string `arg:"" help:"Anchor date (YYYY-MM-DD or 'today')." default:"today"`
	Days     int    `short:"d" help:"How many additional days to search." default:"3"`
	Duration int    `short:"m" help:"Slot duration in minutes (0 = profile default)." default:"0"`
	Max      int    `short:"n" help:"Maximum number of suggestions." default:"10"`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	loc, err := utils.LoadLocation(ctx.Profile.Preferences().Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone in profile: %w", err)
	}

	var anchor time.Time
	if c.Date != "today" {
		anchor, err = utils.ParseDateInLocation(c.Date, loc)
		if err != nil {
			return fmt.Errorf("invalid date, use YYYY-MM-DD or 'today': %w", err)
		}
	}

	slots, err := ctx.Engine().SuggestSlots(anchor, c.Days, c.Duration, c.Max)
	if err != nil {
		return err
	}

	if len(slots) == 0 {
		fmt.Println("No free slots found in the requested window.")
		return nil
	}

	printSlots(slots)
	return nil
}

func printSlots(slots []planner.SuggestedSlot) {
	currentDay := ""
	for _, slot := range slots {
		day := slot.Start.Format("Mon 2006-01-02")
		if day != currentDay {
			if currentDay != "" {
				fmt.Println()
			}
			fmt.Println(dayHeaderStyle.Render(day))
			currentDay = day
		}

		window := fmt.Sprintf("%s - %s",
			slot.Start.Format(constants.TimeFormat),
			slot.End.Format(constants.TimeFormat))

		energy := energyStyles[slot.Energy]
		fmt.Printf("  %s  %s  %s\n",
			slotTimeStyle.Render(window),
			energy.Render(string(slot.Energy)),
			reasonStyle.Render(slot.Reason))
	}
}
