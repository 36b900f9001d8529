package query

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
)

var (
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Width(9)
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

// TimelineCmd lists recent timeline entries from all sources.
type TimelineCmd struct {
	Limit int `short:"n" help:"Maximum number of entries." default:"20"`
}

func (c *TimelineCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.RecentTimelineItems(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to fetch timeline: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("Timeline is empty. Run an import first.")
		return nil
	}

	for _, item := range items {
		text := item.Title
		if text == "" {
			text = item.Content
		}
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		fmt.Printf("%s %s %s\n",
			timestampStyle.Render(item.Timestamp.Local().Format(constants.DateTimeFormat)),
			sourceStyle.Render(string(item.SourceType)),
			text)
	}
	return nil
}

// IdeasCmd lists recently captured ideas.
type IdeasCmd struct {
	Limit int `short:"n" help:"Maximum number of entries." default:"20"`
}

func (c *IdeasCmd) Run(ctx *cli.Context) error {
	return printMindItems(ctx, models.ItemIdea, c.Limit)
}

// NotesCmd lists recently captured notes.
type NotesCmd struct {
	Limit int `short:"n" help:"Maximum number of entries." default:"20"`
}

func (c *NotesCmd) Run(ctx *cli.Context) error {
	return printMindItems(ctx, models.ItemNote, c.Limit)
}

func printMindItems(ctx *cli.Context, itemType models.ItemType, limit int) error {
	items, err := ctx.Store.RecentMindItems(itemType, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch %ss: %w", itemType, err)
	}
	if len(items) == 0 {
		fmt.Printf("No %ss yet.\n", itemType)
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s %s\n",
			timestampStyle.Render(item.CreatedAt.Local().Format(constants.DateFormat)),
			item.Summary)
	}
	return nil
}
