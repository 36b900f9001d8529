package mind

import (
	"context"
	"fmt"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/freeminder"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// ProcessCmd classifies pending timeline items into mind items.
type ProcessCmd struct {
	Limit int `short:"n" help:"Maximum number of items to process (0 = all)." default:"0"`
}

func (c *ProcessCmd) Run(ctx *cli.Context) error {
	classifier, err := ctx.Classifier()
	if err != nil {
		return err
	}

	pipeline := freeminder.New(ctx.Store, classifier)
	stats, err := pipeline.Run(context.Background(), c.Limit)
	if err != nil {
		return err
	}

	if stats.Processed == 0 && stats.Failed == 0 {
		fmt.Println("Nothing to process.")
		return nil
	}

	fmt.Printf("Processed %d item(s)", stats.Processed)
	if stats.Failed > 0 {
		fmt.Printf(", %d failed (will retry next run)", stats.Failed)
	}
	fmt.Println(":")
	for _, itemType := range []models.ItemType{models.ItemTask, models.ItemIdea, models.ItemNote, models.ItemNoise} {
		if count := stats.ByType[itemType]; count > 0 {
			fmt.Printf("  %-5s %d\n", itemType, count)
		}
	}
	return nil
}
