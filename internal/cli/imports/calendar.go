package imports

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MolchanovArt/exocortex/internal/calendar"
	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

// CalendarCmd syncs events from the configured calendar.
type CalendarCmd struct {
	Calendar string `help:"Calendar id to import from (defaults to GOOGLE_CALENDAR_ID or 'primary')."`
	PastDays int    `help:"How many days back to sync." default:"7"`
	Days     int    `help:"How many days ahead to sync." default:"30"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	token := os.Getenv(constants.EnvGoogleOAuthToken)
	if token == "" {
		return fmt.Errorf("%s is not set", constants.EnvGoogleOAuthToken)
	}

	calendarID := c.Calendar
	if calendarID == "" {
		calendarID = os.Getenv(constants.EnvGoogleCalendarID)
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	loc, err := utils.LoadLocation(ctx.Profile.Preferences().Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone in profile: %w", err)
	}

	now := time.Now().In(loc)
	from := utils.StartOfDay(now).AddDate(0, 0, -c.PastDays)
	to := utils.StartOfDay(now).AddDate(0, 0, c.Days+1)

	importer := calendar.NewImporter(calendar.New(token), ctx.Store, calendarID, loc)
	stats, err := importer.Run(context.Background(), from, to)
	if err != nil {
		return err
	}

	fmt.Printf("Synced calendar %s: %d new, %d updated, %d skipped (%d fetched).\n",
		calendarID, stats.Created, stats.Updated, stats.Skipped, stats.Fetched)
	return nil
}
