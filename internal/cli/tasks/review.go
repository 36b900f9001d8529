package tasks

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// ReviewCmd walks through tasks whose planned time has passed and records
// what actually happened.
type ReviewCmd struct{}

type reviewAction string

const (
	actionDone       reviewAction = "done"
	actionReschedule reviewAction = "reschedule"
	actionKeep       reviewAction = "keep"
	actionStop       reviewAction = "stop"
)

func (c *ReviewCmd) Run(ctx *cli.Context) error {
	overdue, err := ctx.Store.TasksForReview(time.Now())
	if err != nil {
		return fmt.Errorf("failed to fetch tasks for review: %w", err)
	}
	if len(overdue) == 0 {
		fmt.Println("Nothing to review.")
		return nil
	}

	for _, task := range overdue {
		action, err := promptReviewAction(task)
		if err != nil {
			return err
		}

		switch action {
		case actionDone:
			if err := completeTask(ctx, task); err != nil {
				return err
			}
		case actionReschedule:
			task.Status = models.StatusNew
			task.PlannedStart = nil
			task.PlannedEnd = nil
			if err := ctx.Store.UpdateMindItem(task); err != nil {
				return fmt.Errorf("failed to reset task for replanning: %w", err)
			}
			fmt.Printf("↻ %s moved back to the planning queue\n", task.Summary)
		case actionKeep:
			// Leave it committed; it stays on the review list.
		case actionStop:
			return nil
		}
	}
	return nil
}

func promptReviewAction(task models.MindItem) (reviewAction, error) {
	title := fmt.Sprintf("%s (planned %s)", task.Summary,
		task.PlannedStart.Format(constants.DateTimeFormat))

	var action reviewAction
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[reviewAction]().
			Title(title).
			Options(
				huh.NewOption("Done", actionDone),
				huh.NewOption("Reschedule", actionReschedule),
				huh.NewOption("Keep as planned", actionKeep),
				huh.NewOption("Stop reviewing", actionStop),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return actionStop, err
	}
	return action, nil
}

func completeTask(ctx *cli.Context, task models.MindItem) error {
	var comment string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("How did it go? (optional)").
			Value(&comment),
	))
	if err := form.Run(); err != nil {
		return err
	}

	now := time.Now()
	task.Status = models.StatusDone
	task.DoneAt = &now
	task.CompletionComment = comment
	if err := ctx.Store.UpdateMindItem(task); err != nil {
		return fmt.Errorf("failed to mark task done: %w", err)
	}
	fmt.Printf("✓ %s done\n", task.Summary)
	return nil
}
