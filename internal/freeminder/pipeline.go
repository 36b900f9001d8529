package freeminder

import (
	"context"
	"fmt"

	"github.com/MolchanovArt/exocortex/internal/logger"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// Classifier labels and condenses captured text. The production
// implementation is the OpenAI-compatible client in internal/classify.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.ItemType, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// Store is the persistence slice the pipeline needs.
type Store interface {
	UnprocessedTimelineItems(limit int) ([]models.TimelineItem, error)
	AddMindItem(models.MindItem) (int64, error)
}

// Stats counts what one processing run produced.
type Stats struct {
	Processed int
	Failed    int
	ByType    map[models.ItemType]int
}

// Pipeline turns raw timeline items into classified mind items.
type Pipeline struct {
	store      Store
	classifier Classifier
}

func New(store Store, classifier Classifier) *Pipeline {
	return &Pipeline{store: store, classifier: classifier}
}

// Run classifies up to limit pending timeline items (limit <= 0 means
// all). A failure on one item is logged and skipped so a flaky upstream
// call cannot stall the whole backlog; the item stays pending for the
// next run.
func (p *Pipeline) Run(ctx context.Context, limit int) (Stats, error) {
	stats := Stats{ByType: make(map[models.ItemType]int)}

	pending, err := p.store.UnprocessedTimelineItems(limit)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch pending timeline items: %w", err)
	}

	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		mind, err := p.processItem(ctx, item)
		if err != nil {
			logger.Warn("Skipping timeline item", "id", item.ID, "error", err)
			stats.Failed++
			continue
		}

		if _, err := p.store.AddMindItem(mind); err != nil {
			logger.Warn("Failed to save mind item", "timelineItem", item.ID, "error", err)
			stats.Failed++
			continue
		}

		stats.Processed++
		stats.ByType[mind.ItemType]++
	}

	return stats, nil
}

func (p *Pipeline) processItem(ctx context.Context, item models.TimelineItem) (models.MindItem, error) {
	text := item.Content
	if text == "" {
		text = item.Title
	}

	itemType, err := p.classifier.Classify(ctx, text)
	if err != nil {
		return models.MindItem{}, fmt.Errorf("classify: %w", err)
	}

	summary := text
	// Noise is not worth a summarization round-trip.
	if itemType != models.ItemNoise {
		summary, err = p.classifier.Summarize(ctx, text)
		if err != nil {
			return models.MindItem{}, fmt.Errorf("summarize: %w", err)
		}
	}

	return models.MindItem{
		TimelineItemID: item.ID,
		ItemType:       itemType,
		Summary:        summary,
		Status:         models.StatusNew,
	}, nil
}
