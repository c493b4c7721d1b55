package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AI2HU/geodash/internal/db"
	"github.com/AI2HU/geodash/internal/logger"
	"github.com/AI2HU/geodash/internal/models"
)

// MirrorService copies backend rows into the local mirror
type MirrorService struct {
	source db.Source
	mirror db.Mirror
	log    *logger.Logger
	now    func() time.Time
}

// NewMirrorService creates a new mirror service
func NewMirrorService(source db.Source, mirror db.Mirror) *MirrorService {
	return &MirrorService{
		source: source,
		mirror: mirror,
		log:    logger.Named("mirror"),
		now:    time.Now,
	}
}

// Sync pulls every row the dashboard reads and replaces the mirror contents.
// The mirror is left untouched when any fetch fails.
func (s *MirrorService) Sync(ctx context.Context) (*db.SyncRun, error) {
	run := db.SyncRun{
		ID:        uuid.New().String(),
		StartedAt: s.now().UTC(),
	}
	s.log.Info("Starting mirror sync %s", run.ID)

	var snap db.Snapshot
	var err error

	snap.DailyMentions, err = s.source.FetchDailyMentions(ctx, models.MentionFilter{Model: models.ModelAll})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily mentions: %w", err)
	}
	snap.ConceptMentions, err = s.source.FetchConceptMentions(ctx, models.ConceptFilter{Model: models.ModelAll})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch concept mentions: %w", err)
	}
	snap.CitedPages, err = s.source.FetchCitedPages(ctx, models.CitedPageFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cited pages: %w", err)
	}
	snap.URLPrompts, err = s.source.FetchURLPrompts(ctx, models.URLPromptFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url prompts: %w", err)
	}

	run.DailyMentions = len(snap.DailyMentions)
	run.ConceptMentions = len(snap.ConceptMentions)
	run.CitedPages = len(snap.CitedPages)
	run.URLPrompts = len(snap.URLPrompts)
	run.FinishedAt = s.now().UTC()

	if err := s.mirror.ReplaceAll(ctx, run, snap); err != nil {
		return nil, fmt.Errorf("failed to write mirror: %w", err)
	}

	s.log.Info("Mirror sync %s done: %d daily, %d concept, %d cited, %d prompt rows in %s",
		run.ID, run.DailyMentions, run.ConceptMentions, run.CitedPages, run.URLPrompts,
		run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	return &run, nil
}

// Status returns the last completed sync, or nil when the mirror is empty
func (s *MirrorService) Status(ctx context.Context) (*db.SyncRun, error) {
	return s.mirror.LastSync(ctx)
}
