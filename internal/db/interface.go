package db

import (
	"context"
	"time"

	"github.com/AI2HU/geodash/internal/models"
)

// Source defines the read operations every dashboard widget is built from.
// The hosted backend client and the local SQLite mirror both implement it.
type Source interface {
	FetchDailyMentions(ctx context.Context, filter models.MentionFilter) ([]models.MentionRecord, error)
	FetchTopCategories(ctx context.Context, filter models.CategoryFilter) ([]models.CategorySummary, error)
	FetchConceptMentions(ctx context.Context, filter models.ConceptFilter) ([]models.ConceptMentionRecord, error)
	FetchCitedPages(ctx context.Context, filter models.CitedPageFilter) ([]models.CitedPageRecord, error)
	FetchURLPrompts(ctx context.Context, filter models.URLPromptFilter) ([]models.URLPromptRecord, error)
	Ping(ctx context.Context) error
}

// Snapshot is a complete copy of the backend rows a mirror holds
type Snapshot struct {
	DailyMentions   []models.MentionRecord
	ConceptMentions []models.ConceptMentionRecord
	CitedPages      []models.CitedPageRecord
	URLPrompts      []models.URLPromptRecord
}

// SyncRun records one mirror refresh
type SyncRun struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	DailyMentions   int       `json:"daily_mentions"`
	ConceptMentions int       `json:"concept_mentions"`
	CitedPages      int       `json:"cited_pages"`
	URLPrompts      int       `json:"url_prompts"`
}

// Mirror is a local Source that can be replaced wholesale from a snapshot
type Mirror interface {
	Source
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	ReplaceAll(ctx context.Context, run SyncRun, snapshot Snapshot) error
	LastSync(ctx context.Context) (*SyncRun, error)
}
