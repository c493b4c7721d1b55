package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/geodash/internal/db/sqlite"
	"github.com/AI2HU/geodash/internal/models"
)

func newTestStore(t *testing.T) *sqlite.SQLite {
	t.Helper()
	store := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { store.Disconnect(context.Background()) })
	return store
}

func mirrorSource() *fakeSource {
	return &fakeSource{
		DailyMentionsFn: func(f models.MentionFilter) ([]models.MentionRecord, error) {
			return sampleMentions, nil
		},
		ConceptMentionsFn: func(f models.ConceptFilter) ([]models.ConceptMentionRecord, error) {
			return sampleConcepts, nil
		},
		CitedPagesFn: func(models.CitedPageFilter) ([]models.CitedPageRecord, error) {
			return []models.CitedPageRecord{{URL: "https://samsung.com/tv", Domain: "samsung.com", PromptsCount: 3}}, nil
		},
		URLPromptsFn: func(models.URLPromptFilter) ([]models.URLPromptRecord, error) {
			return []models.URLPromptRecord{{URL: "https://samsung.com/tv", Prompt: "best tv", Topic: "TVs"}}, nil
		},
	}
}

func TestSyncCopiesEveryResource(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewMirrorService(mirrorSource(), store)
	svc.now = func() time.Time { return time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC) }

	run, err := svc.Sync(ctx)
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, run.DailyMentions)
	assert.Equal(t, 3, run.ConceptMentions)
	assert.Equal(t, 1, run.CitedPages)
	assert.Equal(t, 1, run.URLPrompts)

	last, err := svc.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, run.ID, last.ID)

	// the mirror answers the same widgets as the backend
	kpis, err := NewDashboardService(store, DashboardOptions{TargetBrand: "Samsung"}).KPIs(ctx, WidgetQuery{})
	require.NoError(t, err)
	assert.Equal(t, "30.0", kpis.ShareOfVoice)
}

func TestSyncLeavesMirrorOnFetchError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := NewMirrorService(mirrorSource(), store).Sync(ctx)
	require.NoError(t, err)

	broken := mirrorSource()
	broken.URLPromptsFn = func(models.URLPromptFilter) ([]models.URLPromptRecord, error) {
		return nil, errors.New("timeout")
	}
	_, err = NewMirrorService(broken, store).Sync(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url prompts")

	last, err := store.LastSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, last.ID)

	rows, err := store.FetchConceptMentions(ctx, models.ConceptFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestStatusOnEmptyMirror(t *testing.T) {
	last, err := NewMirrorService(mirrorSource(), newTestStore(t)).Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}
