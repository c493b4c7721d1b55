package services

import (
	"context"
	"sync"

	"github.com/AI2HU/geodash/internal/llm"
	"github.com/AI2HU/geodash/internal/models"
)

type fakeSource struct {
	DailyMentionsFn   func(models.MentionFilter) ([]models.MentionRecord, error)
	TopCategoriesFn   func(models.CategoryFilter) ([]models.CategorySummary, error)
	ConceptMentionsFn func(models.ConceptFilter) ([]models.ConceptMentionRecord, error)
	CitedPagesFn      func(models.CitedPageFilter) ([]models.CitedPageRecord, error)
	URLPromptsFn      func(models.URLPromptFilter) ([]models.URLPromptRecord, error)

	mu    sync.Mutex
	calls []string
}

func (f *fakeSource) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeSource) FetchDailyMentions(ctx context.Context, filter models.MentionFilter) ([]models.MentionRecord, error) {
	f.record("daily_mentions")
	if f.DailyMentionsFn == nil {
		return nil, nil
	}
	return f.DailyMentionsFn(filter)
}

func (f *fakeSource) FetchTopCategories(ctx context.Context, filter models.CategoryFilter) ([]models.CategorySummary, error) {
	f.record("top_categories")
	if f.TopCategoriesFn == nil {
		return nil, nil
	}
	return f.TopCategoriesFn(filter)
}

func (f *fakeSource) FetchConceptMentions(ctx context.Context, filter models.ConceptFilter) ([]models.ConceptMentionRecord, error) {
	f.record("concept_mentions")
	if f.ConceptMentionsFn == nil {
		return nil, nil
	}
	return f.ConceptMentionsFn(filter)
}

func (f *fakeSource) FetchCitedPages(ctx context.Context, filter models.CitedPageFilter) ([]models.CitedPageRecord, error) {
	f.record("cited_pages")
	if f.CitedPagesFn == nil {
		return nil, nil
	}
	return f.CitedPagesFn(filter)
}

func (f *fakeSource) FetchURLPrompts(ctx context.Context, filter models.URLPromptFilter) ([]models.URLPromptRecord, error) {
	f.record("url_prompts")
	if f.URLPromptsFn == nil {
		return nil, nil
	}
	return f.URLPromptsFn(filter)
}

func (f *fakeSource) Ping(ctx context.Context) error {
	return nil
}

type fakeProvider struct {
	GenerateFn func(prompt string, config llm.Config) (*llm.Response, error)
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, prompt string, config llm.Config) (*llm.Response, error) {
	return f.GenerateFn(prompt, config)
}

type upsertCall struct {
	Resource   string
	OnConflict string
	Records    interface{}
}

type fakeUpserter struct {
	UpsertFn func(call upsertCall) error
	calls    []upsertCall
}

func (f *fakeUpserter) Upsert(ctx context.Context, resource, onConflict string, records interface{}) error {
	call := upsertCall{Resource: resource, OnConflict: onConflict, Records: records}
	f.calls = append(f.calls, call)
	if f.UpsertFn != nil {
		return f.UpsertFn(call)
	}
	return nil
}
