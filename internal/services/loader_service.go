package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/logger"
	"github.com/AI2HU/geodash/internal/models"
)

// DefaultBatchSize is the number of records sent per upsert
const DefaultBatchSize = 500

// Natural keys the backend merges duplicates on
const (
	ConceptMentionsConflict = "date,concept,model,brand"
	URLPromptsConflict      = "url,prompt_hash,country"
)

// Upserter writes records to a backend resource, merging on the conflict columns
type Upserter interface {
	Upsert(ctx context.Context, resource, onConflict string, records interface{}) error
}

// LoadResult summarizes one load
type LoadResult struct {
	Read          int `json:"read"`
	Unique        int `json:"unique"`
	Loaded        int `json:"loaded"`
	Batches       int `json:"batches"`
	FailedBatches int `json:"failed_batches"`
}

// URLPromptDoc is one exported file of prompts that cited a URL
type URLPromptDoc struct {
	URL     string `json:"url"`
	Prompts []struct {
		Prompt               string `json:"prompt"`
		PromptHash           string `json:"prompt_hash"`
		Topic                string `json:"topic"`
		LLM                  string `json:"llm"`
		Volume               int    `json:"volume"`
		MentionedBrandsCount int    `json:"mentioned_brands_count"`
		UsedSourcesCount     int    `json:"used_sources_count"`
	} `json:"prompts"`
}

// CitedPagesDoc is an exported cited pages report
type CitedPagesDoc struct {
	Metadata struct {
		Country  string `json:"country"`
		Category string `json:"category"`
		Domain   string `json:"domain"`
	} `json:"metadata"`
	Rows []struct {
		URL          string `json:"url"`
		PromptsCount int    `json:"prompts_count"`
	} `json:"rows"`
}

// LoaderService provides business logic for loading exported records into the backend
type LoaderService struct {
	upserter  Upserter
	batchSize int
	log       *logger.Logger
}

// NewLoaderService creates a new loader service
func NewLoaderService(upserter Upserter, batchSize int) *LoaderService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &LoaderService{
		upserter:  upserter,
		batchSize: batchSize,
		log:       logger.Named("loader"),
	}
}

// LoadConceptMentions reads a JSON array of concept mention rows and upserts them.
// Rows sharing (date, concept, model, brand) collapse to the one with the most mentions.
func (s *LoaderService) LoadConceptMentions(ctx context.Context, r io.Reader) (*LoadResult, error) {
	var records []models.ConceptMentionRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode concept mentions: %w", err)
	}

	deduped := DedupeConceptMentions(records)
	result := &LoadResult{Read: len(records), Unique: len(deduped)}
	return result, upsertBatches(ctx, s, backend.ResourceConceptMentions, ConceptMentionsConflict, deduped, result)
}

// LoadURLPrompts flattens URL prompt files into rows for country and upserts them.
// The first row seen for (url, prompt_hash, country) wins.
func (s *LoaderService) LoadURLPrompts(ctx context.Context, docs []URLPromptDoc, country string) (*LoadResult, error) {
	var records []models.URLPromptRecord
	for _, doc := range docs {
		for _, p := range doc.Prompts {
			records = append(records, models.URLPromptRecord{
				URL:                  doc.URL,
				Prompt:               p.Prompt,
				PromptHash:           p.PromptHash,
				Topic:                p.Topic,
				LLM:                  p.LLM,
				Volume:               p.Volume,
				MentionedBrandsCount: p.MentionedBrandsCount,
				UsedSourcesCount:     p.UsedSourcesCount,
				Country:              country,
			})
		}
	}

	deduped := DedupeURLPrompts(records)
	result := &LoadResult{Read: len(records), Unique: len(deduped)}
	return result, upsertBatches(ctx, s, backend.ResourceURLPrompts, URLPromptsConflict, deduped, result)
}

// LoadCitedPages reads a cited pages report and upserts its rows tagged with the report metadata
func (s *LoaderService) LoadCitedPages(ctx context.Context, r io.Reader) (*LoadResult, error) {
	var doc CitedPagesDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode cited pages: %w", err)
	}

	records := make([]models.CitedPageRecord, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		records = append(records, models.CitedPageRecord{
			URL:          row.URL,
			PromptsCount: row.PromptsCount,
			Country:      doc.Metadata.Country,
			Category:     doc.Metadata.Category,
			Domain:       doc.Metadata.Domain,
		})
	}

	result := &LoadResult{Read: len(records), Unique: len(records)}
	return result, upsertBatches(ctx, s, backend.ResourceCitedPages, "", records, result)
}

// ReadURLPromptDocs decodes every .json file in dir, in name order
func ReadURLPromptDocs(dir string) ([]URLPromptDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]URLPromptDoc, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		var doc URLPromptDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DedupeConceptMentions keeps one row per (date, concept, model, brand), the one with the most mentions.
// Output follows the first appearance of each key.
func DedupeConceptMentions(records []models.ConceptMentionRecord) []models.ConceptMentionRecord {
	type key struct{ date, concept, model, brand string }

	index := make(map[key]int)
	out := make([]models.ConceptMentionRecord, 0, len(records))
	for _, r := range records {
		k := key{r.Date, r.Concept, string(r.Model), r.Brand}
		if i, ok := index[k]; ok {
			if r.Mentions > out[i].Mentions {
				out[i] = r
			}
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}

// DedupeURLPrompts keeps the first row per (url, prompt_hash, country)
func DedupeURLPrompts(records []models.URLPromptRecord) []models.URLPromptRecord {
	type key struct{ url, hash, country string }

	seen := make(map[key]bool)
	out := make([]models.URLPromptRecord, 0, len(records))
	for _, r := range records {
		k := key{r.URL, r.PromptHash, r.Country}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// upsertBatches sends records in batches. A failed batch is logged and skipped;
// the load reports an error once all batches were attempted.
func upsertBatches[T any](ctx context.Context, s *LoaderService, resource, onConflict string, records []T, result *LoadResult) error {
	total := (len(records) + s.batchSize - 1) / s.batchSize
	var lastErr error

	for start := 0; start < len(records); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]
		result.Batches++

		if err := s.upserter.Upsert(ctx, resource, onConflict, batch); err != nil {
			result.FailedBatches++
			lastErr = err
			s.log.Error("Batch %d/%d for %s failed: %v", result.Batches, total, resource, err)
			continue
		}

		result.Loaded += len(batch)
		s.log.Info("Batch %d/%d for %s: loaded %d records (total: %d)", result.Batches, total, resource, len(batch), result.Loaded)
	}

	if lastErr != nil {
		return fmt.Errorf("%d of %d batches failed, last error: %w", result.FailedBatches, result.Batches, lastErr)
	}
	return nil
}
