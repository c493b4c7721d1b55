package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AI2HU/geodash/internal/db"
	"github.com/AI2HU/geodash/internal/models"
)

// MemoryPath opens a private in-memory mirror
const MemoryPath = ":memory:"

// SQLite implements the db.Mirror interface for SQLite
type SQLite struct {
	db   *sql.DB
	path string
}

// New creates a new SQLite mirror for the database file at path
func New(path string) *SQLite {
	return &SQLite{path: path}
}

// Connect opens the database file and applies the schema migrations
func (s *SQLite) Connect(ctx context.Context) error {
	dbPath := s.path
	if dbPath != MemoryPath {
		resolved, err := resolvePath(dbPath)
		if err != nil {
			return err
		}
		dbPath = resolved

		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database at path '%s': %w", dbPath, err)
	}
	if dbPath == MemoryPath {
		// every pooled connection would get its own empty database
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping SQLite database at path '%s': %w", dbPath, err)
	}

	if err := db.RunMigrations(conn); err != nil {
		conn.Close()
		return err
	}

	s.db = conn
	return nil
}

// Disconnect closes the SQLite connection
func (s *SQLite) Disconnect(ctx context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks the database connection
func (s *SQLite) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("not connected to database")
	}
	return s.db.PingContext(ctx)
}

// DB exposes the underlying handle for schema inspection
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// ReplaceAll swaps the mirror contents for the snapshot and records the run, in one transaction
func (s *SQLite) ReplaceAll(ctx context.Context, run db.SyncRun, snapshot db.Snapshot) error {
	if s.db == nil {
		return fmt.Errorf("not connected to database")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"daily_mentions", "concept_mentions", "cited_pages", "url_prompts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertDailyMentions(ctx, tx, snapshot.DailyMentions); err != nil {
		return err
	}
	if err := insertConceptMentions(ctx, tx, snapshot.ConceptMentions); err != nil {
		return err
	}
	if err := insertCitedPages(ctx, tx, snapshot.CitedPages); err != nil {
		return err
	}
	if err := insertURLPrompts(ctx, tx, snapshot.URLPrompts); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sync_runs (id, started_at, finished_at, daily_mentions, concept_mentions, cited_pages, url_prompts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
		run.DailyMentions,
		run.ConceptMentions,
		run.CitedPages,
		run.URLPrompts,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mirror snapshot: %w", err)
	}
	return nil
}

// LastSync returns the most recent sync run, or nil when the mirror was never synced
func (s *SQLite) LastSync(ctx context.Context) (*db.SyncRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	query := `
		SELECT id, started_at, finished_at, daily_mentions, concept_mentions, cited_pages, url_prompts
		FROM sync_runs ORDER BY finished_at DESC LIMIT 1`

	var run db.SyncRun
	err := s.db.QueryRowContext(ctx, query).Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
		&run.DailyMentions,
		&run.ConceptMentions,
		&run.CitedPages,
		&run.URLPrompts,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync run: %w", err)
	}
	return &run, nil
}

func insertDailyMentions(ctx context.Context, tx *sql.Tx, rows []models.MentionRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_mentions (date, brand, model, total_mentions, sentiment_positive, sentiment_negative, sentiment_neutral)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare daily mentions insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Date, r.Brand, string(r.Model), r.TotalMentions, r.SentimentPositive, r.SentimentNegative, r.SentimentNeutral); err != nil {
			return fmt.Errorf("failed to insert daily mention: %w", err)
		}
	}
	return nil
}

func insertConceptMentions(ctx context.Context, tx *sql.Tx, rows []models.ConceptMentionRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO concept_mentions (date, brand, model, concept, concept_category, concept_subcategory, mentions, sentiment_positive, sentiment_negative, sentiment_neutral)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare concept mentions insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.Date, r.Brand, string(r.Model), r.Concept, r.ConceptCategory, r.ConceptSubcategory,
			r.Mentions, r.SentimentPositive, r.SentimentNegative, r.SentimentNeutral,
		)
		if err != nil {
			return fmt.Errorf("failed to insert concept mention: %w", err)
		}
	}
	return nil
}

func insertCitedPages(ctx context.Context, tx *sql.Tx, rows []models.CitedPageRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cited_pages (url, domain, prompts_count, title, country, category, prompts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cited pages insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		prompts := r.Prompts
		if prompts == nil {
			prompts = []models.PromptExample{}
		}
		promptsJSON, err := json.Marshal(prompts)
		if err != nil {
			return fmt.Errorf("failed to encode prompts for %s: %w", r.URL, err)
		}
		if _, err := stmt.ExecContext(ctx, r.URL, r.Domain, r.PromptsCount, r.Title, r.Country, r.Category, string(promptsJSON)); err != nil {
			return fmt.Errorf("failed to insert cited page: %w", err)
		}
	}
	return nil
}

func insertURLPrompts(ctx context.Context, tx *sql.Tx, rows []models.URLPromptRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO url_prompts (url, prompt, prompt_hash, topic, llm, volume, mentioned_brands_count, used_sources_count, country)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare url prompts insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.URL, r.Prompt, r.PromptHash, r.Topic, r.LLM, r.Volume,
			r.MentionedBrandsCount, r.UsedSourcesCount, r.Country,
		)
		if err != nil {
			return fmt.Errorf("failed to insert url prompt: %w", err)
		}
	}
	return nil
}

// resolvePath expands ~ and makes relative paths absolute
func resolvePath(p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, p[1:]), nil
	}
	if !filepath.IsAbs(p) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		return abs, nil
	}
	return p, nil
}
