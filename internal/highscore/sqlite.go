package highscore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps scores in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at path and applies
// pending migrations.
func OpenSQLite(ctx context.Context, path string, logger zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("highscore: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("highscore: open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("highscore: ping %s: %w", path, err)
	}

	if err := migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("highscore: migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("highscore: goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("highscore: migrate: %w", err)
	}
	for _, r := range results {
		logger.Info().Str("migration", r.Source.Path).Dur("duration", r.Duration).Msg("applied migration")
	}
	return nil
}

// Load returns the stored score, or 0 when the player has no row.
func (s *SQLiteStore) Load(ctx context.Context, playerID string) (int, error) {
	if err := validatePlayer(playerID); err != nil {
		return 0, err
	}
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM high_scores WHERE player_id = ?`, playerID).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: load: %w", err)
	}
	return score, nil
}

// Save upserts the row in one transaction, keeping the larger score and the
// time it was reached.
func (s *SQLiteStore) Save(ctx context.Context, playerID string, score int) (int, error) {
	if err := validate(playerID, score); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("highscore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO high_scores (player_id, score, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			updated_at = CASE WHEN excluded.score > high_scores.score THEN excluded.updated_at ELSE high_scores.updated_at END,
			score      = MAX(high_scores.score, excluded.score)`,
		playerID, score, now); err != nil {
		return 0, fmt.Errorf("highscore: upsert: %w", err)
	}

	var best int
	if err := tx.QueryRowContext(ctx, `SELECT score FROM high_scores WHERE player_id = ?`, playerID).Scan(&best); err != nil {
		return 0, fmt.Errorf("highscore: reload: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("highscore: commit: %w", err)
	}
	return best, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
