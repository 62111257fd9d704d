package highscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type record struct {
	PlayerID  string    `json:"playerId"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FileStore keeps one JSON file per player under a directory.
type FileStore struct {
	dir    string
	maxAge time.Duration
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewFileStore creates dir if needed. Records untouched for longer than maxAge
// are treated as missing and removed; zero keeps records forever.
func NewFileStore(dir string, maxAge time.Duration, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("highscore: create %s: %w", dir, err)
	}
	return &FileStore{dir: dir, maxAge: maxAge, logger: logger}, nil
}

func (s *FileStore) path(playerID string) string {
	return filepath.Join(s.dir, playerID+".json")
}

// Load returns the player's score, or 0 when the file is missing or expired.
func (s *FileStore) Load(_ context.Context, playerID string) (int, error) {
	if err := validatePlayer(playerID); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.read(playerID)
	if err != nil {
		return 0, err
	}
	return rec.Score, nil
}

// Save rewrites the player's file when score beats the stored one.
func (s *FileStore) Save(_ context.Context, playerID string, score int) (int, error) {
	if err := validate(playerID, score); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(playerID)
	if err != nil {
		return 0, err
	}
	if score <= rec.Score && rec.PlayerID != "" {
		return rec.Score, nil
	}
	if score > rec.Score {
		rec.Score = score
	}
	rec.PlayerID = playerID
	rec.UpdatedAt = time.Now().UTC()
	if err := s.write(rec); err != nil {
		return 0, err
	}
	return rec.Score, nil
}

// read returns a zero record when the file is missing, expired or corrupted.
func (s *FileStore) read(playerID string) (record, error) {
	file := s.path(playerID)
	info, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return record{}, nil
	}
	if err != nil {
		return record{}, fmt.Errorf("highscore: stat %s: %w", file, err)
	}

	if s.maxAge > 0 && time.Since(info.ModTime()) > s.maxAge {
		s.logger.Info().Str("file", file).Dur("age", time.Since(info.ModTime())).Msg("removing expired high score")
		_ = os.Remove(file)
		return record{}, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return record{}, fmt.Errorf("highscore: read %s: %w", file, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.PlayerID != playerID || rec.Score < 0 {
		s.logger.Warn().Str("file", file).Msg("removing corrupted high score file")
		_ = os.Remove(file)
		return record{}, nil
	}
	return rec, nil
}

// write replaces the record atomically.
func (s *FileStore) write(rec record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("highscore: encode: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, rec.PlayerID+".*.tmp")
	if err != nil {
		return fmt.Errorf("highscore: create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("highscore: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("highscore: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(rec.PlayerID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("highscore: rename: %w", err)
	}
	return nil
}

// Cleanup removes records older than maxAge and returns how many were removed.
func (s *FileStore) Cleanup(maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("highscore: read dir: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			failed++
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				failed++
				continue
			}
			removed++
		}
	}
	s.logger.Info().Int("removed", removed).Int("errors", failed).Dur("max_age", maxAge).Msg("high score cleanup completed")
	return removed, nil
}

// Close is a no-op; every write is already on disk.
func (s *FileStore) Close() error { return nil }
