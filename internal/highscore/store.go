// Package highscore persists each player's best score.
//
// Stores are keyed by the player id cookie and only ever raise a score: Save
// keeps the maximum of the stored and submitted values and returns it.
package highscore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPlayer is returned for player ids that are not UUIDs.
	ErrInvalidPlayer = errors.New("highscore: invalid player id")

	// ErrNegativeScore is returned when saving a score below zero.
	ErrNegativeScore = errors.New("highscore: score must not be negative")
)

// Store loads and saves high scores. Implementations are safe for concurrent use.
type Store interface {
	// Load returns the stored score, or 0 when the player has none.
	Load(ctx context.Context, playerID string) (int, error)

	// Save records score if it beats the stored one and returns the best score.
	Save(ctx context.Context, playerID string, score int) (int, error)

	Close() error
}

func validate(playerID string, score int) error {
	if err := validatePlayer(playerID); err != nil {
		return err
	}
	if score < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeScore, score)
	}
	return nil
}

func validatePlayer(playerID string) error {
	if _, err := uuid.Parse(playerID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, playerID)
	}
	return nil
}
