// Package repository defines the player store interface and its in-memory
// implementation.
package repository

import (
	"context"

	"github.com/okian/roster/internal/domain/model"
)

// Store provides read/write access to the roster.
type Store interface {
	// Add assigns the next id (max existing id + 1, or 1 when empty),
	// appends the player and returns the stored copy. Input is trusted.
	Add(ctx context.Context, p model.Player) model.Player

	// Update merges patch over the player with the given id.
	// Returns ErrNotFound if no such player exists.
	Update(ctx context.Context, id int, patch model.Patch) (model.Player, error)

	// Delete removes the player with the given id. Unknown ids are a no-op;
	// the result reports whether a record was removed.
	Delete(ctx context.Context, id int) bool

	// Get returns the player with the given id or ErrNotFound.
	Get(ctx context.Context, id int) (model.Player, error)

	// List returns a snapshot of every player in insertion order.
	List(ctx context.Context) []model.Player

	// Count returns the number of stored players.
	Count(ctx context.Context) int
}
