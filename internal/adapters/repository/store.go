// Package repository persists the save game and settings documents.
package repository

import (
	"context"

	"github.com/okian/ringside/internal/domain/model"
)

// Snapshot is the whole-game save document.
type Snapshot struct {
	GameState     model.GameState       `json:"gameState"`
	Wrestlers     []*model.Wrestler     `json:"wrestlers"`
	Championships []*model.Championship `json:"championships"`
	Events        []*model.Event        `json:"events"`
	Promotions    []*model.Promotion    `json:"promotions"`
}

// Store provides read/write access to the persisted documents.
type Store interface {
	// LoadGame reads and decodes the save document.
	// Returns ErrNotFound if there is no save, ErrCorrupt if it cannot be decoded.
	LoadGame(ctx context.Context) (*Snapshot, error)

	// SaveGame replaces the save document. A failed write leaves the
	// previous document in place.
	SaveGame(ctx context.Context, snap *Snapshot) error

	// GameExists reports whether a save document is present.
	GameExists(ctx context.Context) bool

	// LoadSettings reads the settings document.
	// Returns ErrNotFound if there is none.
	LoadSettings(ctx context.Context) (*model.Settings, error)

	// SaveSettings replaces the settings document.
	SaveSettings(ctx context.Context, s *model.Settings) error
}
