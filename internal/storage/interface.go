package storage

import (
	"context"

	"github.com/nkarpov/balda-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game operations. SaveGame writes unconditionally and is used for
	// creation; CompareAndSaveGame only writes when the stored snapshot
	// still has the expected version, returning model.ErrVersionConflict
	// otherwise. Callers re-read and retry on conflict.
	SaveGame(ctx context.Context, game *model.Game) error
	CompareAndSaveGame(ctx context.Context, game *model.Game, expectedVersion int64) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
