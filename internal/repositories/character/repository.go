// Package character provides persistence for normalized character snapshots.
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/vttbridge/sheet-api/internal/repositories/character Repository

import (
	"context"

	"github.com/vttbridge/sheet-api/internal/entities/character"
)

// Repository defines the interface for snapshot persistence.
type Repository interface {
	// Save stores a snapshot, replacing any existing one with the same ID.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a snapshot by character ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if no snapshot exists
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a snapshot by character ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if no snapshot exists
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID retrieves all snapshots owned by a player
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// SaveInput defines the input for storing a snapshot
type SaveInput struct {
	Snapshot *character.Snapshot
}

// SaveOutput defines the output for storing a snapshot
type SaveOutput struct {
	Snapshot *character.Snapshot
}

// GetInput defines the input for getting a snapshot
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a snapshot
type GetOutput struct {
	Snapshot *character.Snapshot
}

// DeleteInput defines the input for deleting a snapshot
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a snapshot
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing a player's snapshots
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing a player's snapshots
type ListByPlayerIDOutput struct {
	Snapshots []*character.Snapshot
}
