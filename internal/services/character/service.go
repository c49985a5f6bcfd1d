// Package character defines the interface for normalized-character
// operations.
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/vttbridge/sheet-api/internal/services/character Service

import (
	"context"

	entities "github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

// Service defines the interface for character operations.
type Service interface {
	// NormalizeCharacter runs the normalization pipeline over a raw payload
	// supplied by the caller. Stateless; storage is never touched.
	NormalizeCharacter(ctx context.Context, input *NormalizeCharacterInput) (*NormalizeCharacterOutput, error)

	// GetCharacter returns the stored snapshot for a character, fetching
	// and normalizing from the sheet service when none is stored yet.
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// RefreshCharacter re-fetches the raw payload, re-normalizes, and
	// replaces the stored snapshot.
	RefreshCharacter(ctx context.Context, input *RefreshCharacterInput) (*RefreshCharacterOutput, error)

	// ListCharacters returns all stored snapshots owned by a player.
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// DeleteCharacter removes a stored snapshot.
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)
}

// NormalizeCharacterInput defines the request for a stateless normalization
type NormalizeCharacterInput struct {
	Creature   *sheet.Creature
	Variables  sheet.VariableMap
	Properties []sheet.PropertyNode
}

// NormalizeCharacterOutput defines the response for a stateless normalization
type NormalizeCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Snapshot *entities.Snapshot
}

// RefreshCharacterInput defines the request for refreshing a character
type RefreshCharacterInput struct {
	CharacterID string
}

// RefreshCharacterOutput defines the response for refreshing a character
type RefreshCharacterOutput struct {
	Snapshot *entities.Snapshot
}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing a player's characters
type ListCharactersOutput struct {
	Snapshots []*entities.Snapshot
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	Message string
}
