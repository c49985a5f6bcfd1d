// Package sheet provides the client for the upstream character-sheet
// service that owns the raw creature records.
package sheet

//go:generate mockgen -destination=mock/mock_client.go -package=sheetmock github.com/vttbridge/sheet-api/internal/clients/sheet Client

import (
	"context"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

// Client defines the interface for fetching raw creature payloads.
type Client interface {
	// GetCreature retrieves one creature's full payload by id
	// Returns errors.NotFound when the creature does not exist upstream
	// Returns errors.Unavailable for transport or upstream failures
	GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error)
}

// GetCreatureInput defines the request for fetching a creature
type GetCreatureInput struct {
	CreatureID string
}

// GetCreatureOutput defines the response for fetching a creature
type GetCreatureOutput struct {
	// PlayerID is the upstream owner of the creature record.
	PlayerID string
	Payload  *sheet.Payload
}
