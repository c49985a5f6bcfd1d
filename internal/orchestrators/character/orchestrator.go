// Package character implements the character service: cache-aside reads
// over the snapshot repository, with the sheet service as source of truth
// and the normalizer in between.
package character

import (
	"context"
	"log/slog"

	sheetclient "github.com/vttbridge/sheet-api/internal/clients/sheet"
	entities "github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/errors"
	"github.com/vttbridge/sheet-api/internal/normalizer"
	"github.com/vttbridge/sheet-api/internal/pkg/idgen"
	characterrepo "github.com/vttbridge/sheet-api/internal/repositories/character"
	"github.com/vttbridge/sheet-api/internal/services/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	SheetClient   sheetclient.Client
	// IDGenerator stamps refresh jobs for log correlation. Optional;
	// defaults to a UUID generator.
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.SheetClient == nil {
		vb.RequiredField("SheetClient")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	sheetClient   sheetclient.Client
	idGen         idgen.Generator
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID("refresh")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		sheetClient:   cfg.SheetClient,
		idGen:         gen,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// NormalizeCharacter runs the pipeline over a caller-supplied payload.
func (o *Orchestrator) NormalizeCharacter(
	ctx context.Context,
	input *character.NormalizeCharacterInput,
) (*character.NormalizeCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := normalizer.Normalize(&normalizer.Input{
		Creature:   input.Creature,
		Variables:  input.Variables,
		Properties: input.Properties,
	})
	if err != nil {
		return nil, err
	}

	return &character.NormalizeCharacterOutput{Character: char}, nil
}

// GetCharacter serves from the snapshot store, falling back to a full
// fetch-normalize-save round trip on a miss.
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *character.GetCharacterInput,
) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err == nil {
		return &character.GetCharacterOutput{Snapshot: getOutput.Snapshot}, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	slog.DebugContext(ctx, "snapshot miss, fetching from sheet service",
		"character_id", input.CharacterID)

	snapshot, err := o.fetchAndStore(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.GetCharacterOutput{Snapshot: snapshot}, nil
}

// RefreshCharacter always re-fetches, even when a snapshot is stored.
func (o *Orchestrator) RefreshCharacter(
	ctx context.Context,
	input *character.RefreshCharacterInput,
) (*character.RefreshCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	jobID := o.idGen.Generate()
	slog.InfoContext(ctx, "refreshing character snapshot",
		"character_id", input.CharacterID,
		"job_id", jobID)

	snapshot, err := o.fetchAndStore(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.RefreshCharacterOutput{Snapshot: snapshot}, nil
}

// ListCharacters lists the stored snapshots owned by a player.
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *character.ListCharactersInput,
) (*character.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	listOutput, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	return &character.ListCharactersOutput{Snapshots: listOutput.Snapshots}, nil
}

// DeleteCharacter drops the stored snapshot. The upstream record is
// untouched; a later Get simply re-fetches.
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *character.DeleteCharacterInput,
) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, err
	}

	return &character.DeleteCharacterOutput{
		Message: "character snapshot deleted",
	}, nil
}

// fetchAndStore is the shared fetch-normalize-save path of Get and Refresh.
func (o *Orchestrator) fetchAndStore(ctx context.Context, characterID string) (*entities.Snapshot, error) {
	clientOutput, err := o.sheetClient.GetCreature(ctx, &sheetclient.GetCreatureInput{
		CreatureID: characterID,
	})
	if err != nil {
		return nil, err
	}

	payload := clientOutput.Payload
	if payload == nil {
		return nil, errors.Internalf("sheet service returned no payload for %s", characterID)
	}

	char, err := normalizer.Normalize(&normalizer.Input{
		Creature:   payload.Creature,
		Variables:  payload.Variables,
		Properties: payload.Properties,
	})
	if err != nil {
		return nil, err
	}

	saveOutput, err := o.characterRepo.Save(ctx, characterrepo.SaveInput{
		Snapshot: &entities.Snapshot{
			ID:        characterID,
			PlayerID:  clientOutput.PlayerID,
			Character: char,
		},
	})
	if err != nil {
		return nil, err
	}

	return saveOutput.Snapshot, nil
}
