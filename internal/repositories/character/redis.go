package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/errors"
	"github.com/vttbridge/sheet-api/internal/pkg/clock"
	redisclient "github.com/vttbridge/sheet-api/internal/redis"
)

const (
	snapshotKeyPrefix = "character:"
	playerIndexPrefix = "character:player:"

	errSnapshotNil   = "snapshot cannot be nil"
	errIDEmpty       = "character ID cannot be empty"
	errPlayerIDEmpty = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis snapshot repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed snapshot repository.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotNil)
	}
	if input.Snapshot.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	snapshot := *input.Snapshot
	snapshot.UpdatedAt = r.clock.Now().UTC()

	data, err := json.Marshal(&snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	key := snapshotKeyPrefix + snapshot.ID

	// Replacing a snapshot can change its owner, so the old index entry has
	// to go. The previous owner is read outside the transaction; a racing
	// save for the same character loses that cleanup, nothing worse.
	previousPlayerID := ""
	if existing, err := r.Get(ctx, GetInput{ID: snapshot.ID}); err == nil {
		previousPlayerID = existing.Snapshot.PlayerID
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if previousPlayerID != "" && previousPlayerID != snapshot.PlayerID {
		pipe.SRem(ctx, playerIndexPrefix+previousPlayerID, snapshot.ID)
	}
	if snapshot.PlayerID != "" {
		pipe.SAdd(ctx, playerIndexPrefix+snapshot.PlayerID, snapshot.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save snapshot")
	}

	return &SaveOutput{Snapshot: &snapshot}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := snapshotKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get snapshot")
	}

	var snapshot character.Snapshot
	if err := json.Unmarshal([]byte(result), &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot")
	}

	return &GetOutput{Snapshot: &snapshot}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	snapshot := getOutput.Snapshot

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, snapshotKeyPrefix+input.ID)
	if snapshot.PlayerID != "" {
		pipe.SRem(ctx, playerIndexPrefix+snapshot.PlayerID, input.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete snapshot")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerIndexPrefix + input.PlayerID

	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read player index %s", indexKey)
	}

	snapshots := make([]*character.Snapshot, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// A dangling index entry is cleaned up instead of failing the list.
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "snapshot missing, cleaning up player index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get snapshot %s", id)
		}
		snapshots = append(snapshots, getOutput.Snapshot)
	}

	slog.DebugContext(ctx, "listed snapshots by player",
		"player_id", input.PlayerID,
		"count", len(snapshots))

	return &ListByPlayerIDOutput{Snapshots: snapshots}, nil
}
