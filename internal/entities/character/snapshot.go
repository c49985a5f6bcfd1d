package character

import "time"

// Snapshot is one stored normalization result together with its ownership
// and freshness metadata. The character id doubles as the id of the source
// creature record in the sheet service.
type Snapshot struct {
	ID        string     `json:"id"`
	PlayerID  string     `json:"player_id,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
	Character *Character `json:"character"`
}
