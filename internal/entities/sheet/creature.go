package sheet

// DeathSave carries the creature record's raw death-save tallies.
type DeathSave struct {
	Success int `json:"success"`
	Fail    int `json:"fail"`
}

// CreatureLevel is one entry of the optional levels list on the creature
// record. Property nodes are the authoritative class source; this is a
// fallback for payloads that never materialized class properties.
type CreatureLevel struct {
	Name  string `json:"name"`
	Level Cell   `json:"level"`
}

// Creature is the top-level creature record of the raw payload.
type Creature struct {
	ID                string          `json:"_id"`
	Name              string          `json:"name"`
	Alignment         string          `json:"alignment"`
	Level             Cell            `json:"level"`
	Levels            []CreatureLevel `json:"levels"`
	DeathSave         DeathSave       `json:"deathSave"`
	ArmorClass        Cell            `json:"armorClass"`
	DenormalizedStats map[string]any  `json:"denormalizedStats"`
}

// VariableMap maps sheet variable names to value cells. No key is
// guaranteed present and every cell may be any Cell shape.
type VariableMap map[string]Cell

// Lookup returns the first present cell among the given names.
func (m VariableMap) Lookup(names ...string) (Cell, bool) {
	for _, name := range names {
		if c, ok := m[name]; ok && !c.IsEmpty() {
			return c, true
		}
	}
	return Cell{}, false
}

// Payload bundles the three raw inputs of one extraction call as they
// travel over the wire from the sheet service.
type Payload struct {
	Creature   *Creature      `json:"creature"`
	Variables  VariableMap    `json:"variables"`
	Properties []PropertyNode `json:"properties"`
}
