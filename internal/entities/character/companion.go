package character

// CompanionAbility is one parsed ability cell of a companion stat block.
type CompanionAbility struct {
	Score    int `json:"score"`
	Modifier int `json:"modifier"`
}

// CompanionAbilities holds the six parsed ability cells.
type CompanionAbilities struct {
	Str CompanionAbility `json:"str"`
	Dex CompanionAbility `json:"dex"`
	Con CompanionAbility `json:"con"`
	Int CompanionAbility `json:"int"`
	Wis CompanionAbility `json:"wis"`
	Cha CompanionAbility `json:"cha"`
}

// CompanionFeature is a named trait recovered from the stat-block text.
type CompanionFeature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CompanionAction is a melee attack recovered from the stat-block text.
type CompanionAction struct {
	Name        string `json:"name"`
	AttackBonus int    `json:"attack_bonus"`
	Reach       string `json:"reach,omitempty"`
	Hit         string `json:"hit,omitempty"`
}

// Companion is a best-effort parse of a companion/familiar/summon stat
// block embedded in a feature description. A companion is only emitted
// when at least one structured field was recovered.
type Companion struct {
	Name             string             `json:"name"`
	Size             string             `json:"size,omitempty"`
	Type             string             `json:"type,omitempty"`
	Alignment        string             `json:"alignment,omitempty"`
	AC               int                `json:"ac"`
	HP               string             `json:"hp,omitempty"`
	Speed            string             `json:"speed,omitempty"`
	Abilities        CompanionAbilities `json:"abilities"`
	ParsedAbilities  bool               `json:"-"`
	Senses           string             `json:"senses,omitempty"`
	Languages        string             `json:"languages,omitempty"`
	ProficiencyBonus int                `json:"proficiency_bonus,omitempty"`
	Features         []CompanionFeature `json:"features"`
	Actions          []CompanionAction  `json:"actions"`
}
