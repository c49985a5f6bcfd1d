// Package character implements the normalized character entities.
// NOTE: These are data-only structs. All derivation (modifiers, AC cascades,
// dedup) is done by internal/normalizer, not here.
package character

// Ability name constants, used as keys everywhere a per-ability map appears.
const (
	AbilityStrength     = "strength"
	AbilityDexterity    = "dexterity"
	AbilityConstitution = "constitution"
	AbilityIntelligence = "intelligence"
	AbilityWisdom       = "wisdom"
	AbilityCharisma     = "charisma"
)

// AbilityNames lists the six abilities in canonical order.
var AbilityNames = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Abilities holds one integer per ability score or derived value.
type Abilities struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Get returns the value for the named ability.
func (a Abilities) Get(name string) int {
	switch name {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// Set assigns the value for the named ability.
func (a *Abilities) Set(name string, value int) {
	switch name {
	case AbilityStrength:
		a.Strength = value
	case AbilityDexterity:
		a.Dexterity = value
	case AbilityConstitution:
		a.Constitution = value
	case AbilityIntelligence:
		a.Intelligence = value
	case AbilityWisdom:
		a.Wisdom = value
	case AbilityCharisma:
		a.Charisma = value
	}
}

// HPPool is a current/max pair.
type HPPool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// HitDice tracks the hit-dice pool and die size.
type HitDice struct {
	Current int    `json:"current"`
	Max     int    `json:"max"`
	Type    string `json:"type"`
}

// DeathSaves tracks accumulated death-save results.
type DeathSaves struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// SlotPool is one numbered spell-slot pool.
type SlotPool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// PactSlots is the pact-magic pool. Pact slots recharge on a short rest,
// so they are never merged into the numbered pools.
type PactSlots struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Level   int `json:"level"`
}

// SpellSlots carries the nine numbered pools plus the pact pool.
// Levels[0] is first-level.
type SpellSlots struct {
	Levels [9]SlotPool `json:"levels"`
	Pact   PactSlots   `json:"pact"`
}

// Resource is a generic class resource (points or dice pool).
type Resource struct {
	Name         string `json:"name"`
	VariableName string `json:"variable_name,omitempty"`
	Current      int    `json:"current"`
	Max          int    `json:"max"`
}

// Feature is a passive or limited-use class/race feature.
type Feature struct {
	Name        string `json:"name"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Uses        string `json:"uses,omitempty"`
	Roll        string `json:"roll,omitempty"`
	Damage      string `json:"damage,omitempty"`
}

// Action is an attack or other actionable entry.
type Action struct {
	Name        string `json:"name"`
	ActionType  string `json:"action_type,omitempty"`
	AttackRoll  string `json:"attack_roll,omitempty"`
	Damage      string `json:"damage,omitempty"`
	DamageType  string `json:"damage_type,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Uses        string `json:"uses,omitempty"`
	Source      string `json:"source,omitempty"`
}

// DamageRoll is one rollable damage or healing formula of a spell. An OR
// choice set (one formula, caster-selectable type) is carried as a single
// roll whose DamageType joins the choices with " OR ".
type DamageRoll struct {
	Damage     string `json:"damage"`
	DamageType string `json:"damage_type,omitempty"`
	Healing    bool   `json:"healing,omitempty"`
}

// UseSpellAttackBonus is the AttackRoll sentinel meaning the consumer must
// substitute the character's computed spell-attack bonus.
const UseSpellAttackBonus = "use_spell_attack_bonus"

// Spell is one normalized spell entry.
type Spell struct {
	Name          string       `json:"name"`
	Level         int          `json:"level"`
	School        string       `json:"school,omitempty"`
	CastingTime   string       `json:"casting_time,omitempty"`
	Range         string       `json:"range,omitempty"`
	Components    string       `json:"components,omitempty"`
	Duration      string       `json:"duration,omitempty"`
	Summary       string       `json:"summary,omitempty"`
	Description   string       `json:"description,omitempty"`
	Source        string       `json:"source"`
	Concentration bool         `json:"concentration,omitempty"`
	Ritual        bool         `json:"ritual,omitempty"`
	AttackRoll    string       `json:"attack_roll,omitempty"`
	DamageRolls   []DamageRoll `json:"damage_rolls"`
	IsLifesteal   bool         `json:"is_lifesteal,omitempty"`
}

// Item is one inventory entry.
type Item struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Weight   float64  `json:"weight,omitempty"`
	Value    float64  `json:"value,omitempty"`
	Equipped bool     `json:"equipped,omitempty"`
	Attuned  bool     `json:"attuned,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Condition is an active toggle-derived effect that consumers apply to
// rolls (bless, guidance, bardic inspiration, ...).
type Condition struct {
	Name   string `json:"name"`
	Effect string `json:"effect"`
	Active bool   `json:"active"`
}

// Character is the flat, self-consistent model derived from one raw
// creature payload. Array fields are always non-nil so consumers can
// iterate unconditionally.
type Character struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Race       string `json:"race,omitempty"`
	Class      string `json:"class,omitempty"`
	Level      int    `json:"level"`
	Background string `json:"background,omitempty"`
	Alignment  string `json:"alignment,omitempty"`

	Attributes    Abilities `json:"attributes"`
	AttributeMods Abilities `json:"attribute_mods"`
	// SavingThrows and Saves are synonymous views kept for consumers that
	// predate the rename.
	SavingThrows Abilities      `json:"saving_throws"`
	Saves        Abilities      `json:"saves"`
	Skills       map[string]int `json:"skills"`

	HitPoints        HPPool     `json:"hit_points"`
	TemporaryHP      int        `json:"temporary_hp"`
	HitDice          HitDice    `json:"hit_dice"`
	ArmorClass       int        `json:"armor_class"`
	Speed            int        `json:"speed"`
	Initiative       int        `json:"initiative"`
	ProficiencyBonus int        `json:"proficiency_bonus"`
	DeathSaves       DeathSaves `json:"death_saves"`

	SpellSlots SpellSlots  `json:"spell_slots"`
	Resources  []Resource  `json:"resources"`
	Features   []Feature   `json:"features"`
	Actions    []Action    `json:"actions"`
	Spells     []Spell     `json:"spells"`
	Inventory  []Item      `json:"inventory"`
	Companions []Companion `json:"companions"`
	Conditions []Condition `json:"conditions"`

	// Variables is the passthrough bag of source variables not mapped to
	// a known field, kept for forward compatibility.
	Variables map[string]any `json:"variables,omitempty"`
}

// New returns a Character with every collection initialized, so a
// best-effort extraction never hands consumers a nil slice or map.
func New() *Character {
	return &Character{
		Skills:     make(map[string]int),
		Resources:  []Resource{},
		Features:   []Feature{},
		Actions:    []Action{},
		Spells:     []Spell{},
		Inventory:  []Item{},
		Companions: []Companion{},
		Conditions: []Condition{},
		Variables:  make(map[string]any),
	}
}
