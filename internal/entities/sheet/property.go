// Package sheet models the raw creature payload supplied by the character
// sheet service. These types are read-only inputs to the normalizer; nothing
// in this package mutates them after decoding.
package sheet

import (
	"encoding/json"
	"strings"
)

// Property type vocabulary used by the sheet service.
const (
	TypeClass      = "class"
	TypeClassLevel = "classLevel"
	TypeRace       = "race"
	TypeSpecies    = "species"
	TypeFeature    = "feature"
	TypeToggle     = "toggle"
	TypeSpell      = "spell"
	TypeItem       = "item"
	TypeAction     = "action"
	TypeAttribute  = "attribute"
	TypeFolder     = "folder"
	TypeDamage     = "damage"
	TypeRoll       = "roll"
	TypeAttack     = "attack"
	TypeEffect     = "effect"
	TypeBackground = "background"
)

// Ref is a parent or ancestor reference. The service emits both bare id
// strings and {id: ...} objects, sometimes mixed within one ancestor list.
// Unrecognized shapes decode to an empty ID rather than failing the payload.
type Ref struct {
	ID string
}

// UnmarshalJSON accepts a bare string, an object with an "id" or "_id"
// member, or anything else (ignored).
func (r *Ref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.ID = s
		return nil
	}
	var obj struct {
		ID    string `json:"id"`
		AltID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		if obj.ID != "" {
			r.ID = obj.ID
		} else {
			r.ID = obj.AltID
		}
		return nil
	}
	r.ID = ""
	return nil
}

// MarshalJSON writes the normalized bare-id form.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// PropertyNode is one node of the sheet service's generic property tree. A
// node can represent a class, feature, spell, item, toggle, effect, damage
// formula, or action; which fields are populated depends on Type.
type PropertyNode struct {
	ID        string `json:"_id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Parent    Ref    `json:"parent"`
	Ancestors []Ref  `json:"ancestors"`
	Inactive  bool   `json:"inactive"`
	Disabled  bool   `json:"disabled"`
	Removed   bool   `json:"removed"`

	Summary     Cell     `json:"summary"`
	Description Cell     `json:"description"`
	Tags        []string `json:"tags"`
	LibraryTags []string `json:"libraryTags"`

	// Numeric / formula fields.
	Amount     Cell `json:"amount"`
	Roll       Cell `json:"roll"`
	AttackRoll Cell `json:"attackRoll"`
	Damage     Cell `json:"damage"`
	Uses       Cell `json:"uses"`
	Level      Cell `json:"level"`
	BaseValue  Cell `json:"baseValue"`

	// Attribute / effect fields.
	VariableName  string `json:"variableName"`
	AttributeType string `json:"attributeType"`
	Operation     string `json:"operation"`
	Stat          string `json:"stat"`

	// Action / damage fields.
	ActionType string `json:"actionType"`
	DamageType string `json:"damageType"`

	// Spell fields.
	School        string `json:"school"`
	CastingTime   string `json:"castingTime"`
	Range         string `json:"range"`
	Components    string `json:"components"`
	Duration      string `json:"duration"`
	Concentration bool   `json:"concentration"`
	Ritual        bool   `json:"ritual"`

	// Item fields.
	Quantity Cell `json:"quantity"`
	Weight   Cell `json:"weight"`
	Value    Cell `json:"value"`
	Equipped bool `json:"equipped"`
	Attuned  bool `json:"attuned"`
}

// Active reports whether the node participates in extraction. Inactive,
// disabled, and removed nodes are deliberate exclusions, not errors.
func (p *PropertyNode) Active() bool {
	return !p.Inactive && !p.Disabled && !p.Removed
}

// AncestorIDs returns the resolvable ids of the ancestor chain, nearest
// last per the service's ordering. Malformed entries are skipped.
func (p *PropertyNode) AncestorIDs() []string {
	if len(p.Ancestors) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.Ancestors))
	for _, ref := range p.Ancestors {
		if ref.ID != "" {
			out = append(out, ref.ID)
		}
	}
	return out
}

// HasTag reports whether the plain tag list contains tag (case-insensitive).
func (p *PropertyNode) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
