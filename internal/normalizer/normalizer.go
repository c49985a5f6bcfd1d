// Package normalizer derives a flat, self-consistent character model from
// the sheet service's raw creature payload. One call is one pure pass over
// the inputs: nothing is retained between calls and the inputs are never
// mutated, so concurrent extractions for different characters are safe.
//
// The pipeline degrades instead of failing: a malformed property falls
// through the relevant fallback cascade to a documented default, and the
// only error surfaced is an entirely empty payload.
package normalizer

import (
	"log/slog"

	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
	"github.com/vttbridge/sheet-api/internal/errors"
)

// Input bundles the three raw inputs of one extraction call.
type Input struct {
	Creature   *sheet.Creature
	Variables  sheet.VariableMap
	Properties []sheet.PropertyNode
}

// Normalize runs the full pipeline. The property index is built first;
// class and level resolve before any pass that level-gates content; the
// resource pass runs last so HP-shaped resources can overwrite the
// canonical hit-point fields.
func Normalize(in *Input) (*character.Character, error) {
	if in == nil || (in.Creature == nil && len(in.Properties) == 0) {
		return nil, errors.InvalidArgument("no creature data to normalize")
	}

	p := &pass{
		creature: in.Creature,
		vars:     in.Variables,
		idx:      NewIndex(in.Properties),
		out:      character.New(),
		usedVars: make(map[string]bool),
	}
	if p.creature == nil {
		p.creature = &sheet.Creature{}
	}
	if p.vars == nil {
		p.vars = sheet.VariableMap{}
	}

	p.extractIdentity()
	p.extractClassAndRace()
	p.extractStats()
	p.extractFeaturesAndActions()
	p.extractSpells()
	p.extractInventory()
	p.extractSpellSlots()
	p.extractResources()
	p.extractCompanions()
	p.collectPassthrough()

	return p.out, nil
}

// pass carries the state of one extraction call. All fields are local to
// the call; nothing escapes except the finished character.
type pass struct {
	creature *sheet.Creature
	vars     sheet.VariableMap
	idx      *Index
	out      *character.Character
	usedVars map[string]bool
}

// variable reads the first present variable among names and records every
// candidate as consumed so it stays out of the passthrough bag.
func (p *pass) variable(names ...string) (sheet.Cell, bool) {
	for _, name := range names {
		p.usedVars[name] = true
	}
	return p.vars.Lookup(names...)
}

func (p *pass) extractIdentity() {
	p.out.ID = p.creature.ID
	p.out.Name = p.creature.Name
	p.out.Alignment = p.creature.Alignment
	p.out.DeathSaves = character.DeathSaves{
		Successes: p.creature.DeathSave.Success,
		Failures:  p.creature.DeathSave.Fail,
	}
}

// collectPassthrough copies every variable no pass consumed into the
// forward-compatibility bag.
func (p *pass) collectPassthrough() {
	for name, cell := range p.vars {
		if p.usedVars[name] {
			continue
		}
		p.out.Variables[name] = cell.Raw()
	}
}

// logOverride records a source value overriding a computed one. The sink
// is slog; nothing is raised.
func logOverride(field string, computed, supplied int) {
	slog.Debug("source value overrides computed value",
		"field", field, "computed", computed, "supplied", supplied)
}
