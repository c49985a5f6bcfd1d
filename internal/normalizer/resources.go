package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

// Variable names under which different payload vintages track pact magic.
var pactSlotVariables = []string{
	"pactMagicSlots",
	"pactSlots",
	"pactMagic",
	"warlockSlots",
	"pactSlot",
}

var pactSlotLevelVariables = []string{
	"pactMagicSlotLevel",
	"pactSlotLevel",
	"warlockSlotLevel",
	"pactLevel",
}

const maxPactSlotLevel = 5

// Attribute names that look like resources but track UI utility state.
var excludedResourceNameRe = regexp.MustCompile(`(?i)slot level to create`)

var (
	hitPointResourceRe = regexp.MustCompile(`(?i)^(hit ?points?|hp)$`)
	tempHPResourceRe   = regexp.MustCompile(`(?i)^temp(orary)? ?(hit ?points?|hp)$`)
)

// extractSpellSlots reads the nine numbered pools and the independently
// recharging pact pool. The two never share storage: pact slots come back
// on a short rest, numbered slots on a long rest.
func (p *pass) extractSpellSlots() {
	for level := 1; level <= 9; level++ {
		cell, ok := p.variable(fmt.Sprintf("slotLevel%d", level))
		if !ok {
			continue
		}
		pool := &p.out.SpellSlots.Levels[level-1]
		if v, ok := cell.Current(); ok {
			pool.Current = int(v)
		}
		if v, ok := cell.Number(); ok {
			pool.Max = int(v)
		}
	}

	cell, ok := p.variable(pactSlotVariables...)
	if !ok {
		return
	}
	pact := &p.out.SpellSlots.Pact
	if v, ok := cell.Current(); ok {
		pact.Current = int(v)
	}
	if v, ok := cell.Number(); ok {
		pact.Max = int(v)
	}
	pact.Level = p.resolvePactSlotLevel(cell)
}

// resolvePactSlotLevel tries, in order: a level field on the pact variable
// itself, the dedicated slot-level variables, and finally the warlock
// half-level computation capped at fifth.
func (p *pass) resolvePactSlotLevel(pactCell sheet.Cell) int {
	for _, field := range []string{"level", "slotLevel"} {
		if inner, ok := pactCell.Field(field); ok {
			if v, ok := inner.Number(); ok && v > 0 {
				return int(v)
			}
		}
	}
	if cell, ok := p.variable(pactSlotLevelVariables...); ok {
		if v, ok := cell.Number(); ok && v > 0 {
			return int(v)
		}
	}

	warlockLevel := p.out.Level
	if cell, ok := p.variable("warlockLevel"); ok {
		if v, ok := cell.Number(); ok && v > 0 {
			warlockLevel = int(v)
		}
	}
	level := (warlockLevel + 1) / 2
	if level > maxPactSlotLevel {
		level = maxPactSlotLevel
	}
	if level < 1 {
		level = 1
	}
	return level
}

// extractResources collects generic class resources from attribute-typed
// properties and then maps HP-shaped resources back onto the canonical
// hit-point fields, since some payloads model HP only as a resource.
func (p *pass) extractResources() {
	seen := make(map[string]bool)

	for _, node := range p.idx.All() {
		if node.Type != sheet.TypeAttribute || !p.effectivelyActive(node) {
			continue
		}
		kind := strings.ToLower(node.AttributeType)
		if kind != "resource" && kind != "healthbar" {
			continue
		}
		if excludedResourceNameRe.MatchString(node.Name) {
			continue
		}

		current, max := resourcePool(node)
		if max <= 0 {
			// A pool with no capacity is a utility variable, not a resource.
			continue
		}

		key := strings.ToLower(node.VariableName)
		if key == "" {
			key = strings.ToLower(node.Name)
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if node.VariableName != "" {
			p.usedVars[node.VariableName] = true
		}

		p.out.Resources = append(p.out.Resources, character.Resource{
			Name:         node.Name,
			VariableName: node.VariableName,
			Current:      current,
			Max:          max,
		})
	}

	p.applyHPResources()
}

// resourcePool resolves a resource's current and max readings. When the
// payload tracks the pool as damage taken against a base value, remaining
// is derived from those instead of the direct reading.
func resourcePool(node *sheet.PropertyNode) (current, max int) {
	if v, ok := node.Amount.ValueFirst(); ok {
		current = int(v)
	}
	if v, ok := node.Amount.Number(); ok {
		max = int(v)
	}
	if max == 0 {
		if v, ok := node.BaseValue.Number(); ok {
			max = int(v)
		}
	}

	baseValue, haveBase := node.BaseValue.Number()
	damageTaken, haveDamage := node.Damage.Number()
	if haveBase && baseValue > 0 && haveDamage {
		max = int(baseValue)
		current = int(baseValue) - int(damageTaken)
		if current < 0 {
			current = 0
		}
	}
	return current, max
}

func (p *pass) applyHPResources() {
	for _, res := range p.out.Resources {
		name := res.VariableName
		if name == "" {
			name = res.Name
		}
		switch {
		case hitPointResourceRe.MatchString(name) || hitPointResourceRe.MatchString(res.Name):
			p.out.HitPoints.Current = res.Current
			p.out.HitPoints.Max = res.Max
		case tempHPResourceRe.MatchString(name) || tempHPResourceRe.MatchString(res.Name):
			p.out.TemporaryHP = res.Current
		}
	}
}
