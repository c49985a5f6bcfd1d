package normalizer

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

// shortAbility maps full ability names to the three-letter variable
// aliases some payloads use instead.
var shortAbility = map[string]string{
	character.AbilityStrength:     "str",
	character.AbilityDexterity:    "dex",
	character.AbilityConstitution: "con",
	character.AbilityIntelligence: "int",
	character.AbilityWisdom:       "wis",
	character.AbilityCharisma:     "cha",
}

// skillVariables lists the sheet variable name for each skill bonus.
var skillVariables = []string{
	"acrobatics", "animalHandling", "arcana", "athletics", "deception",
	"history", "insight", "intimidation", "investigation", "medicine",
	"nature", "perception", "performance", "persuasion", "religion",
	"sleightOfHand", "stealth", "survival",
}

// hitDieByClass maps a lowercase class-name substring to its hit die.
// Checked in order so multi-word names resolve before their substrings.
var hitDieByClass = []struct {
	class string
	die   string
}{
	{"barbarian", "d12"},
	{"fighter", "d10"},
	{"paladin", "d10"},
	{"ranger", "d10"},
	{"bard", "d8"},
	{"cleric", "d8"},
	{"druid", "d8"},
	{"monk", "d8"},
	{"rogue", "d8"},
	{"warlock", "d8"},
	{"sorcerer", "d6"},
	{"wizard", "d6"},
}

const defaultHitDie = "d8"

// AbilityModifier computes the standard derived modifier for a score.
func AbilityModifier(score int) int {
	// floor((score-10)/2); Go integer division truncates toward zero, so
	// odd scores below 10 need the extra step down.
	d := score - 10
	if d < 0 {
		d--
	}
	return d / 2
}

func (p *pass) extractStats() {
	p.extractAbilities()
	p.extractSkills()
	p.extractCombatBlock()
	p.out.ArmorClass = p.resolveArmorClass()
}

func (p *pass) extractAbilities() {
	for _, name := range character.AbilityNames {
		score := 10
		if cell, ok := p.variable(name, shortAbility[name]); ok {
			if v, ok := cell.Number(); ok {
				score = int(v)
			}
		}
		p.out.Attributes.Set(name, score)

		mod := AbilityModifier(score)
		if cell, ok := p.variable(name+"Mod", name+"Modifier", shortAbility[name]+"Mod"); ok {
			if v, ok := cell.Number(); ok && int(v) != 0 && int(v) != mod {
				// The source supplies a conflicting nonzero modifier, which
				// models house rules that don't reduce to the formula.
				logOverride(name+" modifier", mod, int(v))
				mod = int(v)
			}
		}
		p.out.AttributeMods.Set(name, mod)

		save := mod
		if cell, ok := p.variable(name+"Save", name+"SavingThrow", shortAbility[name]+"Save"); ok {
			if v, ok := cell.Number(); ok {
				save = int(v)
			}
		}
		p.out.SavingThrows.Set(name, save)
	}
	// Saves mirrors SavingThrows for consumers on the old field name.
	p.out.Saves = p.out.SavingThrows
}

func (p *pass) extractSkills() {
	for _, name := range skillVariables {
		if cell, ok := p.variable(name); ok {
			if v, ok := cell.Number(); ok {
				p.out.Skills[name] = int(v)
			}
		}
	}
}

func (p *pass) extractCombatBlock() {
	if cell, ok := p.variable("hitPoints", "hp"); ok {
		if v, ok := cell.Current(); ok {
			p.out.HitPoints.Current = int(v)
		}
		if v, ok := cell.Number(); ok {
			p.out.HitPoints.Max = int(v)
		}
	}
	if cell, ok := p.variable("temporaryHitPoints", "tempHitPoints", "tempHP"); ok {
		if v, ok := cell.Current(); ok {
			p.out.TemporaryHP = int(v)
		}
	}

	if cell, ok := p.variable("speed"); ok {
		if v, ok := cell.Number(); ok {
			p.out.Speed = int(v)
		}
	}

	p.out.Initiative = p.out.AttributeMods.Dexterity
	if cell, ok := p.variable("initiative"); ok {
		if v, ok := cell.Number(); ok {
			p.out.Initiative = int(v)
		}
	}

	p.out.ProficiencyBonus = proficiencyForLevel(p.out.Level)
	if cell, ok := p.variable("proficiencyBonus"); ok {
		if v, ok := cell.Number(); ok && int(v) != 0 {
			p.out.ProficiencyBonus = int(v)
		}
	}

	p.extractHitDice()
}

func proficiencyForLevel(level int) int {
	if level < 1 {
		return 2
	}
	return 2 + (level-1)/4
}

func (p *pass) extractHitDice() {
	if cell, ok := p.variable("hitDice", "hitDie"); ok {
		if v, ok := cell.Current(); ok {
			p.out.HitDice.Current = int(v)
		}
		if v, ok := cell.Number(); ok {
			p.out.HitDice.Max = int(v)
		}
	}

	p.out.HitDice.Type = defaultHitDie
	primary := p.out.Class
	if i := strings.Index(primary, "/"); i >= 0 {
		primary = primary[:i]
	}
	primary = strings.ToLower(strings.TrimSpace(primary))
	for _, entry := range hitDieByClass {
		if strings.Contains(primary, entry.class) {
			p.out.HitDice.Type = entry.die
			break
		}
	}
}

// Armor class resolution.
//
// A strict fallback cascade: each strategy either resolves a value or
// passes to the next. The order is load-bearing; precomputed sources
// always beat manual accumulation.

type acStrategy struct {
	name    string
	resolve func(p *pass) (int, bool)
}

var acStrategies = []acStrategy{
	{"denormalized stats", acFromDenormalizedStats},
	{"creature field", acFromCreatureField},
	{"named variable", acFromVariable},
	{"armor class property", acFromProperty},
	{"deep stat scan", acFromDeepScan},
	{"effect accumulation", acFromEffects},
}

const defaultArmorClass = 10

func (p *pass) resolveArmorClass() int {
	for _, s := range acStrategies {
		if ac, ok := s.resolve(p); ok {
			slog.Debug("armor class resolved", "strategy", s.name, "ac", ac)
			return ac
		}
	}
	return defaultArmorClass
}

func acFromDenormalizedStats(p *pass) (int, bool) {
	for _, key := range []string{"armorClass", "armor_class", "ac"} {
		if v, ok := p.creature.DenormalizedStats[key]; ok {
			if f, ok := sheet.CellFrom(v).Number(); ok {
				return int(f), true
			}
		}
	}
	return 0, false
}

func acFromCreatureField(p *pass) (int, bool) {
	if f, ok := p.creature.ArmorClass.Number(); ok {
		return int(f), true
	}
	return 0, false
}

func acFromVariable(p *pass) (int, bool) {
	cell, ok := p.variable("armor", "armorClass", "armor_class", "ac", "acTotal", "ac_total")
	if !ok {
		return 0, false
	}
	if f, ok := cell.Number(); ok {
		return int(f), true
	}
	return 0, false
}

func acFromProperty(p *pass) (int, bool) {
	for _, node := range p.idx.All() {
		if !strings.EqualFold(node.Name, "Armor Class") {
			continue
		}
		for _, cell := range []sheet.Cell{node.Amount, node.Value, node.BaseValue} {
			if f, ok := cell.Number(); ok {
				return int(f), true
			}
		}
	}
	return 0, false
}

var (
	acKeyRe         = regexp.MustCompile(`(?i)armor|ac`)
	acExcludedKeyRe = regexp.MustCompile(`(?i)xp|level|hp|hit|speed|spell|prof|dice`)
)

// acFromDeepScan walks the denormalized stat block recursively, preferring
// numeric leaves under keys that look armor-related, then falling back to
// any numeric leaf whose key is not obviously something else.
func acFromDeepScan(p *pass) (int, bool) {
	var preferred, fallback []int
	scanNumericLeaves(p.creature.DenormalizedStats, "", 0, func(key string, v float64) {
		switch {
		case acKeyRe.MatchString(key):
			preferred = append(preferred, int(v))
		case !acExcludedKeyRe.MatchString(key):
			fallback = append(fallback, int(v))
		}
	})
	if len(preferred) > 0 {
		return preferred[0], true
	}
	if len(fallback) > 0 {
		return fallback[0], true
	}
	return 0, false
}

// scanNumericLeaves visits numeric leaves of a nested map in sorted key
// order so resolution stays deterministic.
func scanNumericLeaves(m map[string]any, prefix string, depth int, visit func(key string, v float64)) {
	if m == nil || depth > coercionScanDepth {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch v := m[k].(type) {
		case float64:
			visit(full, v)
		case map[string]any:
			scanNumericLeaves(v, full, depth+1, visit)
		}
	}
}

const coercionScanDepth = 5

// Spell-granted AC effects are temporary and tracked by the UI layer, so
// manual accumulation must not bake them into the base armor class.
var temporaryACEffectNames = []string{
	"shield",
	"mage armor",
	"shield of faith",
	"barkskin",
	"haste",
}

func acFromEffects(p *pass) (int, bool) {
	base := 0
	bonus := 0
	found := false
	for _, node := range p.idx.All() {
		if node.Type != sheet.TypeEffect || !node.Active() {
			continue
		}
		if !strings.EqualFold(node.Stat, "armor") && !strings.EqualFold(node.Stat, "armorClass") {
			continue
		}
		if isTemporaryACEffect(node.Name) {
			continue
		}
		amount, ok := node.Amount.Number()
		if !ok {
			continue
		}
		switch strings.ToLower(node.Operation) {
		case "base":
			if int(amount) > base {
				base = int(amount)
			}
			found = true
		case "add":
			bonus += int(amount)
			found = true
		}
	}
	if !found {
		return 0, false
	}
	if base == 0 {
		base = defaultArmorClass
	}
	return base + bonus, true
}

func isTemporaryACEffect(name string) bool {
	lower := strings.ToLower(name)
	for _, n := range temporaryACEffectNames {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
