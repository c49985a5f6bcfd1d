package normalizer

import (
	"regexp"
	"strings"

	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

const unknownSpellSource = "Unknown Source"

// Spells that must never carry an attack roll: their descriptions mention
// attack rolls ("when you are hit by an attack...") and false-positive the
// attack-language heuristic.
var defensiveSpellNames = []string{
	"Shield",
	"Absorb Elements",
	"Counterspell",
}

// Spells known to heal the caster for damage dealt.
var knownLifestealSpells = []string{
	"vampiric touch",
	"enervation",
	"life drain",
}

// Free-text phrasings of the lifesteal mechanic.
var lifestealPhraseRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)regains? (?:a number of )?hit points equal to (?:half )?(?:the |of )?(?:necrotic )?damage`),
	regexp.MustCompile(`(?i)regains? hit points equal to half the amount of .*damage`),
	regexp.MustCompile(`(?i)you regain hit points equal to`),
}

var lifestealHalfRe = regexp.MustCompile(`(?i)equal to half`)

// Default damage for common cantrips whose payloads omit the roll.
var cantripDamage = map[string]character.DamageRoll{
	"acid splash":      {Damage: "1d6", DamageType: "acid"},
	"chill touch":      {Damage: "1d8", DamageType: "necrotic"},
	"create bonfire":   {Damage: "1d8", DamageType: "fire"},
	"eldritch blast":   {Damage: "1d10", DamageType: "force"},
	"fire bolt":        {Damage: "1d10", DamageType: "fire"},
	"frostbite":        {Damage: "1d6", DamageType: "cold"},
	"infestation":      {Damage: "1d6", DamageType: "poison"},
	"lightning lure":   {Damage: "1d8", DamageType: "lightning"},
	"mind sliver":      {Damage: "1d6", DamageType: "psychic"},
	"poison spray":     {Damage: "1d12", DamageType: "poison"},
	"produce flame":    {Damage: "1d8", DamageType: "fire"},
	"ray of frost":     {Damage: "1d8", DamageType: "cold"},
	"sacred flame":     {Damage: "1d8", DamageType: "radiant"},
	"shocking grasp":   {Damage: "1d8", DamageType: "lightning"},
	"thorn whip":       {Damage: "1d6", DamageType: "piercing"},
	"thunderclap":      {Damage: "1d6", DamageType: "thunder"},
	"toll the dead":    {Damage: "1d8", DamageType: "necrotic"},
	"vicious mockery":  {Damage: "1d4", DamageType: "psychic"},
	"word of radiance": {Damage: "1d6", DamageType: "radiant"},
}

var (
	diceNotationRe    = regexp.MustCompile(`(?i)d\d+`)
	bareVariableRe    = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)
	halfOnSaveRe      = regexp.MustCompile(`(?i)/\s*2|half`)
	ordinalLevelRe    = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)[\s-]+level`)
	spellAttackCueRe  = regexp.MustCompile(`(?i)(?:melee|ranged) spell attack`)
	librarySpellTagRe = regexp.MustCompile(`(?i)(.+?)\s*spell$`)
)

func (p *pass) extractSpells() {
	for _, node := range p.idx.All() {
		if node.Type != sheet.TypeSpell || !p.effectivelyActive(node) {
			continue
		}
		lower := strings.ToLower(node.Name)
		if strings.Contains(lower, "divine smite") && node.Name != "Divine Smite" {
			continue
		}

		source := p.resolveSpellSource(node)
		if p.levelGated(source) {
			continue
		}

		spell := character.Spell{
			Name:          node.Name,
			School:        node.School,
			CastingTime:   node.CastingTime,
			Range:         node.Range,
			Components:    node.Components,
			Duration:      node.Duration,
			Summary:       StripTemplates(node.Summary.Text()),
			Description:   StripTemplates(node.Description.Text()),
			Source:        source,
			Concentration: node.Concentration,
			Ritual:        node.Ritual,
			DamageRolls:   []character.DamageRoll{},
		}
		if v, ok := node.Level.Number(); ok {
			spell.Level = int(v)
		}

		p.extractSpellRolls(node, &spell)
		applyDefensiveOverride(&spell)
		applyLifesteal(&spell)
		applyCantripFallback(&spell)

		p.out.Spells = append(p.out.Spells, spell)
	}
}

// levelGated reports whether a source string embeds an ordinal level
// requirement above the character's resolved level. An unresolved level
// never gates, per the degrade-not-drop policy.
func (p *pass) levelGated(source string) bool {
	if p.out.Level <= 0 || source == "" {
		return false
	}
	m := ordinalLevelRe.FindStringSubmatch(source)
	if m == nil {
		return false
	}
	required := 0
	for _, r := range m[1] {
		required = required*10 + int(r-'0')
	}
	return required > p.out.Level
}

// Spell source resolution: direct parent, then the ancestor chain nearest
// first, then library tags shaped like "<Class> Spell", then plain tags.

type spellSourceStrategy struct {
	name    string
	resolve func(p *pass, node *sheet.PropertyNode) string
}

var spellSourceStrategies = []spellSourceStrategy{
	{"parent", spellSourceFromParent},
	{"ancestors", spellSourceFromAncestors},
	{"library tags", spellSourceFromLibraryTags},
	{"tags", spellSourceFromTags},
}

func (p *pass) resolveSpellSource(node *sheet.PropertyNode) string {
	for _, s := range spellSourceStrategies {
		if src := s.resolve(p, node); src != "" {
			return src
		}
	}
	return unknownSpellSource
}

func spellSourceFromParent(p *pass, node *sheet.PropertyNode) string {
	return p.idx.NameOf(node.Parent.ID)
}

func spellSourceFromAncestors(p *pass, node *sheet.PropertyNode) string {
	ids := node.AncestorIDs()
	visited := make(map[string]bool, len(ids))
	// The service lists ancestors root-first; walk nearest-first.
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if id == node.ID || visited[id] {
			continue
		}
		visited[id] = true
		if name := p.idx.NameOf(id); name != "" {
			return name
		}
	}
	return ""
}

func spellSourceFromLibraryTags(_ *pass, node *sheet.PropertyNode) string {
	var classes []string
	for _, tag := range node.LibraryTags {
		if strings.EqualFold(tag, "spell") {
			continue
		}
		if m := librarySpellTagRe.FindStringSubmatch(tag); m != nil {
			classes = append(classes, titleCase(strings.TrimSpace(m[1])))
		}
	}
	return strings.Join(classes, " / ")
}

func spellSourceFromTags(_ *pass, node *sheet.PropertyNode) string {
	if len(node.Tags) == 0 {
		return ""
	}
	return strings.Join(node.Tags, ", ")
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractSpellRolls walks the spell's attack/damage/roll descendants via
// ancestor-chain containment, validates formulas, removes exact duplicate
// pairs, and folds same-formula different-type entries into OR choices.
func (p *pass) extractSpellRolls(node *sheet.PropertyNode, spell *character.Spell) {
	type pair struct{ formula, dtype string }
	seen := make(map[pair]bool)

	for _, desc := range p.idx.All() {
		if desc.ID == node.ID || !desc.Active() {
			continue
		}
		if !p.idx.HasAncestor(desc, node.ID) {
			continue
		}
		switch desc.Type {
		case sheet.TypeAttack:
			if spell.AttackRoll == "" {
				spell.AttackRoll = spellAttackFormula(desc)
			}
		case sheet.TypeDamage, sheet.TypeRoll:
			formula := damageNodeFormula(desc)
			if !rollableFormula(formula) {
				continue
			}
			key := pair{formula, desc.DamageType}
			if seen[key] {
				continue
			}
			seen[key] = true
			roll := character.DamageRoll{
				Damage:     formula,
				DamageType: desc.DamageType,
				Healing:    strings.EqualFold(desc.DamageType, "healing"),
			}
			if merged := mergeORChoice(spell.DamageRolls, roll); merged {
				continue
			}
			spell.DamageRolls = append(spell.DamageRolls, roll)
		}
	}

	// No attack child, but the text says to make a spell attack: the
	// caller substitutes the computed spell-attack bonus.
	if spell.AttackRoll == "" && spellAttackCueRe.MatchString(spell.Description) {
		spell.AttackRoll = character.UseSpellAttackBonus
	}
}

// mergeORChoice folds a roll sharing a formula with an existing non-healing
// roll into an OR damage-type choice. Returns true when folded.
func mergeORChoice(rolls []character.DamageRoll, roll character.DamageRoll) bool {
	if roll.Healing {
		return false
	}
	for i := range rolls {
		if rolls[i].Healing || rolls[i].Damage != roll.Damage {
			continue
		}
		if rolls[i].DamageType == roll.DamageType {
			return true
		}
		if roll.DamageType != "" {
			rolls[i].DamageType += " OR " + roll.DamageType
		}
		return true
	}
	return false
}

func spellAttackFormula(node *sheet.PropertyNode) string {
	if s := strings.TrimSpace(node.Roll.Text()); s != "" && diceNotationRe.MatchString(s) {
		return s
	}
	if v, ok := node.AttackRoll.Number(); ok {
		return d20Formula(int(v))
	}
	if v, ok := node.Amount.Number(); ok {
		return d20Formula(int(v))
	}
	return character.UseSpellAttackBonus
}

// rollableFormula accepts only formulas with real dice notation; a bare
// variable reference or an explicit half-damage-on-save expression is not
// independently rollable.
func rollableFormula(formula string) bool {
	if formula == "" || !diceNotationRe.MatchString(formula) {
		return false
	}
	if bareVariableRe.MatchString(formula) && !strings.ContainsAny(formula, "0123456789") {
		return false
	}
	if halfOnSaveRe.MatchString(formula) {
		return false
	}
	return true
}

// diceFormula returns the cell's text when it contains dice notation.
func diceFormula(cell sheet.Cell) string {
	s := strings.TrimSpace(cell.Text())
	if diceNotationRe.MatchString(s) {
		return s
	}
	return ""
}

func applyDefensiveOverride(spell *character.Spell) {
	for _, name := range defensiveSpellNames {
		if spell.Name == name || strings.HasPrefix(spell.Name, name+" ") {
			spell.AttackRoll = ""
			return
		}
	}
}

// applyLifesteal flags lifesteal spells and synthesizes the healing roll
// when the payload carries only the damage side.
func applyLifesteal(spell *character.Spell) {
	lower := strings.ToLower(spell.Name)
	known := false
	for _, n := range knownLifestealSpells {
		if strings.Contains(lower, n) {
			known = true
			break
		}
	}

	var damage, healing *character.DamageRoll
	for i := range spell.DamageRolls {
		if spell.DamageRolls[i].Healing {
			if healing == nil {
				healing = &spell.DamageRolls[i]
			}
		} else if damage == nil {
			damage = &spell.DamageRolls[i]
		}
	}

	phrased := false
	for _, re := range lifestealPhraseRes {
		if re.MatchString(spell.Description) {
			phrased = true
			break
		}
	}

	if !known && !(damage != nil && phrased) {
		return
	}
	if damage == nil {
		return
	}

	spell.IsLifesteal = true
	if healing == nil {
		formula := damage.Damage
		if lifestealHalfRe.MatchString(spell.Description) {
			formula += "/2"
		}
		spell.DamageRolls = append(spell.DamageRolls, character.DamageRoll{
			Damage:     formula,
			DamageType: "healing",
			Healing:    true,
		})
	}
}

func applyCantripFallback(spell *character.Spell) {
	if len(spell.DamageRolls) > 0 {
		return
	}
	roll, ok := cantripDamage[strings.ToLower(strings.TrimSpace(spell.Name))]
	if !ok {
		return
	}
	spell.DamageRolls = append(spell.DamageRolls, roll)
}
