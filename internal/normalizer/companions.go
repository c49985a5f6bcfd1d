package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

// Feature names that carry a companion stat block in their description.
var companionNameRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)companion`),
	regexp.MustCompile(`(?i)beast of`),
	regexp.MustCompile(`(?i)familiar`),
	regexp.MustCompile(`(?i)summon`),
	regexp.MustCompile(`(?i)mount`),
	regexp.MustCompile(`(?i)steel defender`),
	regexp.MustCompile(`(?i)homunculus`),
	regexp.MustCompile(`(?i)drake`),
	regexp.MustCompile(`(?i)primal companion`),
	regexp.MustCompile(`(?i)beast master`),
	regexp.MustCompile(`(?i)ranger's companion`),
}

var (
	companionHeaderRe = regexp.MustCompile(
		`(?m)^(Tiny|Small|Medium|Large|Huge|Gargantuan)\s+(\w+),\s*(\w+(?:\s\w+)?)`)

	companionACRes = []*regexp.Regexp{
		regexp.MustCompile(`\*\*Armor Class\*\*:?\s*(\d+)`),
		regexp.MustCompile(`(?m)^Armor Class:?\s*(\d+)`),
		regexp.MustCompile(`\bAC\b:?\s*(\d+)`),
	}

	companionHPRes = []*regexp.Regexp{
		regexp.MustCompile(`\*\*Hit Points\*\*:?\s*(\d+(?:\s*\([^)]+\))?)`),
		regexp.MustCompile(`(?m)^Hit Points:?\s*(\d+(?:\s*\([^)]+\))?)`),
		regexp.MustCompile(`\bHP\b:?\s*(\d+(?:\s*\([^)]+\))?)`),
	}

	companionSpeedRe     = regexp.MustCompile(`(?m)^\*{0,2}Speed\*{0,2}:?\s*(.+?)\s*$`)
	companionSensesRe    = regexp.MustCompile(`(?m)^\*{0,2}Senses\*{0,2}:?\s*(.+?)\s*$`)
	companionLanguagesRe = regexp.MustCompile(`(?m)^\*{0,2}Languages\*{0,2}:?\s*(.+?)\s*$`)
	companionPBRe        = regexp.MustCompile(`Proficiency Bonus\*{0,2}:?\s*\+?(\d+)`)

	abilityCellRe    = regexp.MustCompile(`(\d+)\s*\(([+-]?\d+)\)`)
	companionTraitRe = regexp.MustCompile(`\*\*\*([^*]+?)\.\*\*\*\s*([^\n]+)`)

	// Melee attack line, with two fallbacks that progressively relax the
	// damage clause when the primary fails to match.
	meleeAttackRes = []*regexp.Regexp{
		regexp.MustCompile(`\*\*\*([^*]+?)\.\*\*\*\s*Melee Weapon Attack:\s*\+?(\d+)\s*to hit,\s*reach\s*([^,.]+).*?\.\s*Hit:\s*([^\n]+?)\.?\s*(?:$|\n)`),
		regexp.MustCompile(`\*\*\*([^*]+?)\.\*\*\*\s*Melee Weapon Attack:\s*\+?(\d+)\s*to hit,\s*reach\s*([^,.]+).*?\.\s*Hit:\s*([^\n]+)`),
		regexp.MustCompile(`\*\*\*([^*]+?)\.\*\*\*\s*Melee Weapon Attack:\s*\+?(\d+)\s*to hit[^\n]*`),
	}

	meleeAttackCue = "Melee Weapon Attack"
)

func (p *pass) extractCompanions() {
	for _, node := range p.idx.All() {
		if node.Type != sheet.TypeFeature || !p.effectivelyActive(node) {
			continue
		}
		if !looksLikeCompanion(node.Name) {
			continue
		}
		desc := node.Description.Text()
		if strings.TrimSpace(desc) == "" {
			// Nothing to parse; no companion emitted.
			continue
		}
		if companion, ok := parseCompanionStatBlock(node.Name, desc); ok {
			p.out.Companions = append(p.out.Companions, companion)
		}
	}
}

func looksLikeCompanion(name string) bool {
	for _, re := range companionNameRes {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// parseCompanionStatBlock recovers a stat block from free text. Every
// field is an independent best-effort step; the result is kept only when
// at least one of AC, HP, or the ability row parsed.
func parseCompanionStatBlock(name, text string) (character.Companion, bool) {
	companion := character.Companion{
		Name:     name,
		Features: []character.CompanionFeature{},
		Actions:  []character.CompanionAction{},
	}

	if m := companionHeaderRe.FindStringSubmatch(text); m != nil {
		companion.Size = m[1]
		companion.Type = m[2]
		companion.Alignment = m[3]
	}
	for _, re := range companionACRes {
		if m := re.FindStringSubmatch(text); m != nil {
			companion.AC, _ = strconv.Atoi(m[1])
			break
		}
	}
	for _, re := range companionHPRes {
		if m := re.FindStringSubmatch(text); m != nil {
			companion.HP = strings.TrimSpace(m[1])
			break
		}
	}
	if m := companionSpeedRe.FindStringSubmatch(text); m != nil {
		companion.Speed = m[1]
	}
	if m := companionSensesRe.FindStringSubmatch(text); m != nil {
		companion.Senses = m[1]
	}
	if m := companionLanguagesRe.FindStringSubmatch(text); m != nil {
		companion.Languages = m[1]
	}
	if m := companionPBRe.FindStringSubmatch(text); m != nil {
		companion.ProficiencyBonus, _ = strconv.Atoi(m[1])
	}

	companion.Abilities, companion.ParsedAbilities = parseAbilityRow(text)
	parseTraitsAndAttacks(text, &companion)

	if companion.AC == 0 && companion.HP == "" && !companion.ParsedAbilities {
		return character.Companion{}, false
	}
	return companion, true
}

// parseAbilityRow locates the markdown-table row carrying six "score (mod)"
// cells and parses them in STR/DEX/CON/INT/WIS/CHA order.
func parseAbilityRow(text string) (character.CompanionAbilities, bool) {
	var abilities character.CompanionAbilities
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		if len(abilityCellRe.FindAllString(line, -1)) < 6 {
			continue
		}

		var cells []string
		for _, cell := range strings.Split(line, "|") {
			if strings.TrimSpace(cell) != "" {
				cells = append(cells, strings.TrimSpace(cell))
			}
		}
		if len(cells) < 6 {
			continue
		}
		cells = cells[len(cells)-6:]

		parsed := make([]character.CompanionAbility, 0, 6)
		for _, cell := range cells {
			m := abilityCellRe.FindStringSubmatch(cell)
			if m == nil {
				break
			}
			score, _ := strconv.Atoi(m[1])
			mod, _ := strconv.Atoi(m[2])
			parsed = append(parsed, character.CompanionAbility{Score: score, Modifier: mod})
		}
		if len(parsed) != 6 {
			continue
		}
		abilities.Str = parsed[0]
		abilities.Dex = parsed[1]
		abilities.Con = parsed[2]
		abilities.Int = parsed[3]
		abilities.Wis = parsed[4]
		abilities.Cha = parsed[5]
		return abilities, true
	}
	return abilities, false
}

func parseTraitsAndAttacks(text string, companion *character.Companion) {
	for _, m := range companionTraitRe.FindAllStringSubmatch(text, -1) {
		if strings.Contains(m[2], meleeAttackCue) {
			continue
		}
		companion.Features = append(companion.Features, character.CompanionFeature{
			Name:        strings.TrimSpace(m[1]),
			Description: strings.TrimSpace(m[2]),
		})
	}

	seen := make(map[string]bool)
	for _, re := range meleeAttackRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if seen[name] {
				continue
			}
			seen[name] = true
			action := character.CompanionAction{Name: name}
			if len(m) > 2 {
				action.AttackBonus, _ = strconv.Atoi(m[2])
			}
			if len(m) > 3 {
				action.Reach = strings.TrimSpace(m[3])
			}
			if len(m) > 4 {
				action.Hit = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[4]), "."))
			}
			companion.Actions = append(companion.Actions, action)
		}
	}
}
