package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

// Metamagic only applies contextually during spellcasting, so these
// features never become standalone actions.
var metamagicFeatureNames = map[string]bool{
	"careful spell":    true,
	"distant spell":    true,
	"empowered spell":  true,
	"extended spell":   true,
	"heightened spell": true,
	"quickened spell":  true,
	"seeking spell":    true,
	"subtle spell":     true,
	"transmuted spell": true,
	"twinned spell":    true,
}

// Condition-style toggles that downstream roll computation cares about.
var conditionToggleNames = []string{
	"guidance",
	"bless",
	"bane",
	"bardic inspiration",
	"inspiration",
	"advantage",
	"disadvantage",
	"resistance",
	"vulnerability",
}

const defaultConditionEffect = "1d4"

var actionSuffixRe = regexp.MustCompile(
	`(?i)\s*\((free action|free|bonus action|bonus|reaction|action|no spell slot|at will)\)\s*$`)

func (p *pass) extractFeaturesAndActions() {
	var actions []character.Action

	for _, node := range p.idx.All() {
		switch node.Type {
		case sheet.TypeFeature:
			if !p.effectivelyActive(node) {
				continue
			}
			if p.levelGated(p.idx.NameOf(node.Parent.ID)) {
				continue
			}
			feature := p.buildFeature(node)
			p.out.Features = append(p.out.Features, feature)
			if action, ok := featureAction(feature); ok {
				actions = append(actions, action)
			}
		case sheet.TypeToggle:
			p.extractToggle(node, &actions)
		case sheet.TypeAction:
			if !p.effectivelyActive(node) {
				continue
			}
			actions = append(actions, p.buildAction(node))
		}
	}

	p.out.Actions = dedupActions(actions)
}

// effectivelyActive reports whether the node and every toggle above it are
// switched on. The ancestor list is flat, so the walk is bounded even when
// a payload carries cyclic references.
func (p *pass) effectivelyActive(node *sheet.PropertyNode) bool {
	if !node.Active() {
		return false
	}
	for _, aid := range node.AncestorIDs() {
		if aid == node.ID {
			continue
		}
		if anc := p.idx.ByID(aid); anc != nil && anc.Type == sheet.TypeToggle && !anc.Active() {
			return false
		}
	}
	return true
}

func (p *pass) buildFeature(node *sheet.PropertyNode) character.Feature {
	return character.Feature{
		Name:        node.Name,
		Summary:     StripTemplates(node.Summary.Text()),
		Description: StripTemplates(node.Description.Text()),
		Uses:        usesString(node.Uses),
		Roll:        formulaText(node.Roll),
		Damage:      formulaText(node.Damage),
	}
}

// featureAction mirrors a rollable feature into the actions list, unless
// it is metamagic.
func featureAction(f character.Feature) (character.Action, bool) {
	if f.Roll == "" && f.Damage == "" {
		return character.Action{}, false
	}
	if metamagicFeatureNames[strings.ToLower(strings.TrimSpace(f.Name))] {
		return character.Action{}, false
	}
	damage := f.Damage
	if damage == "" {
		damage = f.Roll
	}
	return character.Action{
		Name:       f.Name,
		ActionType: "feature",
		Damage:     damage,
		Summary:    f.Summary,
		Uses:       f.Uses,
	}, true
}

// extractToggle walks a toggle's direct children. Enabled condition
// toggles are additionally recorded for downstream roll computation.
func (p *pass) extractToggle(toggle *sheet.PropertyNode, actions *[]character.Action) {
	enabled := toggle.Active()

	if enabled && isConditionToggle(toggle.Name) {
		p.out.Conditions = append(p.out.Conditions, character.Condition{
			Name:   toggle.Name,
			Effect: p.toggleEffectFormula(toggle),
			Active: true,
		})
	}

	if !enabled {
		return
	}

	for _, child := range p.idx.ChildrenOf(toggle.ID) {
		if !child.Active() {
			continue
		}
		switch child.Type {
		case sheet.TypeDamage:
			if formula := formulaText(child.Amount); formula != "" {
				*actions = append(*actions, character.Action{
					Name:       actionChildName(child, toggle),
					ActionType: "toggle",
					Damage:     formula,
					DamageType: child.DamageType,
				})
			}
		case sheet.TypeEffect:
			// Effects only become actions when they carry real damage;
			// stat adjustments stay out of the action list.
			if formula := formulaText(child.Damage); formula != "" {
				*actions = append(*actions, character.Action{
					Name:       actionChildName(child, toggle),
					ActionType: "toggle",
					Damage:     formula,
					DamageType: child.DamageType,
				})
			}
		}
	}
}

func actionChildName(child, toggle *sheet.PropertyNode) string {
	if child.Name != "" {
		return child.Name
	}
	return toggle.Name
}

func isConditionToggle(name string) bool {
	lower := strings.ToLower(name)
	for _, n := range conditionToggleNames {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// toggleEffectFormula digs a dice formula out of the toggle or its
// children, defaulting when nothing parseable turns up.
func (p *pass) toggleEffectFormula(toggle *sheet.PropertyNode) string {
	if f := diceFormula(toggle.Amount); f != "" {
		return f
	}
	for _, child := range p.idx.ChildrenOf(toggle.ID) {
		if f := diceFormula(child.Amount); f != "" {
			return f
		}
		if f := diceFormula(child.Damage); f != "" {
			return f
		}
	}
	return defaultConditionEffect
}

// buildAction assembles a direct action-typed property: attack roll from
// the attackRoll cell, damage from every damage-typed descendant.
func (p *pass) buildAction(node *sheet.PropertyNode) character.Action {
	action := character.Action{
		Name:        node.Name,
		ActionType:  actionType(node),
		AttackRoll:  attackRollFormula(node.AttackRoll),
		Summary:     StripTemplates(node.Summary.Text()),
		Description: StripTemplates(node.Description.Text()),
		Uses:        usesString(node.Uses),
	}

	var formulas []string
	var types []string
	seenTypes := make(map[string]bool)
	for _, desc := range p.idx.All() {
		if desc.Type != sheet.TypeDamage || !desc.Active() {
			continue
		}
		if !p.idx.HasAncestor(desc, node.ID) {
			continue
		}
		formula := damageNodeFormula(desc)
		if formula == "" {
			continue
		}
		formulas = append(formulas, formula)
		if desc.DamageType != "" && !seenTypes[desc.DamageType] {
			seenTypes[desc.DamageType] = true
			types = append(types, desc.DamageType)
		}
	}
	action.Damage = strings.Join(formulas, "+")
	action.DamageType = strings.Join(types, " + ")
	return action
}

func actionType(node *sheet.PropertyNode) string {
	if node.ActionType != "" {
		return node.ActionType
	}
	return "action"
}

// damageNodeFormula renders one damage node's formula, folding in numeric
// effect modifiers nested in the amount's effects array. A nested dice
// formula is deliberately skipped: toggles like Sneak Attack surface as
// their own action, and summing here would double count.
func damageNodeFormula(node *sheet.PropertyNode) string {
	base := formulaText(node.Amount)
	if base == "" {
		return ""
	}
	bonus := 0
	if effects, ok := node.Amount.Field("effects"); ok {
		for _, eff := range effects.Items() {
			amount, ok := eff.Field("amount")
			if !ok {
				continue
			}
			if !isPurelyNumeric(amount) {
				continue
			}
			if v, ok := amount.Number(); ok {
				bonus += int(v)
			}
		}
	}
	switch {
	case bonus > 0:
		return fmt.Sprintf("%s+%d", base, bonus)
	case bonus < 0:
		return fmt.Sprintf("%s%d", base, bonus)
	default:
		return base
	}
}

var numericLiteralRe = regexp.MustCompile(`^\s*[+-]?\d+(\.\d+)?\s*$`)

func isPurelyNumeric(cell sheet.Cell) bool {
	switch v := cell.Raw().(type) {
	case float64:
		return true
	case string:
		return numericLiteralRe.MatchString(v)
	case map[string]any:
		if inner, ok := cell.Field("value"); ok {
			return isPurelyNumeric(inner)
		}
		return false
	default:
		return false
	}
}

// attackRollFormula renders an attack roll: a string formula verbatim, a
// numeric bonus as 1d20±N.
func attackRollFormula(cell sheet.Cell) string {
	if cell.IsEmpty() {
		return ""
	}
	if s, isString := cell.Raw().(string); isString && !numericLiteralRe.MatchString(s) {
		return strings.TrimSpace(s)
	}
	if inner, ok := cell.Field("value"); ok {
		if s, isString := inner.Raw().(string); isString && !numericLiteralRe.MatchString(s) {
			return strings.TrimSpace(s)
		}
	}
	if v, ok := cell.Number(); ok {
		return d20Formula(int(v))
	}
	return ""
}

func d20Formula(bonus int) string {
	if bonus < 0 {
		return fmt.Sprintf("1d20%d", bonus)
	}
	return fmt.Sprintf("1d20+%d", bonus)
}

// dedupActions groups actions by name with action-economy suffixes
// stripped, keeps the shortest original name as canonical, merges
// complementary fields from duplicates, and collapses weapon-specific
// Divine Smite variants to the one canonical entry. Input order is
// preserved, so repeated runs produce identical output.
func dedupActions(actions []character.Action) []character.Action {
	out := make([]character.Action, 0, len(actions))
	index := make(map[string]int)

	for _, action := range actions {
		lower := strings.ToLower(action.Name)
		if strings.Contains(lower, "divine smite") && action.Name != "Divine Smite" {
			continue
		}

		key := normalizeActionName(action.Name)
		if at, ok := index[key]; ok {
			canonical := &out[at]
			if len(action.Name) < len(canonical.Name) {
				canonical.Name = action.Name
			}
			if canonical.Source == "" {
				canonical.Source = action.Source
			}
			if canonical.Damage == "" {
				canonical.Damage = action.Damage
			}
			if canonical.DamageType == "" {
				canonical.DamageType = action.DamageType
			}
			if canonical.AttackRoll == "" {
				canonical.AttackRoll = action.AttackRoll
			}
			if canonical.Uses == "" {
				canonical.Uses = action.Uses
			}
			continue
		}
		index[key] = len(out)
		out = append(out, action)
	}
	return out
}

func normalizeActionName(name string) string {
	stripped := name
	for {
		next := actionSuffixRe.ReplaceAllString(stripped, "")
		if next == stripped {
			break
		}
		stripped = next
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

// usesString renders a uses cell as "current/max" when both resolve, else
// whatever text the cell carries.
func usesString(cell sheet.Cell) string {
	if cell.IsEmpty() {
		return ""
	}
	cur, okCur := cell.Current()
	max, okMax := cell.Number()
	if okCur && okMax && max > 0 {
		return fmt.Sprintf("%d/%d", int(cur), int(max))
	}
	return cell.Text()
}

// formulaText renders a formula-ish cell as text: strings verbatim,
// numbers formatted, objects through the usual value/text preference.
func formulaText(cell sheet.Cell) string {
	return strings.TrimSpace(cell.Text())
}
