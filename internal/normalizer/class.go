package normalizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

var multiclassSuffixRe = regexp.MustCompile(`(?i)\s*\[multiclass\]\s*$`)

// knownRaceNames are lowercase substrings that identify a race folder.
var knownRaceNames = []string{
	"human", "elf", "dwarf", "halfling", "gnome", "dragonborn", "tiefling",
	"orc", "aasimar", "genasi", "goliath", "tabaxi", "kenku", "firbolg",
	"tortle", "triton", "lizardfolk", "kobold", "goblin", "bugbear",
	"hobgoblin", "changeling", "warforged", "shifter", "satyr", "leonin",
	"harengon", "lineage",
}

func (p *pass) extractClassAndRace() {
	p.extractClasses()
	p.out.Race = p.resolveRace()
	p.out.Background = p.resolveBackground()
}

// extractClasses resolves the class string and total level. Multiclass
// duplicates are deduplicated by normalized name for display, but level is
// counted once per classLevel node regardless of dedup, matching the
// source service's per-level property model.
func (p *pass) extractClasses() {
	var names []string
	seen := make(map[string]bool)
	level := 0

	for _, node := range p.idx.All() {
		if node.Type != sheet.TypeClass && node.Type != sheet.TypeClassLevel {
			continue
		}
		if !node.Active() {
			continue
		}
		if node.Type == sheet.TypeClassLevel {
			level++
		}

		name := strings.TrimSpace(multiclassSuffixRe.ReplaceAllString(node.Name, ""))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}

	// Payloads that never materialized class properties still carry a
	// levels list or a flat level on the creature record.
	if len(names) == 0 {
		for _, cl := range p.creature.Levels {
			if cl.Name == "" {
				continue
			}
			key := strings.ToLower(cl.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, cl.Name)
		}
	}
	if level == 0 {
		for _, cl := range p.creature.Levels {
			if v, ok := cl.Level.Number(); ok {
				level += int(v)
			}
		}
	}
	if level == 0 {
		if v, ok := p.creature.Level.Number(); ok {
			level = int(v)
		}
	}

	p.out.Class = strings.Join(names, "/")
	p.out.Level = level
}

// Race resolution is a fallback chain of named strategies, evaluated in
// order until one produces a non-empty name.

type raceStrategy struct {
	name    string
	resolve func(p *pass) string
}

var raceStrategies = []raceStrategy{
	{"typed property", raceFromTypedProperty},
	{"race folder", raceFromFolder},
	{"variable bag", raceFromVariables},
}

func (p *pass) resolveRace() string {
	for _, s := range raceStrategies {
		if race := s.resolve(p); race != "" {
			return race
		}
	}
	return ""
}

func raceFromTypedProperty(p *pass) string {
	for _, node := range p.idx.All() {
		switch node.Type {
		case sheet.TypeRace, sheet.TypeSpecies, "characterRace":
			if node.Active() && node.Name != "" {
				return node.Name
			}
		}
	}
	return ""
}

// raceFromFolder finds a shallow folder whose name contains a known race
// and appends a subrace-tagged child folder when present.
func raceFromFolder(p *pass) string {
	for _, node := range p.idx.All() {
		if node.Type != sheet.TypeFolder || !node.Active() {
			continue
		}
		if len(node.AncestorIDs()) > 2 {
			continue
		}
		if !looksLikeRaceName(node.Name) {
			continue
		}
		race := node.Name
		for _, child := range p.idx.ChildrenOf(node.ID) {
			if child.Type == sheet.TypeFolder && child.HasTag("subrace") {
				return race + " - " + child.Name
			}
		}
		return race
	}
	return ""
}

func looksLikeRaceName(name string) bool {
	lower := strings.ToLower(name)
	for _, r := range knownRaceNames {
		if strings.Contains(lower, r) {
			return true
		}
	}
	return false
}

var raceFlagRe = regexp.MustCompile(`^([a-zA-Z]+)Race$`)

// raceFromVariables scans the variable bag for race-shaped keys. Explicit
// subRace and race cells win over boolean naming flags.
func raceFromVariables(p *pass) string {
	if cell, ok := p.variable("subRace", "subrace"); ok {
		if name := raceCellText(cell); name != "" {
			return name
		}
	}
	if cell, ok := p.variable("race", "species"); ok {
		if name := raceCellText(cell); name != "" {
			return name
		}
	}

	keys := make([]string, 0, len(p.vars))
	for k := range p.vars {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "race") || strings.Contains(lower, "species") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		m := raceFlagRe.FindStringSubmatch(k)
		if m == nil {
			continue
		}
		cell := p.vars[k]
		p.usedVars[k] = true
		if !cell.Bool() {
			continue
		}
		if strings.EqualFold(m[1], "custom") {
			return "Custom Lineage"
		}
		return camelToTitle(m[1])
	}
	return ""
}

func raceCellText(cell sheet.Cell) string {
	if name, ok := cell.Field("name"); ok {
		if s := name.Text(); s != "" {
			return s
		}
	}
	return cell.Text()
}

// camelToTitle formats a camelCase variable fragment as a display name:
// "halfElf" becomes "Half Elf".
func camelToTitle(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range s {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (p *pass) resolveBackground() string {
	for _, node := range p.idx.All() {
		if node.Type == sheet.TypeBackground && node.Active() && node.Name != "" {
			return node.Name
		}
	}
	if cell, ok := p.variable("background"); ok {
		return cell.Text()
	}
	return ""
}
