package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

const wolfStatBlock = `Medium beast, unaligned

**Armor Class** 13 (natural armor)
**Hit Points** 11 (2d8 + 2)
**Speed** 40 ft.

| STR | DEX | CON | INT | WIS | CHA |
| 12 (+1) | 15 (+2) | 12 (+1) | 3 (-4) | 12 (+1) | 6 (-2) |

**Senses** passive Perception 13
**Languages** understands Common
**Proficiency Bonus** +2

***Keen Hearing and Smell.*** The wolf has advantage on Wisdom (Perception) checks that rely on hearing or smell.

***Bite.*** Melee Weapon Attack: +4 to hit, reach 5 ft., one target. Hit: 7 (2d4 + 2) piercing damage.
`

func TestExtractCompanions_FullStatBlock(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:          "f1",
				Type:        sheet.TypeFeature,
				Name:        "Ranger's Companion: Wolf",
				Description: sheet.Str(wolfStatBlock),
			},
		},
	})

	require.Len(t, out.Companions, 1)
	c := out.Companions[0]

	assert.Equal(t, "Ranger's Companion: Wolf", c.Name)
	assert.Equal(t, "Medium", c.Size)
	assert.Equal(t, "beast", c.Type)
	assert.Equal(t, "unaligned", c.Alignment)
	assert.Equal(t, 13, c.AC)
	assert.Equal(t, "11 (2d8 + 2)", c.HP)
	assert.Equal(t, "40 ft.", c.Speed)
	assert.Equal(t, "passive Perception 13", c.Senses)
	assert.Equal(t, "understands Common", c.Languages)
	assert.Equal(t, 2, c.ProficiencyBonus)

	require.True(t, c.ParsedAbilities)
	assert.Equal(t, 12, c.Abilities.Str.Score)
	assert.Equal(t, 1, c.Abilities.Str.Modifier)
	assert.Equal(t, 15, c.Abilities.Dex.Score)
	assert.Equal(t, -4, c.Abilities.Int.Modifier)
	assert.Equal(t, -2, c.Abilities.Cha.Modifier)

	require.Len(t, c.Features, 1)
	assert.Equal(t, "Keen Hearing and Smell", c.Features[0].Name)

	require.Len(t, c.Actions, 1)
	assert.Equal(t, "Bite", c.Actions[0].Name)
	assert.Equal(t, 4, c.Actions[0].AttackBonus)
	assert.Equal(t, "5 ft", c.Actions[0].Reach)
	assert.Equal(t, "7 (2d4 + 2) piercing damage", c.Actions[0].Hit)
}

func TestExtractCompanions_EmptyDescriptionSkipped(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{ID: "f1", Type: sheet.TypeFeature, Name: "Find Familiar"},
			{ID: "f2", Type: sheet.TypeFeature, Name: "Summon Fey", Description: sheet.Str("   ")},
		},
	})

	assert.Empty(t, out.Companions)
	assert.Len(t, out.Features, 2)
}

func TestExtractCompanions_ProseDescriptionWithoutStatsSkipped(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:          "f1",
				Type:        sheet.TypeFeature,
				Name:        "Beast Master",
				Description: sheet.Str("You gain a beast companion that accompanies you on your adventures."),
			},
		},
	})

	assert.Empty(t, out.Companions)
}

func TestExtractCompanions_NonCompanionFeatureIgnored(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:          "f1",
				Type:        sheet.TypeFeature,
				Name:        "Extra Attack",
				Description: sheet.Str(wolfStatBlock),
			},
		},
	})

	assert.Empty(t, out.Companions)
}

func TestExtractCompanions_PlainTextLabels(t *testing.T) {
	desc := `Small construct, neutral

Armor Class: 15
Hit Points: 20
Speed: 30 ft.
`
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{ID: "f1", Type: sheet.TypeFeature, Name: "Homunculus Servant", Description: sheet.Str(desc)},
		},
	})

	require.Len(t, out.Companions, 1)
	c := out.Companions[0]
	assert.Equal(t, 15, c.AC)
	assert.Equal(t, "20", c.HP)
	assert.Equal(t, "30 ft.", c.Speed)
	assert.False(t, c.ParsedAbilities)
}

func TestParseAbilityRow_HeaderRowIgnored(t *testing.T) {
	text := "| STR | DEX | CON | INT | WIS | CHA |\n| 10 (+0) | 14 (+2) | 12 (+1) | 8 (-1) | 13 (+1) | 7 (-2) |"
	abilities, ok := parseAbilityRow(text)

	require.True(t, ok)
	assert.Equal(t, 10, abilities.Str.Score)
	assert.Equal(t, 2, abilities.Dex.Modifier)
	assert.Equal(t, -2, abilities.Cha.Modifier)
}

func TestParseAbilityRow_IncompleteRowRejected(t *testing.T) {
	_, ok := parseAbilityRow("| 10 (+0) | 14 (+2) | 12 (+1) |")
	assert.False(t, ok)
}

func TestParseCompanionStatBlock_AttackFallbackWithoutHitClause(t *testing.T) {
	desc := `**Armor Class** 14

***Rend.*** Melee Weapon Attack: +6 to hit, the target takes force damage equal to 1d8 + 4
`
	companion, ok := parseCompanionStatBlock("Steel Defender", desc)

	require.True(t, ok)
	require.Len(t, companion.Actions, 1)
	assert.Equal(t, "Rend", companion.Actions[0].Name)
	assert.Equal(t, 6, companion.Actions[0].AttackBonus)
	assert.Empty(t, companion.Actions[0].Reach)
}
