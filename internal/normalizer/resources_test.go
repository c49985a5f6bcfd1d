package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

func TestExtractSpellSlots_NumberedLevels(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Variables: sheet.VariableMap{
			"slotLevel1": sheet.Obj(map[string]any{"value": float64(2), "total": float64(4)}),
			"slotLevel2": sheet.Num(3),
			"slotLevel5": sheet.Obj(map[string]any{"value": float64(0), "total": float64(1)}),
		},
	})

	assert.Equal(t, 2, out.SpellSlots.Levels[0].Current)
	assert.Equal(t, 4, out.SpellSlots.Levels[0].Max)
	assert.Equal(t, 3, out.SpellSlots.Levels[1].Current)
	assert.Equal(t, 3, out.SpellSlots.Levels[1].Max)
	assert.Equal(t, 0, out.SpellSlots.Levels[4].Current)
	assert.Equal(t, 1, out.SpellSlots.Levels[4].Max)
	assert.Zero(t, out.SpellSlots.Levels[2].Max)
}

func TestExtractSpellSlots_PactIndependentOfNumbered(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Variables: sheet.VariableMap{
			"slotLevel3":     sheet.Obj(map[string]any{"value": float64(1), "total": float64(3)}),
			"pactMagicSlots": sheet.Obj(map[string]any{"value": float64(2), "total": float64(2), "level": float64(3)}),
		},
	})

	assert.Equal(t, 1, out.SpellSlots.Levels[2].Current)
	assert.Equal(t, 3, out.SpellSlots.Levels[2].Max)
	assert.Equal(t, 2, out.SpellSlots.Pact.Current)
	assert.Equal(t, 2, out.SpellSlots.Pact.Max)
	assert.Equal(t, 3, out.SpellSlots.Pact.Level)
}

func TestResolvePactSlotLevel_FromDedicatedVariable(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Variables: sheet.VariableMap{
			"pactSlots":          sheet.Num(1),
			"pactMagicSlotLevel": sheet.Num(4),
		},
	})

	assert.Equal(t, 4, out.SpellSlots.Pact.Level)
}

func TestResolvePactSlotLevel_FromWarlockLevel(t *testing.T) {
	cases := []struct {
		warlockLevel float64
		want         int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{7, 4},
		{9, 5},
		{17, 5},
	}
	for _, tc := range cases {
		out := normalize(t, &Input{
			Creature: &sheet.Creature{ID: "c1"},
			Variables: sheet.VariableMap{
				"pactSlots":    sheet.Num(2),
				"warlockLevel": sheet.Num(tc.warlockLevel),
			},
		})
		assert.Equal(t, tc.want, out.SpellSlots.Pact.Level, "warlock level %v", tc.warlockLevel)
	}
}

func TestResolvePactSlotLevel_FallsBackToTotalLevel(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1", Level: sheet.Num(6)},
		Variables: sheet.VariableMap{
			"pactSlots": sheet.Num(2),
		},
	})

	// Half of sixth level, rounded up.
	assert.Equal(t, 3, out.SpellSlots.Pact.Level)
}

func TestExtractResources_Basic(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:            "r1",
				Type:          sheet.TypeAttribute,
				AttributeType: "resource",
				Name:          "Ki Points",
				VariableName:  "ki",
				Amount:        sheet.Obj(map[string]any{"value": float64(3), "total": float64(5)}),
			},
		},
	})

	require.Len(t, out.Resources, 1)
	assert.Equal(t, "Ki Points", out.Resources[0].Name)
	assert.Equal(t, "ki", out.Resources[0].VariableName)
	assert.Equal(t, 3, out.Resources[0].Current)
	assert.Equal(t, 5, out.Resources[0].Max)
}

func TestExtractResources_DamageAgainstBaseValue(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:            "r1",
				Type:          sheet.TypeAttribute,
				AttributeType: "healthbar",
				Name:          "Wild Shape HP",
				BaseValue:     sheet.Num(24),
				Damage:        sheet.Num(30),
			},
		},
	})

	require.Len(t, out.Resources, 1)
	assert.Equal(t, 0, out.Resources[0].Current)
	assert.Equal(t, 24, out.Resources[0].Max)
}

func TestExtractResources_ZeroCapacityDropped(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:            "r1",
				Type:          sheet.TypeAttribute,
				AttributeType: "resource",
				Name:          "Used Luck",
			},
		},
	})

	assert.Empty(t, out.Resources)
}

func TestExtractResources_UtilityAttributeExcluded(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:            "r1",
				Type:          sheet.TypeAttribute,
				AttributeType: "resource",
				Name:          "Slot Level To Create",
				Amount:        sheet.Num(3),
			},
		},
	})

	assert.Empty(t, out.Resources)
}

func TestExtractResources_DedupFirstWins(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:            "r1",
				Type:          sheet.TypeAttribute,
				AttributeType: "resource",
				Name:          "Sorcery Points",
				VariableName:  "sorceryPoints",
				Amount:        sheet.Obj(map[string]any{"value": float64(4), "total": float64(5)}),
			},
			{
				ID:            "r2",
				Type:          sheet.TypeAttribute,
				AttributeType: "resource",
				Name:          "Sorcery points",
				VariableName:  "SORCERYPOINTS",
				Amount:        sheet.Obj(map[string]any{"value": float64(1), "total": float64(5)}),
			},
		},
	})

	require.Len(t, out.Resources, 1)
	assert.Equal(t, 4, out.Resources[0].Current)
}

func TestApplyHPResources_OverridesCombatBlock(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Variables: sheet.VariableMap{
			"hitPoints": sheet.Obj(map[string]any{"value": float64(20), "total": float64(30)}),
		},
		Properties: []sheet.PropertyNode{
			{
				ID:            "r1",
				Type:          sheet.TypeAttribute,
				AttributeType: "healthbar",
				Name:          "Hit Points",
				Amount:        sheet.Obj(map[string]any{"value": float64(12), "total": float64(30)}),
			},
			{
				ID:            "r2",
				Type:          sheet.TypeAttribute,
				AttributeType: "resource",
				Name:          "Temp HP",
				Amount:        sheet.Obj(map[string]any{"value": float64(5), "total": float64(8)}),
			},
		},
	})

	assert.Equal(t, 12, out.HitPoints.Current)
	assert.Equal(t, 30, out.HitPoints.Max)
	assert.Equal(t, 5, out.TemporaryHP)
}
