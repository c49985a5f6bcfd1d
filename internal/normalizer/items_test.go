package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

func TestExtractInventory(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			{
				ID:       "rapier",
				Type:     sheet.TypeItem,
				Name:     "Rapier",
				Equipped: true,
				Quantity: sheet.Num(1),
				Weight:   sheet.Num(2),
				Value:    sheet.Num(25),
				Tags:     []string{"weapon", "finesse"},
			},
			{
				ID:       "rations",
				Type:     sheet.TypeItem,
				Name:     "Rations",
				Quantity: sheet.Num(10),
			},
			{
				ID:      "cloak",
				Type:    sheet.TypeItem,
				Name:    "Cloak of Protection",
				Attuned: true,
			},
		},
	})

	require.Len(t, out.Inventory, 3)

	rapier := out.Inventory[0]
	assert.Equal(t, "Rapier", rapier.Name)
	assert.True(t, rapier.Equipped)
	assert.Equal(t, 1, rapier.Quantity)
	assert.Equal(t, float64(2), rapier.Weight)
	assert.Equal(t, float64(25), rapier.Value)
	assert.Equal(t, []string{"weapon", "finesse"}, rapier.Tags)

	assert.Equal(t, 10, out.Inventory[1].Quantity)

	cloak := out.Inventory[2]
	assert.True(t, cloak.Attuned)
	assert.False(t, cloak.Equipped)
}

func TestExtractInventoryDefaultsAndExclusions(t *testing.T) {
	out := normalize(t, &Input{
		Creature: &sheet.Creature{ID: "c1"},
		Properties: []sheet.PropertyNode{
			// missing quantity defaults to 1
			{ID: "lamp", Type: sheet.TypeItem, Name: "Lamp"},
			// zero quantity cells also default to 1
			{ID: "rope", Type: sheet.TypeItem, Name: "Rope", Quantity: sheet.Num(0)},
			{ID: "gone", Type: sheet.TypeItem, Name: "Lost Dagger", Removed: true},
			{ID: "feat", Type: sheet.TypeFeature, Name: "Not An Item"},
		},
	})

	require.Len(t, out.Inventory, 2)
	assert.Equal(t, 1, out.Inventory[0].Quantity)
	assert.Equal(t, 1, out.Inventory[1].Quantity)
}
