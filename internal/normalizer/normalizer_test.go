package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
	apierrors "github.com/vttbridge/sheet-api/internal/errors"
)

type NormalizeSuite struct {
	suite.Suite

	input *Input
}

func (s *NormalizeSuite) SetupTest() {
	creatureJSON := `{
		"_id": "char-123",
		"name": "Theren Moonshadow",
		"alignment": "Chaotic Good",
		"deathSave": {"success": 1, "fail": 0}
	}`
	variablesJSON := `{
		"strength": {"value": 10},
		"dexterity": {"value": 16},
		"constitution": {"value": 14},
		"intelligence": {"value": 8},
		"wisdom": {"value": 12},
		"charisma": {"value": 15},
		"hitPoints": {"value": 21, "total": 28},
		"armorClass": {"value": 15},
		"slotLevel1": {"value": 3, "total": 4},
		"customNote": "remember the amulet"
	}`
	propertiesJSON := `[
		{"_id": "cls", "type": "class", "name": "Bard"},
		{"_id": "lv1", "type": "classLevel", "parent": {"id": "cls"}},
		{"_id": "lv2", "type": "classLevel", "parent": {"id": "cls"}},
		{"_id": "lv3", "type": "classLevel", "parent": {"id": "cls"}},
		{"_id": "lv4", "type": "classLevel", "parent": {"id": "cls"}},
		{"_id": "race", "type": "race", "name": "Half-Elf"},
		{"_id": "bg", "type": "background", "name": "Entertainer"},
		{"_id": "feat1", "type": "feature", "name": "Jack of All Trades",
			"summary": {"text": "Add half your proficiency bonus to unproficient checks."}},
		{"_id": "spell1", "type": "spell", "name": "Vicious Mockery",
			"parent": {"id": "cls"}, "level": 0},
		{"_id": "item1", "type": "item", "name": "Rapier", "equipped": true,
			"quantity": 1, "weight": 2},
		{"_id": "res1", "type": "attribute", "attributeType": "resource",
			"name": "Bardic Inspiration", "variableName": "bardicInspiration",
			"amount": {"value": 2, "total": 3}}
	]`

	creature := &sheet.Creature{}
	s.Require().NoError(json.Unmarshal([]byte(creatureJSON), creature))
	vars := sheet.VariableMap{}
	s.Require().NoError(json.Unmarshal([]byte(variablesJSON), &vars))
	var props []sheet.PropertyNode
	s.Require().NoError(json.Unmarshal([]byte(propertiesJSON), &props))

	s.input = &Input{Creature: creature, Variables: vars, Properties: props}
}

func (s *NormalizeSuite) TestEndToEnd() {
	out, err := Normalize(s.input)
	s.Require().NoError(err)

	s.Equal("char-123", out.ID)
	s.Equal("Theren Moonshadow", out.Name)
	s.Equal("Chaotic Good", out.Alignment)
	s.Equal(1, out.DeathSaves.Successes)

	s.Equal("Bard", out.Class)
	s.Equal(4, out.Level)
	s.Equal("Half-Elf", out.Race)
	s.Equal("Entertainer", out.Background)

	s.Equal(16, out.Attributes.Dexterity)
	s.Equal(3, out.Initiative)
	s.Equal(2, out.ProficiencyBonus)
	s.Equal(21, out.HitPoints.Current)
	s.Equal(28, out.HitPoints.Max)
	s.Equal(15, out.ArmorClass)

	s.Require().Len(out.Features, 1)
	s.Equal(3, out.SpellSlots.Levels[0].Current)
	s.Equal(4, out.SpellSlots.Levels[0].Max)

	s.Require().Len(out.Spells, 1)
	s.Equal("Bard", out.Spells[0].Source)
	s.Require().Len(out.Spells[0].DamageRolls, 1)
	s.Equal("1d4", out.Spells[0].DamageRolls[0].Damage)

	s.Require().Len(out.Inventory, 1)
	s.True(out.Inventory[0].Equipped)

	s.Require().Len(out.Resources, 1)
	s.Equal(2, out.Resources[0].Current)
	s.Equal(3, out.Resources[0].Max)

	s.Equal("remember the amulet", out.Variables["customNote"])
	s.NotContains(out.Variables, "strength")
	s.NotContains(out.Variables, "slotLevel1")
}

func (s *NormalizeSuite) TestRepeatedRunsAreIdentical() {
	first, err := Normalize(s.input)
	s.Require().NoError(err)
	second, err := Normalize(s.input)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *NormalizeSuite) TestNilInput() {
	_, err := Normalize(nil)
	s.Require().Error(err)
	s.True(apierrors.IsInvalidArgument(err))
}

func (s *NormalizeSuite) TestEmptyPayload() {
	_, err := Normalize(&Input{})
	s.Require().Error(err)
	s.True(apierrors.IsInvalidArgument(err))
}

func (s *NormalizeSuite) TestPropertiesOnlyPayload() {
	out, err := Normalize(&Input{
		Properties: []sheet.PropertyNode{
			{ID: "cls", Type: sheet.TypeClass, Name: "Fighter"},
		},
	})
	s.Require().NoError(err)
	s.Equal("Fighter", out.Class)
}

func (s *NormalizeSuite) TestCollectionsNeverNil() {
	out, err := Normalize(&Input{Creature: &sheet.Creature{ID: "c1"}})
	s.Require().NoError(err)

	s.NotNil(out.Features)
	s.NotNil(out.Actions)
	s.NotNil(out.Spells)
	s.NotNil(out.Inventory)
	s.NotNil(out.Resources)
	s.NotNil(out.Conditions)
	s.NotNil(out.Companions)
	s.NotNil(out.Skills)
	s.NotNil(out.Variables)
}

func TestNormalizeSuite(t *testing.T) {
	suite.Run(t, new(NormalizeSuite))
}
