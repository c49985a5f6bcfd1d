package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

func TestNewIndex_ByIDAndChildren(t *testing.T) {
	nodes := []sheet.PropertyNode{
		{ID: "root", Type: sheet.TypeFolder, Name: "Wizard"},
		{ID: "a", Type: sheet.TypeSpell, Name: "Fire Bolt", Parent: sheet.Ref{ID: "root"}},
		{ID: "b", Type: sheet.TypeSpell, Name: "Shield", Parent: sheet.Ref{ID: "root"}},
		{ID: "c", Type: sheet.TypeDamage, Parent: sheet.Ref{ID: "a"}},
	}
	ix := NewIndex(nodes)

	require.NotNil(t, ix.ByID("a"))
	assert.Equal(t, "Fire Bolt", ix.ByID("a").Name)
	assert.Nil(t, ix.ByID("missing"))
	assert.Nil(t, ix.ByID(""))

	children := ix.ChildrenOf("root")
	require.Len(t, children, 2)
	assert.Equal(t, "Fire Bolt", children[0].Name)
	assert.Equal(t, "Shield", children[1].Name)
	assert.Empty(t, ix.ChildrenOf("c"))
}

func TestIndex_HasAncestor(t *testing.T) {
	nodes := []sheet.PropertyNode{
		{ID: "class", Type: sheet.TypeClass, Name: "Rogue"},
		{
			ID:        "feature",
			Type:      sheet.TypeFeature,
			Parent:    sheet.Ref{ID: "class"},
			Ancestors: []sheet.Ref{{ID: "class"}},
		},
		{
			ID:        "deep",
			Type:      sheet.TypeDamage,
			Parent:    sheet.Ref{ID: "feature"},
			Ancestors: []sheet.Ref{{ID: "class"}, {ID: "feature"}},
		},
	}
	ix := NewIndex(nodes)

	assert.True(t, ix.HasAncestor(ix.ByID("deep"), "class"))
	assert.True(t, ix.HasAncestor(ix.ByID("deep"), "feature"))
	assert.False(t, ix.HasAncestor(ix.ByID("feature"), "deep"))
	assert.False(t, ix.HasAncestor(ix.ByID("feature"), ""))
	assert.False(t, ix.HasAncestor(nil, "class"))
}

func TestIndex_HasAncestor_SelfAndMalformed(t *testing.T) {
	nodes := []sheet.PropertyNode{
		{
			ID:        "loop",
			Type:      sheet.TypeSpell,
			Ancestors: []sheet.Ref{{ID: "loop"}, {ID: ""}, {ID: "gone"}},
		},
	}
	ix := NewIndex(nodes)
	node := ix.ByID("loop")

	// A node is never its own ancestor, and malformed or dangling entries
	// never match.
	assert.False(t, ix.HasAncestor(node, "loop"))
	assert.True(t, ix.HasAncestor(node, "gone"))
	assert.False(t, ix.HasAncestor(node, "other"))
}

func TestRef_UnmarshalShapes(t *testing.T) {
	var node sheet.PropertyNode
	raw := []byte(`{
		"_id": "x",
		"parent": {"id": "p1"},
		"ancestors": ["a1", {"id": "a2"}, {"_id": "a3"}, 42, null]
	}`)
	require.NoError(t, json.Unmarshal(raw, &node))

	assert.Equal(t, "p1", node.Parent.ID)
	assert.Equal(t, []string{"a1", "a2", "a3"}, node.AncestorIDs())
}
