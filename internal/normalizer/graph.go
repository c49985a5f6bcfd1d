package normalizer

import (
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

// Index is the per-invocation lookup built over the flat property list.
// Every higher-level pass resolves parent/ancestor relationships through
// it instead of re-scanning the list. The index holds node pointers into
// the caller's slice and is discarded with the invocation, so two
// concurrent extractions never share state.
type Index struct {
	byID     map[string]*sheet.PropertyNode
	children map[string][]*sheet.PropertyNode
	ordered  []*sheet.PropertyNode
}

// NewIndex builds the id and children-by-parent indexes. Later nodes with
// a duplicate id win, matching the service's last-write semantics.
func NewIndex(nodes []sheet.PropertyNode) *Index {
	ix := &Index{
		byID:     make(map[string]*sheet.PropertyNode, len(nodes)),
		children: make(map[string][]*sheet.PropertyNode),
		ordered:  make([]*sheet.PropertyNode, 0, len(nodes)),
	}
	for i := range nodes {
		node := &nodes[i]
		ix.ordered = append(ix.ordered, node)
		if node.ID != "" {
			ix.byID[node.ID] = node
		}
		if pid := node.Parent.ID; pid != "" {
			ix.children[pid] = append(ix.children[pid], node)
		}
	}
	return ix
}

// ByID returns the node with the given id, or nil.
func (ix *Index) ByID(id string) *sheet.PropertyNode {
	if id == "" {
		return nil
	}
	return ix.byID[id]
}

// ChildrenOf returns the direct children of the given id in input order.
func (ix *Index) ChildrenOf(parentID string) []*sheet.PropertyNode {
	if parentID == "" {
		return nil
	}
	return ix.children[parentID]
}

// All returns every node in input order. Extraction passes iterate this so
// dedup and grouping stay deterministic across invocations.
func (ix *Index) All() []*sheet.PropertyNode {
	return ix.ordered
}

// HasAncestor reports whether id appears in the node's ancestor chain. The
// chain is a flat list, so the scan is bounded; malformed or empty entries
// simply never match. A node is not its own ancestor.
func (ix *Index) HasAncestor(node *sheet.PropertyNode, id string) bool {
	if node == nil || id == "" || node.ID == id {
		return false
	}
	for _, aid := range node.AncestorIDs() {
		if aid == id {
			return true
		}
	}
	return node.Parent.ID == id
}

// NameOf resolves an id to its node's name, walking nothing. Returns ""
// for dangling ids.
func (ix *Index) NameOf(id string) string {
	if n := ix.ByID(id); n != nil {
		return n.Name
	}
	return ""
}
