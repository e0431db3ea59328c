package store

import (
	"fmt"

	"github.com/npillmayer/elemtree/protocol"
)

// Element is a mirrored node of the remote tree.
//
// Elements are owned by their store. Clients may read them between batches
// but must not modify them.
type Element struct {
	ID              int                  // unique across the forest, > 0
	ParentID        int                  // 0 for roots
	Children        []int                // ordered ids of child elements
	Type            protocol.ElementType // kind of element
	DisplayName     string               // name without wrappers, empty if absent
	HOCDisplayNames []string             // wrapper names, outer to inner
	Key             *string              // nil if the element has no key
	IsCollapsed     bool                 // hide descendants? never true for roots
	OwnerID         int                  // creator of this element, or 0
	Depth           int                  // -1 for roots
	Weight          int                  // size of the visible subtree

	// This element is not part of a strict mode compliant subtree.
	// Only set for roots which support strict mode.
	IsStrictModeNonCompliant bool
}

func (el *Element) String() string {
	name := el.DisplayName
	if name == "" {
		name = el.Type.String()
	}
	return fmt.Sprintf("(%s #%d w=%d)", name, el.ID, el.Weight)
}

// IsRoot returns true for root elements.
func (el *Element) IsRoot() bool {
	return el.ParentID == 0
}

// visibleWeight is the weight an element contributes to its parent.
func (el *Element) visibleWeight() int {
	if el.IsCollapsed {
		return 1
	}
	return el.Weight
}

// --- Children ---------------------------------------------------------

// IndexOfChild returns the position of a child id within the children of el,
// or -1.
func (el *Element) IndexOfChild(id int) int {
	for i, ch := range el.Children {
		if ch == id {
			return i
		}
	}
	return -1
}

func (el *Element) appendChild(id int) {
	el.Children = append(el.Children, id)
}

// removeChild splices a child id out of the children of el, keeping the
// order of the remaining children.
func (el *Element) removeChild(id int) bool {
	i := el.IndexOfChild(id)
	if i < 0 {
		return false
	}
	copy(el.Children[i:], el.Children[i+1:])
	el.Children = el.Children[:len(el.Children)-1]
	return true
}
