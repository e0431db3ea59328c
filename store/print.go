package store

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// String renders the forest as an indented tree, for debugging.
func (s *Store) String() string {
	if s == nil {
		return "<nil store>"
	}
	printer := treeprint.New()
	printer.SetValue(fmt.Sprintf("store rev=%d elements=%d visible=%d errors=%d warnings=%d",
		s.revision, len(s.elements), s.weightAcrossRoots, s.errorCount, s.warningCount))
	type pending struct {
		branch treeprint.Tree
		id     int
	}
	stack := make([]pending, 0, len(s.roots))
	for i := len(s.roots) - 1; i >= 0; i-- {
		stack = append(stack, pending{printer, s.roots[i]})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		el, ok := s.elements[top.id]
		if !ok {
			top.branch.AddNode(fmt.Sprintf("<missing #%d>", top.id))
			continue
		}
		if len(el.Children) == 0 {
			top.branch.AddNode(s.label(el))
			continue
		}
		branch := top.branch.AddBranch(s.label(el))
		for i := len(el.Children) - 1; i >= 0; i-- {
			stack = append(stack, pending{branch, el.Children[i]})
		}
	}
	return printer.String()
}

func (s *Store) label(el *Element) string {
	var sb strings.Builder
	if el.IsRoot() {
		sb.WriteString("root")
		if r, ok := s.rootRenderer[el.ID]; ok {
			fmt.Fprintf(&sb, "@%d", r)
		}
	} else if el.DisplayName != "" {
		sb.WriteString(el.DisplayName)
	} else {
		sb.WriteString(el.Type.String())
	}
	for _, hoc := range el.HOCDisplayNames {
		fmt.Fprintf(&sb, " [%s]", hoc)
	}
	if el.Key != nil {
		fmt.Fprintf(&sb, " key=%q", *el.Key)
	}
	fmt.Fprintf(&sb, " #%d w=%d", el.ID, el.Weight)
	if el.IsCollapsed {
		sb.WriteString(" ▸")
	}
	if el.IsStrictModeNonCompliant {
		sb.WriteString(" !strict")
	}
	if d, ok := s.entries[el.ID]; ok {
		fmt.Fprintf(&sb, " E%d/W%d", d.Errors, d.Warnings)
	}
	return sb.String()
}
