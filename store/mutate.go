package store

import (
	"fmt"

	"github.com/npillmayer/elemtree/protocol"
)

// add handles OpAdd: [opcode, id, type, …payload]. The payload depends on
// whether a root or a child is added.
func (s *Store) add(b *batch) error {
	head, err := b.read(3)
	if err != nil {
		return err
	}
	id, typ := head[1], protocol.ElementType(head[2])
	if id <= 0 {
		return elementError(id, ErrInvalidID, "cannot add element %d", id)
	}
	if _, exists := s.elements[id]; exists {
		return elementError(id, ErrDuplicateID,
			"cannot add element %d because an element with that id is already in the store", id)
	}
	if typ == protocol.ElementTypeRoot {
		return s.addRoot(b, id)
	}
	return s.addChild(b, id, typ)
}

// addRoot reads [isCompliant, capabilityBits(, strictModeSupport, ownerMetadata)].
// The trailing fields depend on the bridge protocol version.
func (s *Store) addRoot(b *batch, id int) error {
	fields, err := b.read(2)
	if err != nil {
		return err
	}
	isCompliant := fields[0] > 0
	caps := Capabilities{}
	caps.SupportsBasicProfiling, caps.SupportsTimeline = protocol.ProfilingFlags(fields[1])
	if s.bridge.HasRootTrailer() {
		trailer, err := b.read(2)
		if err != nil {
			return err
		}
		caps.SupportsStrictMode = trailer[0] > 0
		caps.HasOwnerMetadata = trailer[1] > 0
	}
	tracer().Debugf("add root %d for renderer %d", id, b.rendererID)
	s.registerRoot(id, b.rendererID, caps)
	s.elements[id] = &Element{
		ID:          id,
		Type:        protocol.ElementTypeRoot,
		Depth:       -1,
		IsCollapsed: false, // collapsing a root would hide the entire tree
		// roots without strict mode support are never flagged
		IsStrictModeNonCompliant: caps.SupportsStrictMode && !isCompliant,
	}
	s.invalidateTuples()
	b.rootsChanged = true
	return nil
}

// addChild reads [parentID, ownerID, displayNameIndex, keyIndex].
func (s *Store) addChild(b *batch, id int, typ protocol.ElementType) error {
	fields, err := b.read(4)
	if err != nil {
		return err
	}
	parentID, ownerID := fields[0], fields[1]
	parent, ok := s.elements[parentID]
	if !ok {
		return elementError(id, ErrUnknownParent,
			"cannot add child %d to parent %d because parent was not found in the store", id, parentID)
	}
	name, _, err := b.lookup(id, fields[2])
	if err != nil {
		return err
	}
	key, hasKey, err := b.lookup(id, fields[3])
	if err != nil {
		return err
	}
	tracer().Debugf("add element %d (%s) as child of %d", id, name, parentID)
	displayName, hocs := protocol.SeparateDisplayNameAndHOCs(name, typ)
	el := &Element{
		ID:                       id,
		ParentID:                 parentID,
		Type:                     typ,
		DisplayName:              displayName,
		HOCDisplayNames:          hocs,
		IsCollapsed:              s.collapseByDefault,
		OwnerID:                  ownerID,
		Depth:                    parent.Depth + 1,
		Weight:                   1,
		IsStrictModeNonCompliant: parent.IsStrictModeNonCompliant,
	}
	if hasKey {
		el.Key = &key
	}
	parent.appendChild(id)
	s.elements[id] = el
	b.report.Added = append(b.report.Added, id)
	s.propagate(parent, 1)
	if ownerID > 0 {
		s.own(ownerID, id)
	}
	s.invalidateTuples()
	return nil
}

// remove handles OpRemove: [opcode, count, id…]. Elements have to be removed
// leaves first. The ids are checked as a whole before any element is removed.
func (s *Store) remove(b *batch) error {
	head, err := b.read(2)
	if err != nil {
		return err
	}
	ids, err := b.read(head[1])
	if err != nil {
		return err
	}
	if err = s.checkRemoval(ids); err != nil {
		return err
	}
	for _, id := range ids {
		el := s.elements[id]
		var parent *Element
		if el.ParentID == 0 {
			tracer().Debugf("remove root %d", id)
			s.unregisterRoot(id)
			b.rootsChanged = true
		} else {
			tracer().Debugf("remove element %d from parent %d", id, el.ParentID)
			parent = s.elements[el.ParentID]
			parent.removeChild(id)
		}
		delete(s.elements, id)
		s.propagate(parent, -el.Weight)
		b.report.Removed[id] = el.ParentID
		s.disown(id, el.OwnerID)
		if s.dropDiagnostics(id) {
			b.diagnosticsChanged = true
		}
		s.invalidateTuples()
	}
	return nil
}

// checkRemoval verifies that ids can be removed in order: every id is in the
// store and named once, every element is a leaf once the ids before it are
// gone, and every parent outlives its children.
func (s *Store) checkRemoval(ids []int) error {
	gone := make(map[int]bool, len(ids))
	for _, id := range ids {
		el, ok := s.elements[id]
		if !ok || gone[id] {
			return elementError(id, ErrUnknownID,
				"cannot remove element %d because no matching element was found in the store", id)
		}
		left := 0
		for _, chid := range el.Children {
			if !gone[chid] {
				left++
			}
		}
		if left > 0 {
			return elementError(id, ErrNonLeafRemoval, "element %d has %d children", id, left)
		}
		if el.ParentID != 0 {
			if _, ok := s.elements[el.ParentID]; !ok || gone[el.ParentID] {
				return elementError(id, ErrUnknownParent,
					"cannot remove element %d from parent %d because parent was not found in the store",
					id, el.ParentID)
			}
		}
		gone[id] = true
	}
	return nil
}

// removeRoot handles OpRemoveRoot: [opcode]. For historical reasons the id of
// the root is not part of the operation, but is taken from slot 1 of the batch.
// The root is removed together with its complete subtree.
func (s *Store) removeRoot(b *batch) error {
	if _, err := b.read(1); err != nil {
		return err
	}
	id := b.ops[1]
	root, ok := s.elements[id]
	if !ok {
		return elementError(id, ErrUnknownID, "cannot remove root %d because it was not found in the store", id)
	}
	if !root.IsRoot() {
		return elementError(id, ErrNotRoot, "cannot remove element %d with parent %d as root", id, root.ParentID)
	}
	tracer().Debugf("remove root %d", id)
	for _, eid := range s.Subtree(id) {
		el := s.elements[eid]
		delete(s.elements, eid)
		b.report.Removed[eid] = el.ParentID
		s.disown(eid, el.OwnerID)
		if s.dropDiagnostics(eid) {
			b.diagnosticsChanged = true
		}
	}
	s.unregisterRoot(id)
	s.weightAcrossRoots -= root.Weight
	s.invalidateTuples()
	b.rootsChanged = true
	return nil
}

// reorderChildren handles OpReorderChildren: [opcode, id, count, childID…].
// A reorder has to be a permutation of the current children.
func (s *Store) reorderChildren(b *batch) error {
	head, err := b.read(3)
	if err != nil {
		return err
	}
	id, count := head[1], head[2]
	el, ok := s.elements[id]
	if !ok {
		return elementError(id, ErrUnknownID,
			"cannot reorder children for element %d because no matching element was found in the store", id)
	}
	if len(el.Children) != count {
		return elementError(id, ErrChildCountMismatch, "element %d has %d children, reorder names %d",
			id, len(el.Children), count)
	}
	children, err := b.read(count)
	if err != nil {
		return err
	}
	copy(el.Children, children)
	if s.devChecks {
		seen := make(map[int]bool, len(children))
		for _, chid := range children {
			var msg string
			if child, ok := s.elements[chid]; !ok || child.ParentID != id {
				msg = fmt.Sprintf("children cannot be added or removed during a reorder operation: %d is not a child of %d",
					chid, id)
			} else if seen[chid] {
				msg = fmt.Sprintf("reorder of children of %d names child %d more than once", id, chid)
			}
			seen[chid] = true
			if msg != "" {
				tracer().Errorf("%s", msg)
				b.report.Warnings = append(b.report.Warnings, msg)
			}
		}
	}
	tracer().Debugf("reorder children of %d: %v", id, el.Children)
	s.invalidateTuples()
	return nil
}

// setSubtreeMode handles OpSetSubtreeMode: [opcode, id, mode]. Switching a
// subtree to strict mode clears the non-compliance flag of every element in
// it. Other modes do not change the mirror.
func (s *Store) setSubtreeMode(b *batch) error {
	fields, err := b.read(3)
	if err != nil {
		return err
	}
	id, mode := fields[1], fields[2]
	if mode == protocol.StrictMode {
		s.walkSubtree(id, func(el *Element) {
			el.IsStrictModeNonCompliant = false
		})
	}
	tracer().Debugf("subtree with root %d set to mode %d", id, mode)
	return nil
}

// updateErrorsOrWarnings handles OpUpdateErrorsOrWarnings:
// [opcode, id, errorCount, warningCount].
func (s *Store) updateErrorsOrWarnings(b *batch) error {
	fields, err := b.read(4)
	if err != nil {
		return err
	}
	s.setDiagnostics(fields[1], fields[2], fields[3])
	b.diagnosticsChanged = true
	return nil
}
