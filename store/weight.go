package store

// propagate adds delta to the weight of start and its ancestors. The walk
// stops after the first collapsed element, which absorbs the change: its
// ancestors only see it once the element is expanded. Only if no collapsed
// element stopped the walk does the change affect the grand total.
//
// start may be nil, for changes to the forest itself (removing a root).
func (s *Store) propagate(start *Element, delta int) {
	insideCollapsed := false
	for el := start; el != nil; {
		el.Weight += delta
		if el.IsCollapsed {
			insideCollapsed = true
			break
		}
		el = s.elements[el.ParentID]
	}
	if !insideCollapsed {
		s.weightAcrossRoots += delta
	}
}

// IndexOf returns the position of an element within the flattened forest,
// as used for windowed display. Roots have no position. Elements below a
// collapsed ancestor get the position they would have if all their ancestors
// were expanded.
func (s *Store) IndexOf(id int) (int, bool) {
	el, ok := s.elements[id]
	if !ok || el.ParentID == 0 {
		return 0, false
	}
	// Walk up to the root: count one for every ancestor and add the weight
	// of all siblings to the left.
	index := 0
	previous, current := el, s.elements[el.ParentID]
	for {
		assertThat(current != nil, "element %d has no parent %d", previous.ID, previous.ParentID)
		for _, chid := range current.Children {
			if chid == previous.ID {
				break
			}
			index += s.elements[chid].visibleWeight()
		}
		if current.ParentID == 0 {
			break
		}
		index++
		previous, current = current, s.elements[current.ParentID]
	}
	// current is a root now; offset by the weights of preceding roots
	for _, rootID := range s.roots {
		if rootID == current.ID {
			break
		}
		index += s.elements[rootID].Weight
	}
	return index, true
}

// ElementAt returns the element at a position of the flattened forest. It is
// the inverse of IndexOf for visible elements.
func (s *Store) ElementAt(index int) (*Element, bool) {
	if index < 0 || index >= s.weightAcrossRoots {
		return nil, false
	}
	var root *Element
	rootWeight := 0
	for _, rootID := range s.roots {
		r := s.elements[rootID]
		if len(r.Children) == 0 {
			continue
		}
		if rootWeight+r.Weight > index {
			root = r
			break
		}
		rootWeight += r.Weight
	}
	if root == nil {
		return nil, false
	}
	// roots are not visible, hence start one position before the root's subtree
	current, position := root, rootWeight-1
	for position != index {
		var next *Element
		for _, chid := range current.Children {
			child := s.elements[chid]
			w := child.visibleWeight()
			if index <= position+w {
				position++
				next = child
				break
			}
			position += w
		}
		if next == nil {
			tracer().Errorf("weights inconsistent below element %d", current.ID)
			return nil, false
		}
		current = next
	}
	return current, true
}
