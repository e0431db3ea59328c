package store

// Action is a function type to operate on elements of a subtree.
type Action func(el *Element)

// walkSubtree calls action for the element with the given id and all of its
// descendants, parents before children and children in display order.
// Unknown ids are skipped.
//
// The walk uses an explicit stack: trees received from the operation log may
// be arbitrarily deep.
func (s *Store) walkSubtree(id int, action Action) {
	stack := []int{id}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		el, ok := s.elements[top]
		if !ok {
			continue
		}
		children := el.Children
		action(el)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// TopDown calls action for the element with the given id and all of its
// descendants, parents before children. Actions must not modify the store.
func (s *Store) TopDown(id int, action Action) {
	s.walkSubtree(id, action)
}

// Subtree returns the ids of an element and all of its descendants in
// pre-order.
func (s *Store) Subtree(id int) []int {
	var ids []int
	s.walkSubtree(id, func(el *Element) {
		ids = append(ids, el.ID)
	})
	return ids
}
