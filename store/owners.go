package store

import "sort"

// ownerIndex maps owner ids to the ids of elements they created. The relation
// is independent of the tree structure: an owner may be anywhere in the
// forest, or not in the forest at all.
type ownerIndex struct {
	owners map[int]map[int]struct{}
}

func newOwnerIndex() ownerIndex {
	return ownerIndex{owners: make(map[int]map[int]struct{})}
}

func (oi *ownerIndex) own(ownerID, id int) {
	set, ok := oi.owners[ownerID]
	if !ok {
		set = make(map[int]struct{})
		oi.owners[ownerID] = set
	}
	set[id] = struct{}{}
}

// disown removes id as an owner and as an owned element.
func (oi *ownerIndex) disown(id, ownerID int) {
	delete(oi.owners, id)
	if ownerID > 0 {
		if set, ok := oi.owners[ownerID]; ok {
			delete(set, id)
		}
	}
}

// OwnedBy returns the ids of all elements owned by ownerID, in ascending order.
func (oi *ownerIndex) OwnedBy(ownerID int) []int {
	set := oi.owners[ownerID]
	if len(set) == 0 {
		return nil
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
