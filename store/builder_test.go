package store

import (
	"testing"

	"github.com/npillmayer/elemtree/protocol"
	"github.com/npillmayer/elemtree/strtab"
)

// batchBuilder assembles operation batches for tests.
type batchBuilder struct {
	renderer int
	slot1    int
	strs     []string
	ops      []int
}

func newBatch() *batchBuilder {
	return &batchBuilder{renderer: 1}
}

func (bb *batchBuilder) str(s string) int {
	if s == "" {
		return 0
	}
	for i, t := range bb.strs {
		if t == s {
			return i + 1
		}
	}
	bb.strs = append(bb.strs, s)
	return len(bb.strs)
}

// root adds a compliant root without profiling support.
func (bb *batchBuilder) root(id int) *batchBuilder {
	return bb.rootWith(id, 1, 0, 0, 0)
}

func (bb *batchBuilder) rootWith(id, compliant, caps, strict, owners int) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpAdd), id, int(protocol.ElementTypeRoot), compliant, caps, strict, owners)
	return bb
}

// rootV1 adds a root in the payload shape of bridge protocol version 1.
func (bb *batchBuilder) rootV1(id, compliant, caps int) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpAdd), id, int(protocol.ElementTypeRoot), compliant, caps)
	return bb
}

func (bb *batchBuilder) child(id, parent int) *batchBuilder {
	return bb.childWith(id, protocol.ElementTypeHostComponent, parent, 0, "", "")
}

func (bb *batchBuilder) childWith(id int, typ protocol.ElementType, parent, owner int, name, key string) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpAdd), id, int(typ), parent, owner, bb.str(name), bb.str(key))
	return bb
}

func (bb *batchBuilder) remove(ids ...int) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpRemove), len(ids))
	bb.ops = append(bb.ops, ids...)
	return bb
}

func (bb *batchBuilder) reorder(id int, children ...int) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpReorderChildren), id, len(children))
	bb.ops = append(bb.ops, children...)
	return bb
}

func (bb *batchBuilder) duration(id, d int) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpUpdateTreeBaseDuration), id, d)
	return bb
}

func (bb *batchBuilder) diagnostics(id, errors, warnings int) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpUpdateErrorsOrWarnings), id, errors, warnings)
	return bb
}

func (bb *batchBuilder) removeRoot(id int) *batchBuilder {
	bb.slot1 = id
	bb.ops = append(bb.ops, int(protocol.OpRemoveRoot))
	return bb
}

func (bb *batchBuilder) mode(id, mode int) *batchBuilder {
	bb.ops = append(bb.ops, int(protocol.OpSetSubtreeMode), id, mode)
	return bb
}

func (bb *batchBuilder) raw(ints ...int) *batchBuilder {
	bb.ops = append(bb.ops, ints...)
	return bb
}

func (bb *batchBuilder) ints() []int {
	batch := []int{bb.renderer, bb.slot1}
	batch = append(batch, strtab.Encode(bb.strs...)...)
	return append(batch, bb.ops...)
}

// mustApply applies a batch and fails the test on error.
func mustApply(t *testing.T, s *Store, bb *batchBuilder) *BatchReport {
	t.Helper()
	report, err := s.ApplyBatch(bb.ints())
	if err != nil {
		t.Fatalf("expected batch to apply cleanly, got %v", err)
	}
	return report
}

// checkWeights recomputes all weights independently and compares them to
// the weights maintained by the store.
func checkWeights(t *testing.T, s *Store) {
	t.Helper()
	var expected func(id int) int
	expected = func(id int) int {
		el := s.elements[id]
		w := 1
		if el.IsRoot() {
			w = 0
		}
		for _, chid := range el.Children {
			ch := s.elements[chid]
			if ch.ParentID != id {
				t.Errorf("expected child %d to have parent %d, has %d", chid, id, ch.ParentID)
			}
			sub := expected(chid)
			if ch.IsCollapsed {
				w++
			} else {
				w += sub
			}
		}
		if el.Weight != w {
			t.Errorf("expected weight of %d to be %d, is %d", id, w, el.Weight)
		}
		return w
	}
	total := 0
	for _, rootID := range s.Roots() {
		total += expected(rootID)
	}
	if s.NumElements() != total {
		t.Errorf("expected total weight to be %d, is %d", total, s.NumElements())
	}
}
