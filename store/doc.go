/*
Package store mirrors a remote element tree from a log of tree operations.

An instrumented process renders a forest of elements. Every change to this
forest is serialized into a batch of integers (see package protocol for the
vocabulary). A Store consumes these batches one by one and keeps a local
replica of the forest, together with a couple of derived structures:

   weights        number of visible elements in every subtree, for windowing
   owners         owner id → ids of the elements the owner created
   diagnostics    error and warning counts per element, totals, and an
                  index of diagnostics in display order
   capabilities   per-root feature flags, OR-reduced over all roots

Batches are applied in place and in arrival order. Clients create a store
with New, feed it with ApplyBatch and query it between batches:

    s := store.New(store.WithCollapseByDefault(false))
    report, err := s.ApplyBatch(ops)

A Store is not safe for concurrent use. Clients receiving batches from
several goroutines have to serialize calls to ApplyBatch.

Weights

Every element carries the size of its visible subtree. Non-root elements
count themselves, roots do not (roots are never displayed). A collapsed
element hides its descendants: changes below a collapsed element update the
weights up to and including the collapsed element, but neither its ancestors
nor the grand total across all roots. To its parent, a collapsed child
contributes a weight of 1.

Errors

Every inconsistency between the operation log and the mirror is fatal for
the batch at hand. ApplyBatch stops at the offending operation and returns a
*BatchError wrapping one of the Err… sentinels of this package. Operations
before the offending one stay applied; the offending operation does not
change the mirror. A removal of several ids is checked as a whole before
any of them is removed. Derived state (totals, capability flags, revision) is
reconciled with the partially applied batch before ApplyBatch returns.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package store

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'elemtree.store'.
func tracer() tracing.Trace {
	return tracing.Select("elemtree.store")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("elemtree.store: "+msg, msgargs...)
		panic(msg)
	}
}
