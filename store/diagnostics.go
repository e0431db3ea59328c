package store

import "sort"

// Diagnostics holds the number of errors and warnings reported for an element.
type Diagnostics struct {
	Errors   int
	Warnings int
}

// DiagnosticTuple locates an element with diagnostics within the flattened,
// visible forest.
type DiagnosticTuple struct {
	ID    int
	Index int
}

type diagnosticsIndex struct {
	entries      map[int]Diagnostics // only entries with a positive count
	errorCount   int
	warningCount int
	tuples       []DiagnosticTuple // ordered by Index; nil if invalid
}

func newDiagnosticsIndex() diagnosticsIndex {
	return diagnosticsIndex{entries: make(map[int]Diagnostics)}
}

// setDiagnostics stores the counts for an element, deleting the entry if
// both counts are zero.
func (di *diagnosticsIndex) setDiagnostics(id, errors, warnings int) {
	if errors > 0 || warnings > 0 {
		di.entries[id] = Diagnostics{Errors: errors, Warnings: warnings}
	} else {
		delete(di.entries, id)
	}
}

// dropDiagnostics deletes the entry of an element and reports if there was one.
func (di *diagnosticsIndex) dropDiagnostics(id int) bool {
	if _, ok := di.entries[id]; !ok {
		return false
	}
	delete(di.entries, id)
	return true
}

// resum recomputes the totals from scratch. A batch may add and remove
// diagnostics of the same element, so totals are never updated incrementally.
func (di *diagnosticsIndex) resum() {
	di.errorCount, di.warningCount = 0, 0
	for _, d := range di.entries {
		di.errorCount += d.Errors
		di.warningCount += d.Warnings
	}
}

func (di *diagnosticsIndex) invalidateTuples() {
	di.tuples = nil
}

// ErrorCount returns the total number of errors across all elements.
func (di *diagnosticsIndex) ErrorCount() int {
	return di.errorCount
}

// WarningCount returns the total number of warnings across all elements.
func (di *diagnosticsIndex) WarningCount() int {
	return di.warningCount
}

// DiagnosticsFor returns the diagnostics of an element.
func (di *diagnosticsIndex) DiagnosticsFor(id int) (Diagnostics, bool) {
	d, ok := di.entries[id]
	return d, ok
}

// ErrorAndWarningTuples returns all elements with diagnostics, ordered by
// their index in the visible forest. The list is cached until the next
// structural change of the tree.
func (s *Store) ErrorAndWarningTuples() []DiagnosticTuple {
	if s.tuples != nil {
		return s.tuples
	}
	ids := make([]int, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	tuples := make([]DiagnosticTuple, 0, len(ids))
	for _, id := range ids {
		index, ok := s.IndexOf(id)
		if !ok {
			continue
		}
		// insert after all tuples with index ≤ this one
		at := sort.Search(len(tuples), func(i int) bool {
			return tuples[i].Index > index
		})
		tuples = append(tuples, DiagnosticTuple{})
		copy(tuples[at+1:], tuples[at:])
		tuples[at] = DiagnosticTuple{ID: id, Index: index}
	}
	s.tuples = tuples
	tracer().Debugf("rebuilt diagnostics index with %d entries", len(tuples))
	return tuples
}

// NthDiagnostic returns the n-th element with diagnostics in display order,
// wrapping around in both directions. It is used to step through errors and
// warnings.
func (s *Store) NthDiagnostic(n int) (DiagnosticTuple, bool) {
	tuples := s.ErrorAndWarningTuples()
	if len(tuples) == 0 {
		return DiagnosticTuple{}, false
	}
	n %= len(tuples)
	if n < 0 {
		n += len(tuples)
	}
	return tuples[n], true
}
