package store

import (
	"errors"
	"fmt"

	"github.com/npillmayer/elemtree/protocol"
	"github.com/npillmayer/elemtree/strtab"
)

// batch is the decoding state of a single call to ApplyBatch.
type batch struct {
	ops                []int
	pos                int // cursor into ops
	rendererID         int
	strings            strtab.Table
	report             *BatchReport
	rootsChanged       bool
	diagnosticsChanged bool
}

// read consumes the next n integers of the batch.
func (b *batch) read(n int) ([]int, error) {
	if n < 0 || b.pos+n > len(b.ops) {
		return nil, fmt.Errorf("%w: need %d integers at %d, batch has %d", ErrTruncatedBatch, n, b.pos, len(b.ops))
	}
	fields := b.ops[b.pos : b.pos+n]
	b.pos += n
	return fields, nil
}

// lookup resolves a string table index.
func (b *batch) lookup(id, index int) (string, bool, error) {
	s, ok, err := b.strings.Lookup(index)
	if err != nil {
		return "", false, &BatchError{ID: id, Err: err}
	}
	return s, ok, nil
}

// ApplyBatch applies a batch of tree operations to the store.
//
// A batch starts with the renderer id and a reserved slot, followed by the
// string table and a sequence of operations. Operations are applied in
// order; later operations may refer to elements added by earlier ones.
//
// The returned report lists added and removed elements. If an operation is
// inconsistent with the mirror, ApplyBatch stops and returns a *BatchError
// together with a report of the operations applied so far. See the package
// documentation for the state the store is left in.
func (s *Store) ApplyBatch(ops []int) (*BatchReport, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if len(ops) < 3 {
		return nil, &BatchError{Err: fmt.Errorf("%w: batch of length %d has no header", ErrTruncatedBatch, len(ops))}
	}
	tracer().Debugf("apply batch of %d integers: %v", len(ops), ops)
	b := &batch{ops: ops, rendererID: ops[0], report: newBatchReport(ops[0])}
	tab, next, err := strtab.Decode(ops, 2)
	if err != nil {
		return nil, &BatchError{Offset: 2, Err: err}
	}
	b.strings, b.pos = tab, next
	for b.pos < len(ops) {
		op, offset := protocol.Opcode(ops[b.pos]), b.pos
		if err = s.dispatch(b, op); err != nil {
			var berr *BatchError
			if !errors.As(err, &berr) {
				berr = &BatchError{Err: err}
			}
			berr.Op, berr.Offset = op, offset
			tracer().Errorf("batch stopped: %v", berr)
			s.commit(b)
			return b.report, berr
		}
		b.report.OpCounts[op]++
	}
	b.report.Complete = true
	s.commit(b)
	return b.report, nil
}

func (s *Store) dispatch(b *batch, op protocol.Opcode) error {
	switch op {
	case protocol.OpAdd:
		return s.add(b)
	case protocol.OpRemove:
		return s.remove(b)
	case protocol.OpReorderChildren:
		return s.reorderChildren(b)
	case protocol.OpUpdateTreeBaseDuration:
		// base durations are only sent while profiling, which the mirror
		// does not track
		_, err := b.read(3)
		return err
	case protocol.OpUpdateErrorsOrWarnings:
		return s.updateErrorsOrWarnings(b)
	case protocol.OpRemoveRoot:
		return s.removeRoot(b)
	case protocol.OpSetSubtreeMode:
		return s.setSubtreeMode(b)
	}
	return fmt.Errorf("%w %q", ErrUnsupportedOperation, op)
}

// commit reconciles derived state with the operations applied by a batch
// and notifies subscribers.
func (s *Store) commit(b *batch) {
	s.revision++
	b.report.Revision = s.revision
	// indices of elements may have changed with any structural change
	s.invalidateTuples()
	if b.diagnosticsChanged {
		s.resum()
	}
	var events []Event
	if b.rootsChanged {
		events = append(events, Event{Kind: EventRoots})
		events = append(events, s.reduceCapabilities()...)
	}
	events = append(events, Event{Kind: EventMutated, Report: b.report})
	tracer().Infof("revision %d: %d added, %d removed, %d visible elements",
		s.revision, len(b.report.Added), len(b.report.Removed), s.weightAcrossRoots)
	tracer().Debugf("store after batch:\n%s", s)
	s.emit(events)
}
