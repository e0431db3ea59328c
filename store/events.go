package store

import "github.com/npillmayer/elemtree/protocol"

// EventKind tells what changed in a store.
type EventKind int

// Kinds of events emitted at the end of a batch.
const (
	EventRoots                  EventKind = iota // the set of roots changed
	EventSupportsBasicProfiling                  // global basic profiling flag flipped
	EventSupportsTimeline                        // global timeline profiling flag flipped
	EventHasOwnerMetadata                        // global owner metadata flag flipped
	EventMutated                                 // a batch has been applied
)

func (k EventKind) String() string {
	switch k {
	case EventRoots:
		return "roots"
	case EventSupportsBasicProfiling:
		return "rootSupportsBasicProfiling"
	case EventSupportsTimeline:
		return "rootSupportsTimelineProfiling"
	case EventHasOwnerMetadata:
		return "hasOwnerMetadata"
	case EventMutated:
		return "mutated"
	}
	return "unknown"
}

// Event is delivered to subscribers of a store.
type Event struct {
	Kind   EventKind
	Value  bool         // new value of a capability flag
	Report *BatchReport // set for EventMutated
}

// BatchReport summarizes the effects of a batch, for consumers such as
// selection adjustment and UI refresh.
type BatchReport struct {
	Revision   int
	RendererID int
	Added      []int                   // ids of added non-root elements, in order
	Removed    map[int]int             // removed id → id of its former parent
	OpCounts   map[protocol.Opcode]int // number of operations applied, per opcode
	Warnings   []string                // soft consistency violations
	Complete   bool                    // false if a fatal error stopped the batch
}

func newBatchReport(rendererID int) *BatchReport {
	return &BatchReport{
		RendererID: rendererID,
		Removed:    make(map[int]int),
		OpCounts:   make(map[protocol.Opcode]int),
	}
}

type subscription struct {
	id int
	fn func(Event)
}

type listeners struct {
	subs    []subscription
	nextSub int
}

// Subscribe registers a function to be called for every event of the store.
// Events are delivered synchronously, after the state of a batch has been
// reconciled. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(events []Event) {
	subs := s.subs
	for _, ev := range events {
		for _, sub := range subs {
			sub.fn(ev)
		}
	}
}
