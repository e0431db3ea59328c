package store

import (
	"github.com/npillmayer/elemtree/protocol"
)

// Store is the mirror of a remote element forest.
type Store struct {
	props
	elements          map[int]*Element
	weightAcrossRoots int // number of visible elements across all roots
	revision          int // incremented once per batch
	closed            bool
	rootRegistry
	ownerIndex
	diagnosticsIndex
	listeners
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{props: defaultProps()}
	for _, option := range opts {
		s.props = option.config(s.props)
	}
	s.init()
	return s
}

func (s *Store) init() {
	s.elements = make(map[int]*Element)
	s.weightAcrossRoots = 0
	s.rootRegistry = newRootRegistry()
	s.ownerIndex = newOwnerIndex()
	s.diagnosticsIndex = newDiagnosticsIndex()
}

// Close drops all elements and listeners. A closed store rejects further
// batches with ErrClosed.
func (s *Store) Close() {
	if s == nil || s.closed {
		return
	}
	s.init()
	s.listeners = listeners{}
	s.closed = true
	tracer().Debugf("store closed at revision %d", s.revision)
}

// SetBridgeProtocol establishes the bridge protocol for subsequent batches.
// Until a protocol is established, the newest payload shape is assumed.
func (s *Store) SetBridgeProtocol(b protocol.Bridge) {
	s.bridge = &b
	tracer().Infof("store uses %s", b)
}

// BridgeProtocol returns the established bridge protocol, if any.
func (s *Store) BridgeProtocol() (protocol.Bridge, bool) {
	if s.bridge == nil {
		return protocol.Bridge{}, false
	}
	return *s.bridge, true
}

// Element returns the element with the given id.
func (s *Store) Element(id int) (*Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

// Contains returns true if an element with the given id is in the store.
func (s *Store) Contains(id int) bool {
	_, ok := s.elements[id]
	return ok
}

// Len returns the number of elements in the store, including roots and
// elements hidden by collapsed ancestors.
func (s *Store) Len() int {
	return len(s.elements)
}

// Revision returns the number of batches applied so far.
func (s *Store) Revision() int {
	return s.revision
}

// NumElements returns the number of visible elements across all roots.
func (s *Store) NumElements() int {
	return s.weightAcrossRoots
}

// CollapseByDefault returns the collapse state new elements are created with.
func (s *Store) CollapseByDefault() bool {
	return s.collapseByDefault
}
