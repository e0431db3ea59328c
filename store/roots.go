package store

// Capabilities are the feature flags a root reports when it is added.
type Capabilities struct {
	SupportsBasicProfiling bool
	SupportsStrictMode     bool
	SupportsTimeline       bool
	HasOwnerMetadata       bool
}

// rootRegistry tracks root ids in order of arrival, the renderer each root
// belongs to and the capabilities of each root.
type rootRegistry struct {
	roots        []int
	rootRenderer map[int]int
	rootCaps     map[int]Capabilities
	// OR-reduced over all roots
	supportsBasicProfiling bool
	supportsTimeline       bool
	hasOwnerMetadata       bool
}

func newRootRegistry() rootRegistry {
	return rootRegistry{
		rootRenderer: make(map[int]int),
		rootCaps:     make(map[int]Capabilities),
	}
}

func (reg *rootRegistry) registerRoot(id, rendererID int, caps Capabilities) {
	// roots are replaced, not appended in place: clients may still hold the
	// slice returned by Roots()
	roots := make([]int, len(reg.roots), len(reg.roots)+1)
	copy(roots, reg.roots)
	reg.roots = append(roots, id)
	reg.rootRenderer[id] = rendererID
	reg.rootCaps[id] = caps
}

func (reg *rootRegistry) unregisterRoot(id int) {
	roots := make([]int, 0, len(reg.roots))
	for _, r := range reg.roots {
		if r != id {
			roots = append(roots, r)
		}
	}
	reg.roots = roots
	delete(reg.rootRenderer, id)
	delete(reg.rootCaps, id)
}

// reduceCapabilities recomputes the global capability flags from all roots
// and returns an event for every flag which changed its value.
func (reg *rootRegistry) reduceCapabilities() []Event {
	prevBasic, prevTimeline, prevOwners := reg.supportsBasicProfiling, reg.supportsTimeline, reg.hasOwnerMetadata
	reg.supportsBasicProfiling, reg.supportsTimeline, reg.hasOwnerMetadata = false, false, false
	for _, caps := range reg.rootCaps {
		reg.supportsBasicProfiling = reg.supportsBasicProfiling || caps.SupportsBasicProfiling
		reg.supportsTimeline = reg.supportsTimeline || caps.SupportsTimeline
		reg.hasOwnerMetadata = reg.hasOwnerMetadata || caps.HasOwnerMetadata
	}
	var events []Event
	if reg.supportsBasicProfiling != prevBasic {
		events = append(events, Event{Kind: EventSupportsBasicProfiling, Value: reg.supportsBasicProfiling})
	}
	if reg.supportsTimeline != prevTimeline {
		events = append(events, Event{Kind: EventSupportsTimeline, Value: reg.supportsTimeline})
	}
	if reg.hasOwnerMetadata != prevOwners {
		events = append(events, Event{Kind: EventHasOwnerMetadata, Value: reg.hasOwnerMetadata})
	}
	return events
}

// Roots returns the ids of all roots in order of arrival. The returned slice
// is not modified by subsequent batches.
func (reg *rootRegistry) Roots() []int {
	return reg.roots
}

// RootCapabilities returns the capabilities a root reported.
func (reg *rootRegistry) RootCapabilities(rootID int) (Capabilities, bool) {
	caps, ok := reg.rootCaps[rootID]
	return caps, ok
}

// RendererIDForRoot returns the renderer a root belongs to.
func (reg *rootRegistry) RendererIDForRoot(rootID int) (int, bool) {
	r, ok := reg.rootRenderer[rootID]
	return r, ok
}

// SupportsBasicProfiling is true if any root supports basic profiling.
func (reg *rootRegistry) SupportsBasicProfiling() bool {
	return reg.supportsBasicProfiling
}

// SupportsTimeline is true if any root supports timeline profiling.
func (reg *rootRegistry) SupportsTimeline() bool {
	return reg.supportsTimeline
}

// HasOwnerMetadata is true if any root reports owner metadata.
func (reg *rootRegistry) HasOwnerMetadata() bool {
	return reg.hasOwnerMetadata
}

// RendererIDForElement returns the renderer of the root an element belongs to.
func (s *Store) RendererIDForElement(id int) (int, bool) {
	el, ok := s.elements[id]
	for ok && el.ParentID != 0 {
		el, ok = s.elements[el.ParentID]
	}
	if !ok {
		return 0, false
	}
	return s.RendererIDForRoot(el.ID)
}
