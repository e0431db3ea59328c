package protocol

import "fmt"

// Opcode tags an operation within a batch.
type Opcode int

// Opcodes of the operation log. Every opcode is followed by a payload of
// integers, the length of which depends on the opcode.
const (
	OpAdd                    Opcode = 1 // add a root or a child element
	OpRemove                 Opcode = 2 // remove a list of leaf elements
	OpReorderChildren        Opcode = 3 // permute the children of an element
	OpUpdateTreeBaseDuration Opcode = 4 // profiling only, ignored by the mirror
	OpUpdateErrorsOrWarnings Opcode = 5 // set diagnostic counts of an element
	OpRemoveRoot             Opcode = 6 // remove a root and its complete subtree
	OpSetSubtreeMode         Opcode = 7 // set the mode of a subtree
)

var opcodeNames = map[Opcode]string{
	OpAdd:                    "add",
	OpRemove:                 "remove",
	OpReorderChildren:        "reorder-children",
	OpUpdateTreeBaseDuration: "update-tree-base-duration",
	OpUpdateErrorsOrWarnings: "update-errors-or-warnings",
	OpRemoveRoot:             "remove-root",
	OpSetSubtreeMode:         "set-subtree-mode",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("opcode(%d)", int(op))
}

// Known reports whether op is part of the protocol.
func (op Opcode) Known() bool {
	_, ok := opcodeNames[op]
	return ok
}

// Opcodes returns all known opcodes in ascending order.
func Opcodes() []Opcode {
	return []Opcode{OpAdd, OpRemove, OpReorderChildren, OpUpdateTreeBaseDuration,
		OpUpdateErrorsOrWarnings, OpRemoveRoot, OpSetSubtreeMode}
}

// --- Element types ---------------------------------------------------------

// ElementType is the kind of a mirrored element.
type ElementType int

// Element types as transported by the operation log. The numbering has gaps
// (3 and 4 are no longer in use).
const (
	ElementTypeClass          ElementType = 1
	ElementTypeContext        ElementType = 2
	ElementTypeFunction       ElementType = 5
	ElementTypeForwardRef     ElementType = 6
	ElementTypeHostComponent  ElementType = 7
	ElementTypeMemo           ElementType = 8
	ElementTypeOtherOrUnknown ElementType = 9
	ElementTypeProfiler       ElementType = 10
	ElementTypeRoot           ElementType = 11
	ElementTypeSuspense       ElementType = 12
	ElementTypeSuspenseList   ElementType = 13
	ElementTypeTracingMarker  ElementType = 14
)

var elementTypeNames = map[ElementType]string{
	ElementTypeClass:          "class",
	ElementTypeContext:        "context",
	ElementTypeFunction:       "function",
	ElementTypeForwardRef:     "forward-ref",
	ElementTypeHostComponent:  "host",
	ElementTypeMemo:           "memo",
	ElementTypeOtherOrUnknown: "other",
	ElementTypeProfiler:       "profiler",
	ElementTypeRoot:           "root",
	ElementTypeSuspense:       "suspense",
	ElementTypeSuspenseList:   "suspense-list",
	ElementTypeTracingMarker:  "tracing-marker",
}

func (t ElementType) String() string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// HasHOCNames reports whether display names of elements of type t may carry
// wrapper (higher-order component) names.
func (t ElementType) HasHOCNames() bool {
	switch t {
	case ElementTypeClass, ElementTypeForwardRef, ElementTypeFunction, ElementTypeMemo:
		return true
	}
	return false
}

// --- Capabilities and modes ------------------------------------------------

// Profiling capability bits of a root addition.
const (
	ProfilingFlagBasicSupport    = 0b01
	ProfilingFlagTimelineSupport = 0b10
)

// ProfilingFlags decodes the capability bit mask of a root addition.
func ProfilingFlags(bits int) (basic, timeline bool) {
	return bits&ProfilingFlagBasicSupport != 0, bits&ProfilingFlagTimelineSupport != 0
}

// StrictMode is the subtree mode denoting a compliant subtree.
const StrictMode = 1
