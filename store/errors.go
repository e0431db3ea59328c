package store

import (
	"errors"
	"fmt"

	"github.com/npillmayer/elemtree/protocol"
)

// Consistency errors. All of them are fatal for the batch they occur in: the
// operation log and the mirror have diverged, either because of a transport
// problem or because of a protocol version mismatch.
var (
	// ErrDuplicateID is returned if an element is added with an id already in use.
	ErrDuplicateID = errors.New("duplicate element id")

	// ErrInvalidID is returned if an element is added with an id ≤ 0.
	ErrInvalidID = errors.New("invalid element id")

	// ErrUnknownParent is returned if an element refers to a parent not in the store.
	ErrUnknownParent = errors.New("unknown parent element")

	// ErrUnknownID is returned if an operation refers to an element not in the store.
	ErrUnknownID = errors.New("unknown element id")

	// ErrNonLeafRemoval is returned if an element is removed before its children.
	ErrNonLeafRemoval = errors.New("element removed before its children")

	// ErrChildCountMismatch is returned if a reorder operation would add or remove children.
	ErrChildCountMismatch = errors.New("children cannot be added or removed during a reorder operation")

	// ErrNotRoot is returned if a root removal names an element which is not a root.
	ErrNotRoot = errors.New("element is not a root")

	// ErrUnsupportedOperation is returned for unknown opcodes.
	ErrUnsupportedOperation = errors.New("unsupported bridge operation")

	// ErrTruncatedBatch is returned if an operation's payload runs past the end of the batch.
	ErrTruncatedBatch = errors.New("batch truncated")
)

// ErrClosed is returned when applying batches to a closed store.
var ErrClosed = errors.New("store is closed")

// BatchError describes the operation which stopped a batch.
type BatchError struct {
	Op     protocol.Opcode // opcode of the failing operation, 0 for the batch header
	Offset int             // position of the opcode within the batch
	ID     int             // element id the operation referred to, if any
	Err    error           // wraps one of the Err… sentinels or a strtab error
}

func (e *BatchError) Error() string {
	if e.Op == 0 {
		return fmt.Sprintf("batch header at %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("operation %s at %d: %v", e.Op, e.Offset, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// elementError creates a BatchError for an element id. Op and Offset are
// filled in by the dispatcher.
func elementError(id int, sentinel error, format string, args ...interface{}) error {
	return &BatchError{
		ID:  id,
		Err: fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, args...)...),
	}
}
