package protocol

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidBridge is returned for bridge protocol records which cannot be
// used for negotiation.
var ErrInvalidBridge = errors.New("invalid bridge protocol")

// Bridge is the protocol record negotiated between frontend and backend.
// MinCompatible is the lowest frontend version supporting Version.
// MaxCompatible is only set once Version has been superseded; nil means
// "open ended".
type Bridge struct {
	Version       int
	MinCompatible *semver.Version
	MaxCompatible *semver.Version
}

// NewBridge creates a bridge protocol record. min and max are semantic version
// strings; max may be empty.
func NewBridge(version int, min, max string) (Bridge, error) {
	b := Bridge{Version: version}
	if version < 0 {
		return b, fmt.Errorf("%w: negative version %d", ErrInvalidBridge, version)
	}
	var err error
	if min != "" {
		if b.MinCompatible, err = semver.NewVersion(min); err != nil {
			return b, fmt.Errorf("%w: min version %q: %v", ErrInvalidBridge, min, err)
		}
	}
	if max != "" {
		if b.MaxCompatible, err = semver.NewVersion(max); err != nil {
			return b, fmt.Errorf("%w: max version %q: %v", ErrInvalidBridge, max, err)
		}
	}
	if b.MinCompatible != nil && b.MaxCompatible != nil && b.MaxCompatible.LessThan(b.MinCompatible) {
		return b, fmt.Errorf("%w: range %s…%s is empty", ErrInvalidBridge, min, max)
	}
	tracer().Debugf("bridge protocol v%d, compatible %s…%s", version, min, max)
	return b, nil
}

// HasRootTrailer reports whether root additions carry the trailing fields
// for strict mode support and owner metadata. A nil bridge stands for an
// unknown protocol, for which the newest payload shape is assumed.
func (b *Bridge) HasRootTrailer() bool {
	return b == nil || b.Version >= 2
}

// Supports checks if a frontend with the given semantic version is able to
// talk this bridge protocol.
func (b Bridge) Supports(frontend string) (bool, error) {
	v, err := semver.NewVersion(frontend)
	if err != nil {
		return false, fmt.Errorf("frontend version %q: %w", frontend, err)
	}
	if b.MinCompatible != nil && v.LessThan(b.MinCompatible) {
		return false, nil
	}
	if b.MaxCompatible != nil && v.GreaterThan(b.MaxCompatible) {
		return false, nil
	}
	return true, nil
}

func (b Bridge) String() string {
	min, max := "*", "*"
	if b.MinCompatible != nil {
		min = b.MinCompatible.String()
	}
	if b.MaxCompatible != nil {
		max = b.MaxCompatible.String()
	}
	return fmt.Sprintf("bridge(v%d %s…%s)", b.Version, min, max)
}
