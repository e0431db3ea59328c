package store

import "github.com/npillmayer/elemtree/protocol"

type props struct {
	collapseByDefault bool
	devChecks         bool
	bridge            *protocol.Bridge
}

func defaultProps() props {
	return props{
		collapseByDefault: true,
		devChecks:         true,
	}
}

// Option is a type to help initializing stores at creation time.
type Option struct {
	config func(props) props
}

// WithCollapseByDefault sets the collapse state of newly added non-root
// elements. Default is true.
//
// Use it like this:
//
//	s := store.New(store.WithCollapseByDefault(false))
func WithCollapseByDefault(collapse bool) Option {
	return Option{config: func(p props) props {
		p.collapseByDefault = collapse
		return p
	}}
}

// WithDevChecks switches additional consistency checks on or off. These
// checks are costly and never fatal; violations are traced as errors and
// reported as warnings of a batch. Default is true.
func WithDevChecks(enabled bool) Option {
	return Option{config: func(p props) props {
		p.devChecks = enabled
		return p
	}}
}

// WithBridgeProtocol establishes the bridge protocol at creation time.
// See (*Store).SetBridgeProtocol.
func WithBridgeProtocol(b protocol.Bridge) Option {
	return Option{config: func(p props) props {
		p.bridge = &b
		return p
	}}
}
