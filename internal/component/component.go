// Package component defines the Component record shared between the image
// loader, the symbol registry's owning-id checks, and the pipeline engine
// (spec §3 "Component (loaded image)").
package component

import "time"

// State is a component's position in the Unloaded -> Loaded -> Initialized
// lifecycle state machine (spec §4.H "Initialization").
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateInitialized:
		return "initialized"
	default:
		return "unloaded"
	}
}

// RangeState is the lifecycle classification named in the glossary
// (legacy/stable/experimental). NexusLink treats it as advisory metadata
// logged at initialization time rather than an enforced compatibility
// policy — see SPEC_FULL.md's supplemental-features note.
type RangeState string

const (
	RangeStable       RangeState = "stable"
	RangeLegacy       RangeState = "legacy"
	RangeExperimental RangeState = "experimental"
)

// ProcessFunc is the runtime-resolved "process function" shape every
// required component must expose (spec §6 "Component ABI"): given the
// component record itself plus an input and output stream, it returns a
// result error (nil on success).
type ProcessFunc func(c *Component, input, output any) error

// LifecycleHook is the shape of a component's optional init/term/abort
// entry points, distinct from the image-level nexus_component_init/
// cleanup hooks the handle registry resolves once per handle
// (spec §4.H "On a loaded component, call any registered init lifecycle
// hook").
type LifecycleHook func(ctx any) error

// Component is one loaded image (spec §3 "Component (loaded image)").
type Component struct {
	ID          string
	Path        string
	Handle      any // opaque handle, owned by the image loader's handle registry
	RangeState  RangeState
	Optional    bool
	Reentrant   bool // supports_reentrance, consulted by the MPS resolver
	MaxPasses   int  // 0 means unbounded (subject to the pipeline's global cap)
	State       State
	Process     ProcessFunc
	Init        LifecycleHook
	Term        LifecycleHook
	Abort       LifecycleHook
	LastRunTime time.Duration

	refs int
}

// New creates a placeholder Component record in the Unloaded state. No
// image is opened until the pipeline engine's initialization phase calls
// the image loader (spec §4.H "Creation": "No images are loaded yet").
func New(id, path string) *Component {
	return &Component{ID: id, Path: path, State: StateUnloaded, RangeState: RangeStable}
}

// Refcount returns how many times this Component's handle has been
// acquired without a matching release.
func (c *Component) Refcount() int {
	if c == nil {
		return 0
	}
	return c.refs
}

// Retain increments the refcount, mirroring handle-registry interning
// (spec §3 "Component" invariant: duplicate load(path,id) increments
// refcount).
func (c *Component) Retain() {
	c.refs++
}

// Release decrements the refcount and reports whether it reached zero.
func (c *Component) Release() bool {
	if c.refs > 0 {
		c.refs--
	}
	return c.refs == 0
}
