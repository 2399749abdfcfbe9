// Package imageloader implements the NexusLink component loader
// (spec §4.C): handle interning across duplicate loads, scoped
// initialization/cleanup hooks, and symbol resolution from a loaded
// image. The platform dynamic-loading primitive itself is an external
// collaborator (spec §1); this package depends on it only through the
// ImageLoader interface, with a default implementation backed by the
// standard library's plugin package.
package imageloader

// Handle is the opaque platform handle for one opened image.
type Handle any

// ImageLoader is the platform collaborator contract (spec §6 "Image
// loader"): open a path with lazy symbol-resolution semantics, close a
// previously opened handle, and resolve a symbol by name.
type ImageLoader interface {
	Open(path string) (Handle, error)
	Close(h Handle) error
	Resolve(h Handle, symbolName string) (any, bool)
}

// ComponentInitFunc is the optional well-known "nexus_component_init"
// entry point (spec §6 "Component ABI"). ctx is passed as `any` to avoid
// an import cycle with the Context package; component implementations
// type-assert it back to their expected context type.
type ComponentInitFunc func(ctx any) bool

// ComponentCleanupFunc is the optional well-known "nexus_component_cleanup"
// entry point.
type ComponentCleanupFunc func(ctx any)

const (
	initSymbolName    = "nexus_component_init"
	cleanupSymbolName = "nexus_component_cleanup"
)
