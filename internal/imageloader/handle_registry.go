package imageloader

import "sync"

// handleEntry is one intern-table row keyed by path (spec §3 "Handle
// registry").
type handleEntry struct {
	handle      Handle
	refcount    int
	owningID    string
}

// HandleRegistry is the process-wide intern table for loaded image
// handles, keyed by path (spec §3 "Handle registry", §5 "Shared
// resources"). It is serialized by a mutex; Load and Unload are the only
// critical sections, and symbol resolution against an already-acquired
// handle is lock-free (spec §4.C "Thread safety").
type HandleRegistry struct {
	mu      sync.Mutex
	entries map[string]*handleEntry
	loader  ImageLoader
}

// NewHandleRegistry creates a registry bound to the given platform image
// loader. Tests that need isolation should create their own registry
// rather than sharing the process-global instance (spec §9 "Global
// mutable state").
func NewHandleRegistry(loader ImageLoader) *HandleRegistry {
	return &HandleRegistry{
		entries: make(map[string]*handleEntry),
		loader:  loader,
	}
}

// acquire either increments the refcount of an existing handle for path,
// or opens a fresh one via the platform loader, returning whether the
// handle was newly opened (spec §4.C "Handle interning").
func (r *HandleRegistry) acquire(path, componentID string) (Handle, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[path]; ok {
		entry.refcount++
		return entry.handle, false, nil
	}

	h, err := r.loader.Open(path)
	if err != nil {
		return nil, false, err
	}

	r.entries[path] = &handleEntry{handle: h, refcount: 1, owningID: componentID}
	return h, true, nil
}

// release decrements the refcount for path and reports whether it
// reached zero. It does not close the underlying handle — per spec
// §4.C "Unload", the image stays open in the registry until registry
// destruction.
func (r *HandleRegistry) release(path string) (reachedZero bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[path]
	if !exists {
		return false, false
	}
	if entry.refcount > 0 {
		entry.refcount--
	}
	return entry.refcount == 0, true
}

// LiveHandles reports the current refcount for path, or 0 if no handle is
// interned (used by tests verifying the spec §8 handle-registry
// invariant).
func (r *HandleRegistry) LiveHandles(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[path]
	if !ok {
		return 0
	}
	return entry.refcount
}

// Destroy closes every interned handle via the platform loader. This is
// the only point at which handles actually close (spec §4.C).
func (r *HandleRegistry) Destroy() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for path, entry := range r.entries {
		if err := r.loader.Close(entry.handle); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.entries, path)
	}
	return firstErr
}

var (
	globalOnce sync.Once
	global     *HandleRegistry
)

// Global returns the process-wide HandleRegistry singleton, creating it
// on first use with the native platform loader (spec §9 "Global mutable
// state": "The Handle registry is harder to isolate — its singleton
// nature is documented").
func Global() *HandleRegistry {
	globalOnce.Do(func() {
		global = NewHandleRegistry(NewNativeImageLoader())
	})
	return global
}
