package imageloader

import (
	"fmt"
	"sync"

	"github.com/obinexus/nexuslink/internal/component"
	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// componentKey uniquely identifies a live Component by (path, id) — the
// spec's invariant "at most one live Component per (path, id); duplicate
// load(path,id) increments refcount" (spec §3 "Component").
type componentKey struct {
	path string
	id   string
}

// Loader ties the HandleRegistry to Component lifecycle: it interns
// handles by path, resolves the optional nexus_component_init/cleanup
// hooks, and hands back refcounted Component records (spec §4.C).
type Loader struct {
	handles *HandleRegistry
	loader  ImageLoader

	mu         sync.Mutex
	components map[componentKey]*component.Component
}

// NewLoader creates a Loader over the given HandleRegistry and
// ImageLoader. Callers typically pass imageloader.Global() and a matching
// production loader, or a fresh registry plus FakeImageLoader in tests.
func NewLoader(handles *HandleRegistry, loader ImageLoader) *Loader {
	return &Loader{
		handles:    handles,
		loader:     loader,
		components: make(map[componentKey]*component.Component),
	}
}

// Load acquires the handle for path (interning across duplicate loads),
// invokes the optional nexus_component_init hook with ctx on first
// acquisition, and returns the refcounted Component record
// (spec §4.C "Handle interning"). Every call — cache hit or miss —
// consults the Handle registry, so the registry's refcount for path
// always equals the number of outstanding Load calls against it, paired
// one-to-one with Unload (spec §4.C "Handle interning": "duplicate
// load(path,id) increments refcount").
func (l *Loader) Load(ctx any, path, componentID string) (*component.Component, error) {
	key := componentKey{path: path, id: componentID}

	l.mu.Lock()
	existing, cached := l.components[key]
	l.mu.Unlock()

	if cached {
		if _, _, err := l.handles.acquire(path, componentID); err != nil {
			return nil, nxerrors.NewImageOpenFailed(path, err)
		}
		existing.Retain()
		return existing, nil
	}

	h, freshlyOpened, err := l.handles.acquire(path, componentID)
	if err != nil {
		return nil, nxerrors.NewImageOpenFailed(path, err)
	}

	comp := component.New(componentID, path)
	comp.Handle = h
	comp.State = component.StateLoaded
	comp.Retain()

	if freshlyOpened {
		if raw, ok := l.loader.Resolve(h, initSymbolName); ok {
			initFn, ok := raw.(ComponentInitFunc)
			if !ok {
				if fnPtr, ok2 := raw.(*ComponentInitFunc); ok2 && fnPtr != nil {
					initFn = *fnPtr
					ok = true
				}
			}
			if ok && initFn != nil {
				if !initFn(ctx) {
					l.handles.release(path)
					return nil, nxerrors.NewComponentInitFailed(path, fmt.Errorf("nexus_component_init returned false"))
				}
			}
		}
	}

	l.mu.Lock()
	l.components[key] = comp
	l.mu.Unlock()

	return comp, nil
}

// ResolveSymbol asks the platform image loader for symbolName against
// comp's handle. It does not populate the exported table automatically —
// callers that wish to publish a resolved symbol call symbol.Table.Add
// themselves (spec §4.C "Symbol resolution").
func (l *Loader) ResolveSymbol(comp *component.Component, symbolName string) (any, bool) {
	if comp == nil || comp.Handle == nil {
		return nil, false
	}
	return l.loader.Resolve(comp.Handle, symbolName)
}

// Unload decrements comp's refcount and, paired one-to-one with the Load
// call that incremented it, releases the registry's handle refcount for
// comp.Path too. Only when comp's own refcount reaches zero does it
// resolve and invoke the optional nexus_component_cleanup hook and drop
// the Component record. The underlying image handle itself is released
// from the HandleRegistry but — per the registry's own contract — is
// only actually closed at registry Destroy time (spec §4.C "Unload").
func (l *Loader) Unload(ctx any, comp *component.Component) error {
	if comp == nil {
		return nil
	}

	zero := comp.Release()
	l.handles.release(comp.Path)
	if !zero {
		return nil
	}

	if raw, ok := l.loader.Resolve(comp.Handle, cleanupSymbolName); ok {
		if cleanupFn, ok := raw.(ComponentCleanupFunc); ok && cleanupFn != nil {
			cleanupFn(ctx)
		}
	}

	comp.State = component.StateUnloaded

	l.mu.Lock()
	delete(l.components, componentKey{path: comp.Path, id: comp.ID})
	l.mu.Unlock()

	return nil
}
