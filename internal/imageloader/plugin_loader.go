package imageloader

import (
	"fmt"
	"plugin"
)

// NativeImageLoader implements ImageLoader over the standard library's
// plugin package, which is NexusLink's concrete "platform image loader"
// (SPEC_FULL.md "DOMAIN STACK"). Go plugins cannot be unloaded once
// opened — Close is therefore a documented no-op, which happens to match
// the spec's own handle-registry policy precisely: "the image itself is
// NOT closed... Handles close only during Handle-registry destruction"
// (spec §4.C "Unload").
type NativeImageLoader struct{}

// NewNativeImageLoader returns the production ImageLoader.
func NewNativeImageLoader() *NativeImageLoader {
	return &NativeImageLoader{}
}

func (l *NativeImageLoader) Open(path string) (Handle, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return p, nil
}

// Close is a deliberate no-op: the Go runtime provides no mechanism to
// unload a loaded plugin. The handle remains resolvable for the lifetime
// of the process, which matches the spec's own "handles close only during
// Handle-registry destruction" contract.
func (l *NativeImageLoader) Close(h Handle) error {
	return nil
}

func (l *NativeImageLoader) Resolve(h Handle, symbolName string) (any, bool) {
	p, ok := h.(*plugin.Plugin)
	if !ok || p == nil {
		return nil, false
	}
	sym, err := p.Lookup(symbolName)
	if err != nil {
		return nil, false
	}
	return sym, true
}
