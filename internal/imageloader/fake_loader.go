package imageloader

import "fmt"

// FakeImage is a registered in-memory stand-in for a native component
// image, keyed by path. It is exported (not a _test.go helper) so other
// packages' tests — notably the pipeline engine — can register fake
// components without needing a real compiled plugin.
type FakeImage struct {
	Path    string
	Symbols map[string]any
	Opens   int
}

// FakeImageLoader implements ImageLoader entirely in memory, grounded on
// the spec's explicit treatment of platform dynamic loading as an
// abstract, swappable collaborator (spec §1, §6).
type FakeImageLoader struct {
	images map[string]*FakeImage
}

// NewFakeImageLoader creates an empty fake loader.
func NewFakeImageLoader() *FakeImageLoader {
	return &FakeImageLoader{images: make(map[string]*FakeImage)}
}

// Register installs a fake image at path with the given symbol table.
// Call before Open.
func (l *FakeImageLoader) Register(path string, symbols map[string]any) *FakeImage {
	img := &FakeImage{Path: path, Symbols: symbols}
	l.images[path] = img
	return img
}

func (l *FakeImageLoader) Open(path string) (Handle, error) {
	img, ok := l.images[path]
	if !ok {
		return nil, fmt.Errorf("fake image not registered: %s", path)
	}
	img.Opens++
	return img, nil
}

func (l *FakeImageLoader) Close(h Handle) error {
	return nil
}

func (l *FakeImageLoader) Resolve(h Handle, symbolName string) (any, bool) {
	img, ok := h.(*FakeImage)
	if !ok {
		return nil, false
	}
	v, ok := img.Symbols[symbolName]
	return v, ok
}
