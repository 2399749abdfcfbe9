package symbol

import (
	"sync"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Table is one semantic set of Symbols keyed uniquely by name (spec §3
// "Symbol table"). Values retain insertion identity so refcount updates on
// a resolved Symbol are visible to subsequent lookups.
type Table struct {
	mu      sync.RWMutex
	symbols map[string]*Symbol
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Add inserts a Symbol with refcount 0; it becomes "in use" only once a
// usage is tracked against it. Fails with AlreadyPresent if name collides
// within this table (spec §4.B, invariant i).
func (t *Table) Add(name string, address any, kind Kind, componentID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.symbols[name]; exists {
		return nxerrors.NewAlreadyPresent(name)
	}

	t.symbols[name] = &Symbol{
		Name:        name,
		Address:     address,
		Kind:        kind,
		ComponentID: componentID,
		refcount:    0,
	}
	return nil
}

// Find returns the Symbol for name, or (nil, false). It does not mutate
// refcount.
func (t *Table) Find(name string) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	sym, ok := t.symbols[name]
	return sym, ok
}

// Remove deletes name from the table. Fails with NotFound if absent, or
// InUse if the symbol's refcount is greater than zero, unless force is
// true (spec §4.B "Enforcement").
func (t *Table) Remove(name string, force bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sym, ok := t.symbols[name]
	if !ok {
		return nxerrors.NewSymbolNotFound(name)
	}
	if sym.refcount > 0 && !force {
		return nxerrors.NewInUse(name, sym.refcount)
	}
	delete(t.symbols, name)
	return nil
}

// CountUsed returns the number of Symbols with refcount > 0.
func (t *Table) CountUsed() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, sym := range t.symbols {
		if sym.refcount > 0 {
			n++
		}
	}
	return n
}

// trackUsage increments the refcount of the named Symbol, returning the
// resolved Symbol. Internal: callers go through Registry.TrackUsage so the
// exported surface only exposes whole-registry usage tracking.
func (t *Table) trackUsage(name string) (*Symbol, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sym, ok := t.symbols[name]
	if !ok {
		return nil, false
	}
	sym.refcount++
	return sym, true
}

// all returns a snapshot slice of every Symbol in the table. Order is
// unspecified.
func (t *Table) all() []*Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Symbol, 0, len(t.symbols))
	for _, sym := range t.symbols {
		out = append(out, sym)
	}
	return out
}
