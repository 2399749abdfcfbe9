package symbol

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// usageEdge records one tracked reference from a consuming component to
// the component owning the symbol it used, for the DOT dependency dump
// (spec §4.B "dependency_graph_dump").
type usageEdge struct {
	usingComponent string
	symbolName     string
	owningTable    string // "exported" | "imported" | "global"
	owningComponent string
}

// Registry holds the three symbol tables scoped to one Context
// (spec §3 "Symbol registry"): global (process-wide, survives component
// unload), imported (symbols a component consumes), and exported (symbols
// a component provides). Resolution order is exported, then imported,
// then global.
type Registry struct {
	Exported *Table
	Imported *Table
	Global   *Table

	mu     sync.Mutex
	usages []usageEdge
}

// NewRegistry creates an empty three-tier registry.
func NewRegistry() *Registry {
	return &Registry{
		Exported: NewTable(),
		Imported: NewTable(),
		Global:   NewTable(),
	}
}

// Resolve looks up name across exported, then imported, then global,
// returning the first hit's address. It does not change refcount — this
// is the spec's "unsafe lookup" (§4.B "resolve").
func (r *Registry) Resolve(name string) (any, bool) {
	if sym, ok := r.Exported.Find(name); ok {
		return sym.Address, true
	}
	if sym, ok := r.Imported.Find(name); ok {
		return sym.Address, true
	}
	if sym, ok := r.Global.Find(name); ok {
		return sym.Address, true
	}
	return nil, false
}

// resolveTiered returns the resolved Symbol plus the name of the tier it
// was found in, for callers (LookupWithType, ContextAwareResolve,
// TrackUsage) that need to record a usage edge against the correct table.
func (r *Registry) resolveTiered(name string) (*Symbol, string, bool) {
	if sym, ok := r.Exported.Find(name); ok {
		return sym, "exported", true
	}
	if sym, ok := r.Imported.Find(name); ok {
		return sym, "imported", true
	}
	if sym, ok := r.Global.Find(name); ok {
		return sym, "global", true
	}
	return nil, "", false
}

// LookupWithType resolves name, rejects a kind mismatch with
// nxerrors.SymbolError{Kind:"kind_mismatch"}, and on success records usage
// and returns the address (spec §4.B "lookup_with_type").
func (r *Registry) LookupWithType(name string, expectedKind Kind, usingComponent string) (any, error) {
	sym, tier, ok := r.resolveTiered(name)
	if !ok {
		return nil, nxerrors.NewSymbolNotFound(name)
	}
	if sym.Kind != expectedKind {
		return nil, nxerrors.NewKindMismatch(name, expectedKind.String(), sym.Kind.String())
	}
	r.recordUsage(usingComponent, name, tier, sym.ComponentID)
	r.tableFor(tier).trackUsage(name)
	return sym.Address, nil
}

// ContextAwareResolve behaves like LookupWithType but uses contextTag as a
// disambiguation hint when name exists in more than one tier: it prefers
// the tier whose owning component id contains contextTag as a substring,
// falling back to the standard exported/imported/global order
// (spec §4.B "context_aware_resolve").
func (r *Registry) ContextAwareResolve(name string, expectedKind Kind, contextTag, usingComponent string) (any, error) {
	candidates := r.candidatesFor(name)
	if len(candidates) == 0 {
		return nil, nxerrors.NewSymbolNotFound(name)
	}

	chosen := candidates[0]
	if contextTag != "" {
		for _, c := range candidates {
			if strings.Contains(c.sym.ComponentID, contextTag) {
				chosen = c
				break
			}
		}
	}

	if chosen.sym.Kind != expectedKind {
		return nil, nxerrors.NewKindMismatch(name, expectedKind.String(), chosen.sym.Kind.String())
	}

	r.recordUsage(usingComponent, name, chosen.tier, chosen.sym.ComponentID)
	r.tableFor(chosen.tier).trackUsage(name)
	return chosen.sym.Address, nil
}

type tierCandidate struct {
	sym  *Symbol
	tier string
}

// candidatesFor returns every tier (in exported, imported, global order)
// where name is present.
func (r *Registry) candidatesFor(name string) []tierCandidate {
	var out []tierCandidate
	if sym, ok := r.Exported.Find(name); ok {
		out = append(out, tierCandidate{sym, "exported"})
	}
	if sym, ok := r.Imported.Find(name); ok {
		out = append(out, tierCandidate{sym, "imported"})
	}
	if sym, ok := r.Global.Find(name); ok {
		out = append(out, tierCandidate{sym, "global"})
	}
	return out
}

// TrackUsage increments the refcount of the Symbol that Resolve(name)
// would return, recording that usingComponent referenced it
// (spec §4.B "track_usage").
func (r *Registry) TrackUsage(name, usingComponent string) error {
	sym, tier, ok := r.resolveTiered(name)
	if !ok {
		return nxerrors.NewSymbolNotFound(name)
	}
	r.tableFor(tier).trackUsage(name)
	r.recordUsage(usingComponent, name, tier, sym.ComponentID)
	return nil
}

func (r *Registry) tableFor(tier string) *Table {
	switch tier {
	case "exported":
		return r.Exported
	case "imported":
		return r.Imported
	default:
		return r.Global
	}
}

func (r *Registry) recordUsage(usingComponent, name, tier, owningComponent string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usages = append(r.usages, usageEdge{
		usingComponent:  usingComponent,
		symbolName:      name,
		owningTable:     tier,
		owningComponent: owningComponent,
	})
}

// DumpDOT emits the symbol-dependency graph in Graphviz DOT syntax
// (spec §4.B "dependency_graph_dump", §6 "DOT output"): one node per
// (component, symbol) pair, and one edge per tracked usage from the
// consuming component's node to the owning component's node.
func (r *Registry) DumpDOT(w io.Writer) error {
	r.mu.Lock()
	edges := append([]usageEdge(nil), r.usages...)
	r.mu.Unlock()

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].usingComponent != edges[j].usingComponent {
			return edges[i].usingComponent < edges[j].usingComponent
		}
		return edges[i].symbolName < edges[j].symbolName
	})

	if _, err := fmt.Fprintln(w, "digraph nexuslink_symbols {"); err != nil {
		return err
	}

	nodes := make(map[string]struct{})
	for _, e := range edges {
		nodes[fmt.Sprintf("%s::%s", e.usingComponent, e.symbolName)] = struct{}{}
		nodes[fmt.Sprintf("%s::%s", e.owningComponent, e.symbolName)] = struct{}{}
	}
	nodeNames := make([]string, 0, len(nodes))
	for n := range nodes {
		nodeNames = append(nodeNames, n)
	}
	sort.Strings(nodeNames)
	for _, n := range nodeNames {
		if _, err := fmt.Fprintf(w, "  %q;\n", n); err != nil {
			return err
		}
	}

	for _, e := range edges {
		from := fmt.Sprintf("%s::%s", e.usingComponent, e.symbolName)
		to := fmt.Sprintf("%s::%s", e.owningComponent, e.symbolName)
		if _, err := fmt.Fprintf(w, "  %q -> %q;\n", from, to); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
