// Package symbol implements the NexusLink three-tier symbol registry
// (spec §4.B): per-table storage keyed uniquely by name, reference
// counting, and resolution across the exported/imported/global tiers.
package symbol

// Kind classifies what a Symbol's address refers to.
type Kind int

const (
	KindUnknown Kind = iota
	KindFunction
	KindVariable
	KindType
	KindConstant
	KindMacro
	KindStruct
	KindEnum
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	case KindType:
		return "type"
	case KindConstant:
		return "constant"
	case KindMacro:
		return "macro"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// ProcessComponentID is the special owning-component id used for truly
// global symbols that do not belong to any single loaded Component
// (spec §4.B invariant ii).
const ProcessComponentID = "process"

// Symbol is a single named entry in a symbol table (spec §3 "Symbol").
type Symbol struct {
	Name        string
	Address     any // opaque pointer — an exported process function, a data address, etc.
	Kind        Kind
	ComponentID string
	refcount    int
}

// Refcount returns the current reference count. Never negative.
func (s *Symbol) Refcount() int {
	if s == nil {
		return 0
	}
	return s.refcount
}
