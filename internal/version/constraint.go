package version

import (
	"fmt"
	"strings"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Operator identifies the kind of comparison a Constraint performs.
type Operator int

const (
	OpAny Operator = iota
	OpEq
	OpLt
	OpLe
	OpGt
	OpGe
	OpTilde
	OpCaret
)

func (op Operator) String() string {
	switch op {
	case OpAny:
		return "any"
	case OpEq:
		return "eq"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpTilde:
		return "tilde"
	case OpCaret:
		return "caret"
	default:
		return "unknown"
	}
}

// Constraint pairs an Operator with a reference Version (spec §3 "Version
// constraint").
type Constraint struct {
	Op  Operator
	Ref Version
}

// glyph-to-operator table, longest glyphs first so "<=" is not mis-split as "<".
var glyphs = []struct {
	prefix string
	op     Operator
}{
	{"<=", OpLe},
	{">=", OpGe},
	{"~", OpTilde},
	{"^", OpCaret},
	{"=", OpEq},
	{"<", OpLt},
	{">", OpGt},
}

// ParseConstraint decodes a constraint string: a leading operator glyph
// determines the Operator, and the remainder is parsed as a Version.
// Spaces between the glyph and the version are tolerated. "*" alone
// parses to OpAny with the wildcard Version.
func ParseConstraint(s string) (Constraint, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "*" {
		return Constraint{Op: OpAny, Ref: WildcardVersion()}, nil
	}
	if trimmed == "" {
		return Constraint{}, nxerrors.NewConstraintMalformed(s, fmt.Errorf("empty constraint string"))
	}

	for _, g := range glyphs {
		if strings.HasPrefix(trimmed, g.prefix) {
			rest := strings.TrimSpace(trimmed[len(g.prefix):])
			if rest == "" {
				return Constraint{}, nxerrors.NewConstraintMalformed(s, fmt.Errorf("missing version after operator %q", g.prefix))
			}
			ref, err := Parse(rest)
			if err != nil {
				return Constraint{}, nxerrors.NewConstraintMalformed(s, err)
			}
			return Constraint{Op: g.op, Ref: ref}, nil
		}
	}

	// No operator glyph: treat the whole string as an exact-match version.
	ref, err := Parse(trimmed)
	if err != nil {
		return Constraint{}, nxerrors.NewConstraintMalformed(s, err)
	}
	return Constraint{Op: OpEq, Ref: ref}, nil
}

// String renders the canonical constraint form.
func (c Constraint) String() string {
	switch c.Op {
	case OpAny:
		return "*"
	case OpEq:
		return "=" + c.Ref.String()
	case OpLt:
		return "<" + c.Ref.String()
	case OpLe:
		return "<=" + c.Ref.String()
	case OpGt:
		return ">" + c.Ref.String()
	case OpGe:
		return ">=" + c.Ref.String()
	case OpTilde:
		return "~" + c.Ref.String()
	case OpCaret:
		return "^" + c.Ref.String()
	default:
		return c.Ref.String()
	}
}

// Satisfies reports whether v meets the constraint (spec §4.A "Satisfies").
func (c Constraint) Satisfies(v Version) bool {
	switch c.Op {
	case OpAny:
		return true
	case OpEq:
		return Compare(v, c.Ref) == 0
	case OpLt:
		return Compare(v, c.Ref) < 0
	case OpLe:
		return Compare(v, c.Ref) <= 0
	case OpGt:
		return Compare(v, c.Ref) > 0
	case OpGe:
		return Compare(v, c.Ref) >= 0
	case OpTilde:
		return v.Major == c.Ref.Major && v.Minor == c.Ref.Minor && v.Patch >= c.Ref.Patch
	case OpCaret:
		if v.Major != c.Ref.Major {
			return false
		}
		if c.Ref.Major == 0 {
			return v.Minor == c.Ref.Minor && v.Patch >= c.Ref.Patch
		}
		return Compare(v, c.Ref) >= 0
	default:
		return false
	}
}

// Satisfies is a convenience wrapper mirroring the spec's free function
// signature `satisfies(version, constraint)`.
func Satisfies(v Version, c Constraint) bool {
	return c.Satisfies(v)
}
