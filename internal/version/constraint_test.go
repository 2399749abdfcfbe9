package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConstraintOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Operator
	}{
		{"=1.0.0", OpEq},
		{"<1.0.0", OpLt},
		{"<=1.0.0", OpLe},
		{">1.0.0", OpGt},
		{">=1.0.0", OpGe},
		{"~1.2.3", OpTilde},
		{"^1.2.3", OpCaret},
		{"*", OpAny},
		{"1.2.3", OpEq},
		{" >= 1.2.3 ", OpGe},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			c, err := ParseConstraint(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, c.Op)
		})
	}
}

func TestParseConstraintMalformed(t *testing.T) {
	t.Parallel()

	tests := []string{"", ">=", "<>1.0.0"}
	for _, in := range tests {
		_, err := ParseConstraint(in)
		require.Error(t, err)
	}
}

// TestCaretZeroMajor is the spec's seed scenario §8.1: caret constraints on
// a zero major version additionally pin the minor component.
func TestCaretZeroMajor(t *testing.T) {
	t.Parallel()

	c, err := ParseConstraint("^0.2.3")
	require.NoError(t, err)

	require.True(t, c.Satisfies(MustParse("0.2.5")))
	require.False(t, c.Satisfies(MustParse("0.3.0")))
}

func TestCaretNonZeroMajor(t *testing.T) {
	t.Parallel()

	c, err := ParseConstraint("^1.2.3")
	require.NoError(t, err)

	require.True(t, c.Satisfies(MustParse("1.9.0")))
	require.False(t, c.Satisfies(MustParse("2.0.0")))
	require.False(t, c.Satisfies(MustParse("1.2.2")))
}

func TestTildeConstraint(t *testing.T) {
	t.Parallel()

	c, err := ParseConstraint("~1.2.3")
	require.NoError(t, err)

	require.True(t, c.Satisfies(MustParse("1.2.9")))
	require.False(t, c.Satisfies(MustParse("1.3.0")))
	require.False(t, c.Satisfies(MustParse("1.2.2")))
}

func TestAnyConstraintAlwaysSatisfied(t *testing.T) {
	t.Parallel()

	c := Constraint{Op: OpAny}
	require.True(t, c.Satisfies(MustParse("0.0.0")))
	require.True(t, c.Satisfies(WildcardVersion()))
}

func TestConstraintStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"=1.0.0", "<1.0.0", "<=1.0.0", ">1.0.0", ">=1.0.0", "~1.2.3", "^1.2.3", "*"} {
		c, err := ParseConstraint(in)
		require.NoError(t, err)
		require.Equal(t, in, c.String())
	}
}
