package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{
		"1.2.3",
		"0.0.1",
		"2.0.0-beta",
		"1.4.0-rc.1",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			v, err := Parse(in)
			require.NoError(t, err)
			require.Equal(t, in, v.Format())
		})
	}
}

func TestParseDefaultsMinorPatch(t *testing.T) {
	t.Parallel()

	v, err := Parse("5")
	require.NoError(t, err)
	require.Equal(t, Version{Major: 5, Minor: 0, Patch: 0}, v)
}

func TestParseWildcard(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"*", "latest"} {
		v, err := Parse(in)
		require.NoError(t, err)
		require.True(t, v.IsWildcard())
		require.Equal(t, "*", v.Format())
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []string{"", "a.b.c", "1.2.3.4", "-1.0.0"}
	for _, in := range tests {
		_, err := Parse(in)
		require.Error(t, err)
	}
}

func TestCompareTotalOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Compare(MustParse("1.2.3"), MustParse("1.2.3")))
	require.Equal(t, -1, Compare(MustParse("1.2.3"), MustParse("1.2.4")))
	require.Equal(t, 1, Compare(MustParse("2.0.0"), MustParse("1.9.9")))
	require.Equal(t, -1, Compare(MustParse("1.0.0-beta"), MustParse("1.0.0")))
	require.Equal(t, 1, Compare(MustParse("1.0.0"), MustParse("1.0.0-beta")))
}

func TestCompareWildcard(t *testing.T) {
	t.Parallel()

	wc := WildcardVersion()
	require.Equal(t, 0, Compare(wc, wc))
	require.Equal(t, -1, Compare(wc, MustParse("0.0.1")))
	require.Equal(t, 1, Compare(MustParse("0.0.1"), wc))
}

func TestCompareIgnoresBuildMetadata(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Compare(MustParse("1.0.0+abc"), MustParse("1.0.0+xyz")))
}

func TestCompareMonotonicForGe(t *testing.T) {
	t.Parallel()

	ref := MustParse("1.2.0")
	constraint := Constraint{Op: OpGe, Ref: ref}
	a := MustParse("1.3.0")
	b := MustParse("1.2.5")

	require.True(t, Compare(a, b) >= 0)
	require.True(t, constraint.Satisfies(b))
	require.True(t, constraint.Satisfies(a))
}
