package nxerrors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewVersionMalformed("1.x.y", underlying)

	var verr *VersionError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "malformed_version", verr.Kind)
	require.Equal(t, "1.x.y", verr.Input)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestSymbolErrorKinds(t *testing.T) {
	t.Parallel()

	err := NewAlreadyPresent("foo")
	var serr *SymbolError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "already_present", serr.Kind)
	require.Contains(t, err.Error(), "foo")

	require.Equal(t, CodeAlreadyExists, AsResultCode(NewAlreadyPresent("bar")))
	require.Equal(t, CodeNotFound, AsResultCode(NewSymbolNotFound("bar")))
	require.Equal(t, CodeSymbolError, AsResultCode(NewKindMismatch("bar", "function", "variable")))
}

func TestStructuralErrorResultCodes(t *testing.T) {
	t.Parallel()

	require.Equal(t, CodeDependencyError, AsResultCode(NewDependencyCycle("A->B")))
	require.Equal(t, CodeVersionConflict, AsResultCode(NewVersionConflict("A", "^1.2.0", "2.0.0")))
}

func TestMinimizerErrorResultCode(t *testing.T) {
	t.Parallel()

	code := AsResultCode(NewMalformedInput(stdErrors.New("nil root")))
	require.Equal(t, CodeMinimizerBase, code)
	require.Equal(t, "MinimizerError", code.String())
}

func TestAsResultCodeSuccessOnNil(t *testing.T) {
	t.Parallel()
	require.Equal(t, CodeSuccess, AsResultCode(nil))
}
