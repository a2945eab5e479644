package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := UnsupportedFormat(508, "FLAC decoding is not implemented")
	require.Contains(t, err.Error(), "508")
	require.Contains(t, err.Error(), "FLAC decoding is not implemented")
	require.Contains(t, err.Error(), "unsupported format")
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("file not found")
	err := IO("open signal file", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "file not found")
}

func TestIsKind(t *testing.T) {
	err := InvalidHeader("line %d: bad token %q", 3, "xyz")
	require.True(t, Is(err, KindInvalidHeader))
	require.False(t, Is(err, KindIO))
	require.False(t, Is(fmt.Errorf("plain error"), KindInvalidHeader))
}

func TestErrorIsMatchesSameKind(t *testing.T) {
	a := InvalidHeader("a")
	b := InvalidHeader("b")
	require.True(t, errors.Is(a, b))

	c := IO("op", errors.New("x"))
	require.False(t, errors.Is(a, c))
}
