package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreconditionErrors(t *testing.T) {
	for _, err := range []error{ErrInvalidBitWidth, ErrSignalOutOfRange, ErrNilBuffer} {
		require.ErrorIs(t, err, ErrPreconditionViolation)

		wrapped := fmt.Errorf("%w: offset 61", err)
		require.ErrorIs(t, wrapped, err)
		require.ErrorIs(t, wrapped, ErrPreconditionViolation)
	}

	require.False(t, errors.Is(ErrInvalidBitWidth, ErrSignalOutOfRange))
	require.False(t, errors.Is(ErrInvalidFrameID, ErrPreconditionViolation))
}
