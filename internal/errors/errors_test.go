package errors_test

import (
	"fmt"
	"testing"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := autherrors.Validation(autherrors.ErrPasswordMismatch)
	require.Equal(t, autherrors.KindValidation, autherrors.KindOf(err))
	require.ErrorIs(t, err, autherrors.ErrPasswordMismatch)

	wrapped := fmt.Errorf("register: %w", err)
	require.Equal(t, autherrors.KindValidation, autherrors.KindOf(wrapped))

	require.Equal(t, autherrors.KindProtocol, autherrors.KindOf(autherrors.Protocol(autherrors.ErrMissingCode)))
	require.Equal(t, autherrors.KindUnknown, autherrors.KindOf(autherrors.ErrNoSession))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("login: %w", autherrors.Protocol(autherrors.ErrMissingCode))

	var kinded autherrors.Kinded
	require.True(t, autherrors.As(err, &kinded))
	require.Equal(t, autherrors.KindProtocol, kinded.Kind())
	require.False(t, autherrors.As(autherrors.ErrNoSession, &kinded))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "transport", autherrors.KindTransport.String())
	require.Equal(t, "server", autherrors.KindServer.String())
	require.Equal(t, "unknown", autherrors.Kind(99).String())
}
