package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/pkg/auth"
)

func TestSignAndValidate(t *testing.T) {
	v, err := auth.NewValidator("s3cret")
	require.NoError(t, err)

	tok, err := v.Sign("admin@example.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := v.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Subject)
	assert.Equal(t, "admin", claims.Role)

	ctx := auth.WithClaims(context.Background(), claims)
	assert.Same(t, claims, auth.FromCtx(ctx))
	assert.Nil(t, auth.FromCtx(context.Background()))
}

func TestValidateRejects(t *testing.T) {
	v, _ := auth.NewValidator("s3cret")
	other, _ := auth.NewValidator("different")

	expired, err := v.Sign("a", "", -time.Minute)
	require.NoError(t, err)
	_, err = v.Validate(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	foreign, err := other.Sign("a", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Validate(foreign)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = v.Validate("not-a-token")
	assert.Error(t, err)
}

func TestNewValidatorNeedsSecret(t *testing.T) {
	_, err := auth.NewValidator("")
	assert.ErrorIs(t, err, auth.ErrNoSecret)
}
