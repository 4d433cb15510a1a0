package service

import (
	"context"
	"testing"
	"time"

	"royalcert/internal/auth"
	"royalcert/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tokens := auth.NewTokenManager("k", time.Hour)
	s := NewAuthService(f.users, tokens, f.auditService())

	res, err := s.Login(ctx, "planner", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, f.planner.ID, res.User.ID)

	u, err := s.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RolePlanner, u.Role)

	_, err = s.Login(ctx, "planner", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.planner.IsActive = false
	require.NoError(t, f.users.Update(ctx, f.planner))

	s := NewAuthService(f.users, auth.NewTokenManager("k", time.Hour), f.auditService())
	_, err := s.Login(ctx, "planner", "secret1")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthenticateRejectsDeletedAndDeactivated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tokens := auth.NewTokenManager("k", time.Hour)
	s := NewAuthService(f.users, tokens, f.auditService())

	tok, err := tokens.Issue(f.inspector.ID)
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, f.inspector.ID))
	_, err = s.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, ErrUnauthorized)

	f.manager.IsActive = false
	require.NoError(t, f.users.Update(ctx, f.manager))
	_, err = s.Resolve(ctx, f.manager.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
