package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/tiwiti-backend/internal/auth"
	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

func newUsers(t *testing.T) *UserService {
	t.Helper()
	tm := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewUserService(newMemStore(), tm)
}

func TestRegisterLoginRefresh(t *testing.T) {
	svc := newUsers(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, u.Role)
	require.NotEqual(t, "s3cret-pass", u.PasswordHash)

	_, err = svc.Register(ctx, "alice", "other@example.com", "s3cret-pass")
	require.ErrorIs(t, err, models.ErrDuplicateUser)

	pair, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "s3cret-pass")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)

	again, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, again.AccessToken)

	_, err = svc.Refresh(ctx, pair.AccessToken) // wrong token kind
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc := newUsers(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ab", "a@b.c", "longenough")
	require.Error(t, err)

	_, err = svc.Register(ctx, "alice", "not-an-email", "longenough")
	require.Error(t, err)

	_, err = svc.Register(ctx, "alice", "a@b.c", "short")
	require.Error(t, err)
}
