package usecase_test

import (
	"context"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(store *fakeStore) usecase.AuthService {
	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
	return usecase.NewAuthService(store.repo(), config, testLogger())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers customer and opens session", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthService(store)

		resp, err := svc.Register(ctx, &request.RegisterRequest{
			Username: "maria",
			Email:    "maria@example.com",
			Password: "s3cretpw",
		})
		require.NoError(t, err)

		assert.Equal(t, "maria", resp.Username)
		assert.Equal(t, entity.RoleCustomer, resp.Role)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthService(store)

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username: "maria",
			Email:    "maria@example.com",
			Password: "s3cretpw",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &request.RegisterRequest{
			Username: "othermaria",
			Email:    "maria@example.com",
			Password: "s3cretpw",
		})
		assert.ErrorIs(t, err, usecase.ErrValidation)
	})

	t.Run("rejects short password", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthService(store)

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username: "maria",
			Email:    "maria@example.com",
			Password: "pw",
		})
		assert.ErrorIs(t, err, usecase.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T) (*fakeStore, usecase.AuthService) {
		store := newFakeStore()
		svc := newAuthService(store)
		_, err := svc.Register(ctx, &request.RegisterRequest{
			Username: "maria",
			Email:    "maria@example.com",
			Password: "s3cretpw",
		})
		require.NoError(t, err)
		return store, svc
	}

	t.Run("accepts email or username", func(t *testing.T) {
		_, svc := register(t)

		for _, identifier := range []string{"maria@example.com", "maria"} {
			resp, err := svc.Login(ctx, &request.LoginRequest{
				Username: identifier,
				Password: "s3cretpw",
			})
			require.NoError(t, err, identifier)
			assert.NotEmpty(t, resp.Token)
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, svc := register(t)

		_, err := svc.Login(ctx, &request.LoginRequest{
			Username: "maria",
			Password: "wrongpass",
		})
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		_, svc := register(t)

		_, err := svc.Login(ctx, &request.LoginRequest{
			Username: "nobody",
			Password: "s3cretpw",
		})
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("rejects deactivated user", func(t *testing.T) {
		store, svc := register(t)

		store.mu.Lock()
		for _, u := range store.users {
			u.IsActive = false
		}
		store.mu.Unlock()

		_, err := svc.Login(ctx, &request.LoginRequest{
			Username: "maria",
			Password: "s3cretpw",
		})
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	svc := newAuthService(store)

	resp, err := svc.Register(ctx, &request.RegisterRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "s3cretpw",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	session, err := store.repo().Session.FindValidSession(ctx, resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}
