package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

func newUserService(t *testing.T, env *testEnv) (*UserService, *utils.TokenManager) {
	t.Helper()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	return NewUserService(repository.NewUserRepo(env.db), tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc, tokens := newUserService(t, env)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "guest@example.com", Username: "guest", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	token, loggedIn, err := svc.Login(ctx, LoginInput{Email: "GUEST@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotNil(t, loggedIn.LastLogin)

	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestLogin_WrongPasswordOrUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newUserService(t, env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "guest@example.com", Username: "guest", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginInput{Email: "guest@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, _, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestRegister_DuplicateAndValidation(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newUserService(t, env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "guest@example.com", Username: "guest", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "guest@example.com", Username: "guest2", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, utils.ErrConstraintViolation)

	_, err = svc.Register(ctx, RegisterInput{Email: "short@example.com", Username: "short", Password: "123"})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newUserService(t, env)
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, "host@example.com", "host-password", models.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, first.Role)

	second, err := svc.EnsureUser(ctx, "host@example.com", "other-password", models.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
