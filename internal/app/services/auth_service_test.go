package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
	pkgAuth "github.com/odemir/campusclubs/internal/pkg/auth"
)

type authServiceFixture struct {
	svc    AuthService
	users  *fakeUserStore
	tokens *fakeTokenStore
}

func newAuthServiceFixture() *authServiceFixture {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusclubs.test",
	})
	return &authServiceFixture{
		svc:    NewAuthService(users, tokens, jwtService, zerolog.Nop()),
		users:  users,
		tokens: tokens,
	}
}

func (f *authServiceFixture) seedUser(t *testing.T, username, password string, role models.Role, active bool) *models.User {
	t.Helper()
	hash, err := pkgAuth.HashPassword(password)
	require.NoError(t, err)
	return f.users.add(&models.User{
		Username: username,
		Email:    username + "@college.edu",
		Password: hash,
		Role:     role,
		IsActive: active,
	})
}

func registerReq(username, role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  username,
		Email:     username + "@college.edu",
		Password:  "s3cret-pass",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
}

func TestRegister(t *testing.T) {
	f := newAuthServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, registerReq("jdoe", "student"))
	require.NoError(t, err)
	assert.Equal(t, "jdoe", resp.User.Username)
	assert.Equal(t, "student", resp.User.Role)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)

	// Stored password is a hash, never the plaintext.
	stored, err := f.users.FindByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.True(t, pkgAuth.CheckPassword(stored.Password, "s3cret-pass"))
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	f := newAuthServiceFixture()

	_, err := f.svc.Register(context.Background(), registerReq("sneaky", "college_admin"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.Register(context.Background(), registerReq("sneaky", "superhero"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterDuplicates(t *testing.T) {
	f := newAuthServiceFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("jdoe", "student"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerReq("jdoe", "student"))
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)

	req := registerReq("jdoe2", "student")
	req.Email = "jdoe@college.edu"
	_, err = f.svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	f := newAuthServiceFixture()
	ctx := context.Background()
	user := f.seedUser(t, "jdoe", "s3cret-pass", models.RoleStudent, true)

	resp, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotNil(t, f.users.users[user.ID].LastLoginAt)
}

func TestLoginFailures(t *testing.T) {
	f := newAuthServiceFixture()
	ctx := context.Background()
	f.seedUser(t, "jdoe", "s3cret-pass", models.RoleStudent, true)
	f.seedUser(t, "ghost", "s3cret-pass", models.RoleStudent, false)

	_, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown usernames read the same as bad passwords.
	_, err = f.svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	f := newAuthServiceFixture()
	ctx := context.Background()
	f.seedUser(t, "jdoe", "s3cret-pass", models.RoleStudent, true)

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "s3cret-pass"})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, login.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.Token.RefreshToken, refreshed.RefreshToken)

	// The redeemed token is gone.
	_, err = f.svc.RefreshToken(ctx, login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRefreshTokenDisabledAccount(t *testing.T) {
	f := newAuthServiceFixture()
	ctx := context.Background()
	user := f.seedUser(t, "jdoe", "s3cret-pass", models.RoleStudent, true)

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "s3cret-pass"})
	require.NoError(t, err)

	f.users.users[user.ID].IsActive = false
	_, err = f.svc.RefreshToken(ctx, login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLogout(t *testing.T) {
	f := newAuthServiceFixture()
	ctx := context.Background()
	f.seedUser(t, "jdoe", "s3cret-pass", models.RoleStudent, true)

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, login.Token.RefreshToken))
	_, err = f.svc.RefreshToken(ctx, login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	// Logging out twice, or with a token that never existed, is harmless.
	assert.NoError(t, f.svc.Logout(ctx, login.Token.RefreshToken))
	assert.NoError(t, f.svc.Logout(ctx, "never-issued"))
}
