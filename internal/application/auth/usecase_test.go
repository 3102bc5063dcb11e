package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/internal/application/auth"
	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *userRepo, *auth.SessionStore) {
	t.Helper()
	repo := newUserRepo()
	sessions := auth.NewSessionStore(3 * time.Minute)
	uc := auth.NewAuthUseCase(repo, sessions, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "factonet"})
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "Ana@Cyclonet.co", Password: "secreto123", Name: "Ana", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	return uc, repo, sessions
}

func TestRegisterUser(t *testing.T) {
	uc, repo, _ := setup(t)
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, "ana@cyclonet.co")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "secreto123", u.PasswordHash)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@cyclonet.co", Password: "otroSecreto1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@c.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@c.co", Password: "largaSuficiente", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "op@c.co", Password: "largaSuficiente"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperator, got.Role)
	assert.Equal(t, "Operador de facturación", got.RoleDescription)
	assert.Equal(t, "Usuario", got.Name)
}

func TestLogin(t *testing.T) {
	uc, _, sessions := setup(t)
	ctx := context.Background()

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: " ANA@cyclonet.co ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, 180, resp.IdleTimeoutSeconds)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "Administrador", resp.User.RoleDescription)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	_, err = sessions.Touch(claims.SessionID)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@cyclonet.co", Password: "malaClave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@cyclonet.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo, sessions := setup(t)
	ctx := context.Background()
	u, _ := repo.GetByEmail(ctx, "ana@cyclonet.co")
	repo.users[u.ID].Status = "inactive"

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@cyclonet.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, sessions.Len())
}

func TestLogout_InvalidaLaSesion(t *testing.T) {
	uc, _, sessions := setup(t)
	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@cyclonet.co", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)

	uc.Logout(claims.SessionID)
	_, err = sessions.Touch(claims.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestChangePassword(t *testing.T) {
	uc, _, sessions := setup(t)
	ctx := context.Background()
	login := func(pw string) (*jwt.Claims, error) {
		resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@cyclonet.co", Password: pw})
		if err != nil {
			return nil, err
		}
		return jwt.Parse(secret, resp.Token)
	}
	current, err := login("secreto123")
	require.NoError(t, err)
	other, err := login("secreto123")
	require.NoError(t, err)

	err = uc.ChangePassword(ctx, current.UserID, current.SessionID, dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = uc.ChangePassword(ctx, current.UserID, current.SessionID, dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = uc.ChangePassword(ctx, current.UserID, current.SessionID, dto.ChangePasswordRequest{CurrentPassword: "equivocada", NewPassword: "nuevaClave99"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.ChangePassword(ctx, current.UserID, current.SessionID,
		dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "nuevaClave99"}))

	_, err = sessions.Touch(current.SessionID)
	require.NoError(t, err, "la sesión que cambió la clave sigue abierta")
	_, err = sessions.Touch(other.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	_, err = login("secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = login("nuevaClave99")
	require.NoError(t, err)
}

func TestMe(t *testing.T) {
	uc, repo, _ := setup(t)
	ctx := context.Background()
	u, _ := repo.GetByEmail(ctx, "ana@cyclonet.co")

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@cyclonet.co", me.Email)

	_, err = uc.Me(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
