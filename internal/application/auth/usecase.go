package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
	"github.com/cyclonet/factonet-api/pkg/jwt"
)

// MinPasswordLength largo mínimo de una contraseña nueva.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y cambio de
// contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions *SessionStore
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions *SessionStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Devuelve
// ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperator
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		Image:        in.Image,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, abre una sesión, genera el JWT atado a ella y retorna
// token + perfil.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	sess := uc.sessions.Create(user.ID, user.Role)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, sess.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.sessions.Destroy(sess.ID)
		return nil, err
	}
	return &dto.LoginResponse{
		Token:              token,
		IdleTimeoutSeconds: int(uc.sessions.IdleTimeout().Seconds()),
		User:               *toUserResponse(user),
	}, nil
}

// Logout destruye la sesión; el token deja de servir aunque no haya expirado.
func (uc *AuthUseCase) Logout(sessionID string) {
	uc.sessions.Destroy(sessionID)
}

// Me perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ChangePassword valida la contraseña actual y guarda la nueva. Las demás sesiones del
// usuario se cierran.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID, sessionID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	if in.NewPassword == in.CurrentPassword {
		return fmt.Errorf("%w: la contraseña nueva debe ser distinta de la actual", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	uc.sessions.DestroyUser(userID, sessionID)
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.DisplayName(),
		Role:            u.Role,
		RoleDescription: u.RoleDescription(),
		Image:           u.Image,
		Status:          u.Status,
		CreatedAt:       u.CreatedAt,
	}
}
