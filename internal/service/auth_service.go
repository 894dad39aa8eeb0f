package service

import (
	"context"
	"errors"
	"time"

	"universo/internal/apperr"
	"universo/internal/auth"
	"universo/internal/model"
	"universo/internal/repository"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email":    "Email inválido",
	"password": "La contraseña es obligatoria",
}

// Session is the result of a successful login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

const (
	invalidCredentials = "Credenciales inválidas"
	unauthorized       = "No autorizado, token inválido o ausente"
)

// AuthService checks credentials and issues session tokens.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.Tokens
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.Tokens) *AuthService {
	hash, _ := auth.HashPassword("universo-unknown-user")
	return &AuthService{userRepo: userRepo, tokens: tokens, dummyHash: hash}
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	input.Email = normalizeEmail(input.Email)
	if err := check(input, loginMessages); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		auth.CheckPassword(s.dummyHash, input.Password)
		return nil, apperr.NewAuthError(invalidCredentials, nil)
	case err != nil:
		return nil, err
	}
	if !auth.CheckPassword(user.Password, input.Password) {
		return nil, apperr.NewAuthError(invalidCredentials, nil)
	}

	token, expires, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expires, User: user}, nil
}

// Authenticate verifies a raw token and returns the caller it names.
func (s *AuthService) Authenticate(raw string) (auth.Identity, error) {
	id, err := s.tokens.Verify(raw)
	if err != nil {
		return auth.Identity{}, apperr.NewAuthError(unauthorized, err)
	}
	return id, nil
}

// Me returns the stored account behind an identity.
func (s *AuthService) Me(ctx context.Context, id auth.Identity) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NewAuthError("Usuario no encontrado", err)
	}
	return user, err
}
