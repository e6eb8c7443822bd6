package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/taskboard-api/internal/githuboauth"
)

// AuthService turns a GitHub OAuth login into a signed session token.
// The token's subject is the account's verified email, which the rest
// of the API uses as the task owner identifier.
type AuthService struct {
	provider      githuboauth.Client
	sessionSecret []byte
	sessionTTL    time.Duration
}

func NewAuthService(provider githuboauth.Client, sessionSecret []byte, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		provider:      provider,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

type SessionOutput struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Login     string `json:"login"`
	ExpiresIn int64  `json:"expires_in"`
}

// LoginURL returns the provider authorization URL for the given state.
func (s *AuthService) LoginURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// HandleCallback completes the OAuth flow: exchanges the code, resolves
// the verified email, and mints a session token.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (SessionOutput, error) {
	if code == "" {
		return SessionOutput{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	user, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return SessionOutput{}, fmt.Errorf("failed to authenticate with github: %w", err)
	}

	token, err := s.mintSessionToken(user.Email)
	if err != nil {
		return SessionOutput{}, err
	}

	return SessionOutput{
		Token:     token,
		Email:     user.Email,
		Login:     user.Login,
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}

func (s *AuthService) mintSessionToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
