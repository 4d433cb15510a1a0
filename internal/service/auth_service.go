package service

import (
	"context"
	"errors"

	"royalcert/internal/auth"
	"royalcert/internal/models"
	"royalcert/internal/repository"
)

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	// Resolve loads an active user by id, as stored in the session cookie.
	Resolve(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	audit  AuditService
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, audit AuditService) AuthService {
	return &authService{users: users, tokens: tokens, audit: audit}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.ID, models.EntityUser, user.ID, "login", "Giriş yapıldı")
	return &LoginResult{AccessToken: token, TokenType: "bearer", User: user}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.Resolve(ctx, userID)
}

func (s *authService) Resolve(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUnauthorized
	}
	return user, nil
}
