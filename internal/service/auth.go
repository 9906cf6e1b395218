package service

import (
	"context"
	"errors"
	"fmt"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/logger"
	"suitrental-backend/internal/repository"
	"suitrental-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is deliberately the same for unknown users and wrong
// passwords so login attempts cannot probe for usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	logger.Info("operator logged in", "user_id", user.ID, "username", user.Username)
	return token, user, nil
}

func (s *authService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *authService) CreateUser(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	if role == "" {
		role = domain.UserRoleEmployee
	}
	if role != domain.UserRoleAdmin && role != domain.UserRoleEmployee {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "ACTIVE",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
