package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwhitford/caseflow/internal/repository"
)

// Service handles account and token business logic.
type Service struct {
	users  Repository
	tokens TokenRepository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(users Repository, tokens TokenRepository, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// SignupRequest describes an account creation request.
type SignupRequest struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Signup creates a new account and issues an API token for it.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Roles:        []Role{},
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and issues an API token.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ResolveToken returns the user owning the given API token.
func (s *Service) ResolveToken(ctx context.Context, token string) (*User, error) {
	userID, err := s.tokens.Resolve(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("resolving token: %w", err)
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("loading token user: %w", err)
	}
	return u, nil
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetByUsername returns a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// Grant adds a role membership to a user.
func (s *Service) Grant(ctx context.Context, userID string, role Role) error {
	if !role.Valid() {
		return ErrInvalidInput
	}
	if err := s.users.AddRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrUserNotFound
		}
		return fmt.Errorf("granting role: %w", err)
	}
	return nil
}

func (s *Service) issueToken(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.tokens.Save(ctx, hashToken(token), userID); err != nil {
		return "", fmt.Errorf("saving token: %w", err)
	}
	return token, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
