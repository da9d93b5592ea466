// Package services – AuthService
//
// Registration and login. Passwords are stored as bcrypt hashes and a
// successful login yields a signed bearer token for the HTTP layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gfvrho/go-report-backend/internal/domain"
)

// UserRepo defines the repository contract required by AuthService and
// UserService.
type UserRepo interface {
	CreateUser(ctx context.Context, db *gorm.DB, email, username, passwordHash string) (*domain.User, error)
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// AuthService handles account creation and credential checks.
type AuthService struct {
	DB     *gorm.DB
	Repo   UserRepo
	Tokens TokenIssuer

	// BcryptCost overrides the hashing cost; zero means bcrypt.DefaultCost.
	BcryptCost int
}

// NewAuthService constructs an AuthService with the default bcrypt cost.
func NewAuthService(db *gorm.DB, r UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{DB: db, Repo: r, Tokens: tokens}
}

// Register creates a new account. Email is lowercased before storage so
// lookups are case-insensitive.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Repo.CreateUser(ctx, s.DB, email, username, string(hash))
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed token on success.
// Unknown emails and wrong passwords both map to ErrInvalidCredentials
// so the response does not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// isDuplicate reports whether err is a unique-constraint violation.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate")
}
