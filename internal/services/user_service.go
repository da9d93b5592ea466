// Package services – UserService
//
// Profile reads and updates for the authenticated user. Password changes
// go through the same bcrypt hashing as registration.
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

// UserService provides profile-level operations.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepo

	// BcryptCost overrides the hashing cost; zero means bcrypt.DefaultCost.
	BcryptCost int
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, r UserRepo) *UserService {
	return &UserService{DB: db, Repo: r}
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the optional fields of a profile change. Nil
// pointers leave the corresponding column untouched.
type ProfileUpdate struct {
	Email    *string
	Username *string
	Password *string
}

// UpdateProfile applies the non-nil fields of upd to the user and returns
// the refreshed record.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if upd.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Username != nil {
		fields["username"] = strings.TrimSpace(*upd.Username)
	}
	if upd.Password != nil {
		cost := s.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = string(hash)
	}

	if len(fields) > 0 {
		if err := s.Repo.UpdateUser(ctx, s.DB, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			if isDuplicate(err) {
				return nil, ErrDuplicateUser
			}
			return nil, err
		}
	}
	return s.Get(ctx, id)
}
