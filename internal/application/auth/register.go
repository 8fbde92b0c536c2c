// Package auth is the thin credential boundary: it produces the authenticated
// principal the core operations require. Everything beyond password signup and
// login is out of scope.
package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterInput carries signup credentials and profile fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a user account with an Argon2id password hash.
type Register struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

// NewRegister builds the use case.
func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher) *Register {
	return &Register{users: users, hasher: hasher}
}

// Execute creates the account. Duplicate emails fail with Conflict.
func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.InvalidRequest("invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, domerrors.InvalidRequest("password must be at least 8 characters")
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.Conflict("an account with this email already exists")
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
