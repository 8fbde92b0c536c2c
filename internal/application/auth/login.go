package auth

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult returns the user and a signed access token.
type LoginResult struct {
	User        *domain.User
	AccessToken string
}

// Login verifies credentials and issues an access token.
type Login struct {
	users        ports.UserRepository
	hasher       ports.PasswordHasher
	issuer       ports.TokenIssuer
	accessExpiry int64
}

// NewLogin builds the use case. accessExpiry is in seconds.
func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExpiry int64) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer, accessExpiry: accessExpiry}
}

// Execute authenticates the user. Unknown email and wrong password fail alike.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.InvalidRequest("invalid email or password")
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), uc.accessExpiry)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}
