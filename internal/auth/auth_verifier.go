package auth

import (
	"context"
	"crypto/subtle"

	autherrors "spincraft-tracker/internal/auth/errors"
	"spincraft-tracker/internal/session"

	"golang.org/x/crypto/bcrypt"
)

// Admin is the identity a Verifier vouches for.
type Admin struct {
	ID       string
	Username string
	Name     string
	Role     string
}

//go:generate mockgen -source=auth_verifier.go -destination=mock/auth_verifier_mock.go -package=mock
type Verifier interface {
	Verify(ctx context.Context, username, password string) (Admin, error)
	Lookup(ctx context.Context, adminID string) (Admin, error)
}

// StaticVerifier accepts a single configured account whose password is stored as a bcrypt
// hash.
type StaticVerifier struct {
	admin        Admin
	passwordHash []byte
}

func NewStaticVerifier(id, username, name, passwordHash string) *StaticVerifier {
	return &StaticVerifier{
		admin: Admin{
			ID:       id,
			Username: username,
			Name:     name,
			Role:     session.RoleAdmin,
		},
		passwordHash: []byte(passwordHash),
	}
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) (Admin, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.admin.Username)) == 1
	// The hash is checked even when the username is wrong.
	passErr := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return Admin{}, autherrors.ErrInvalidCredentials
	}
	return v.admin, nil
}

func (v *StaticVerifier) Lookup(_ context.Context, adminID string) (Admin, error) {
	if adminID != v.admin.ID {
		return Admin{}, autherrors.ErrAdminNotFound
	}
	return v.admin, nil
}
