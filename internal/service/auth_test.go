package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/validation"
)

func newTestAuthService(repo *fakeUserRepository) *AuthService {
	email := NewEmailService("", "noreply@example.com", "PrepSync", true)
	return NewAuthService(repo, email, "test-secret", time.Hour)
}

func TestSignupValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepository())

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"empty name", "  ", "a@example.com", "S3curePass!x", ErrNameRequired},
		{"bad email", "Alice", "not-an-email", "S3curePass!x", ErrInvalidEmail},
		{"short password", "Alice", "a@example.com", "abc", validation.ErrInvalidPassword},
		{"common password", "Alice", "a@example.com", "password", validation.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Signup(tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignupAndLogin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestAuthService(repo)

	user, token, err := svc.Signup("Alice", "Alice@Example.com ", "S3curePass!x")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "S3curePass!x", user.PasswordHash)

	claims, err := svc.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])

	loggedIn, loginToken, err := svc.Login("alice@example.com", "S3curePass!x")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestAuthService(repo)

	_, _, err := svc.Signup("Alice", "a@example.com", "S3curePass!x")
	require.NoError(t, err)

	_, _, err = svc.Signup("Other Alice", "a@example.com", "S3curePass!y")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestAuthService(repo)

	_, _, err := svc.Signup("Alice", "a@example.com", "S3curePass!x")
	require.NoError(t, err)

	_, _, err = svc.Login("a@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "S3curePass!x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestAuthService(repo)

	user := &model.User{ID: "u1", Email: "a@example.com"}
	token, err := svc.GenerateJWT(user)
	require.NoError(t, err)

	_, err = svc.VerifyJWT(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(repo, svc.emailService, "other-secret", time.Hour)
	_, err = other.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	repo := newFakeUserRepository()
	email := NewEmailService("", "noreply@example.com", "PrepSync", true)
	svc := NewAuthService(repo, email, "test-secret", -time.Minute)

	token, err := svc.GenerateJWT(&model.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = svc.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
