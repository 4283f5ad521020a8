package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/repository"
	"github.com/prepsync/prepsync/internal/service"
)

type memoryUserRepo struct {
	users map[string]*model.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*model.User{}}
}

func (r *memoryUserRepo) Create(user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) ByID(id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) ByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) UpdateStreak(string, int, *string, int, *string) (bool, error) {
	return true, nil
}

func (r *memoryUserRepo) ResetStreak(string) error { return nil }

func newUserHandler() *UserHandler {
	repo := newMemoryUserRepo()
	email := service.NewEmailService("", "noreply@example.com", "PrepSync", true)
	auth := service.NewAuthService(repo, email, "test-secret", time.Hour)
	users := service.NewUserService(repo, auth)
	return NewUserHandler(auth, users)
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestSignupEndpoint(t *testing.T) {
	h := newUserHandler()

	rec := postJSON(t, h.Signup, "/users/signup",
		`{"name":"Alice","email":"a@example.com","password":"S3curePass!x"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Message string       `json:"message"`
		Token   string       `json:"token"`
		User    userResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Signup is successful.", body.Message)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "a@example.com", body.User.Email)
	assert.NotContains(t, rec.Body.String(), "password", "no credentials in the response")
}

func TestSignupEndpointMissingFields(t *testing.T) {
	h := newUserHandler()

	rec := postJSON(t, h.Signup, "/users/signup", `{"name":"Alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Some fields are missing."}`, rec.Body.String())
}

func TestLoginEndpoint(t *testing.T) {
	h := newUserHandler()

	rec := postJSON(t, h.Signup, "/users/signup",
		`{"name":"Alice","email":"a@example.com","password":"S3curePass!x"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/users/login",
		`{"email":"a@example.com","password":"S3curePass!x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	h := newUserHandler()

	postJSON(t, h.Signup, "/users/signup",
		`{"name":"Alice","email":"a@example.com","password":"S3curePass!x"}`)

	rec := postJSON(t, h.Login, "/users/login",
		`{"email":"a@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid Credentials!"}`, rec.Body.String())
}
