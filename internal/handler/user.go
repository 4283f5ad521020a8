package handler

import (
	"net/http"

	"github.com/prepsync/prepsync/internal/ctxkeys"
	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func publicUser(user *model.User) userResponse {
	return userResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "Some fields are missing.")
		return
	}

	user, token, err := h.authService.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message": "Signup is successful.",
		"token":   token,
		"user":    publicUser(user),
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  publicUser(user),
	})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	JSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, updated)
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.Delete(user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "User profile deleted successfully."})
}
