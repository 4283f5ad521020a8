package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/repository"
	"github.com/prepsync/prepsync/internal/validation"
)

var ErrNothingToUpdate = errors.New("at least one field is required to update")

type UserService struct {
	userRepository repository.UserRepository
	authService    *AuthService
}

func NewUserService(userRepository repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{
		userRepository: userRepository,
		authService:    authService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// UpdateProfile changes email and/or password. Empty fields stay untouched.
func (s *UserService) UpdateProfile(userID, email, password string) (*model.User, error) {
	if email == "" && password == "" {
		return nil, ErrNothingToUpdate
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		email = strings.TrimSpace(strings.ToLower(email))
		err = validation.ValidateEmail(email)
		if err != nil {
			return nil, ErrInvalidEmail
		}

		existing, err := s.userRepository.ByEmail(email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = email
	}

	if password != "" {
		err = validation.ValidatePassword(password)
		if err != nil {
			return nil, err
		}
		hash, err := s.authService.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	err = s.userRepository.Update(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(userID string) error {
	return s.userRepository.Delete(userID)
}
