package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prepsync/prepsync/internal/repository"
	"github.com/prepsync/prepsync/internal/service"
	"github.com/prepsync/prepsync/internal/validation"
)

// serviceError maps service and repository sentinels to HTTP responses.
// Anything unmapped is a fault: logged and reported as a 500.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrGroupNotFound),
		errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrResourceNotFound):
		Error(w, http.StatusNotFound, err.Error())

	case errors.Is(err, repository.ErrAlreadyCompleted):
		Error(w, http.StatusConflict, "You have already completed this goal.")

	case errors.Is(err, service.ErrInvalidCredentials):
		Error(w, http.StatusBadRequest, "Invalid Credentials!")

	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, repository.ErrDuplicateEmail):
		Error(w, http.StatusBadRequest, "Email is already in use by another user.")

	case errors.Is(err, service.ErrNotGroupMember):
		Error(w, http.StatusForbidden, "You are not a member of this group.")

	case errors.Is(err, service.ErrNotGroupAdmin),
		errors.Is(err, service.ErrNotGoalCreator),
		errors.Is(err, service.ErrGoalNotDeletable),
		errors.Is(err, service.ErrGoalNotVisible),
		errors.Is(err, service.ErrResourceForbidden),
		errors.Is(err, service.ErrAdminCannotLeave):
		Error(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrDueDateInPast),
		errors.Is(err, service.ErrGroupNameRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, service.ErrResourceInput),
		errors.Is(err, service.ErrNotDownloadable),
		errors.Is(err, repository.ErrResourceNotInGroup),
		errors.Is(err, repository.ErrNotMember),
		errors.Is(err, validation.ErrFileTypeNotSupported),
		errors.Is(err, validation.ErrFileTooLarge),
		errors.Is(err, validation.ErrInvalidPassword):
		Error(w, http.StatusBadRequest, err.Error())

	default:
		slog.Error("request failed", "error", err)
		Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
