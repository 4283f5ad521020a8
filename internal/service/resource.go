package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/repository"
	"github.com/prepsync/prepsync/internal/storage"
)

var (
	ErrResourceInput     = errors.New("either a file or a url is required")
	ErrResourceForbidden = errors.New("you do not have permission to remove this resource")
	ErrNotDownloadable   = errors.New("resource is a link, not an uploaded file")
)

type ResourceService struct {
	resourceRepository repository.ResourceRepository
	groupRepository    repository.GroupRepository
	storage            storage.Storage
}

func NewResourceService(resourceRepository repository.ResourceRepository, groupRepository repository.GroupRepository, storage storage.Storage) *ResourceService {
	return &ResourceService{
		resourceRepository: resourceRepository,
		groupRepository:    groupRepository,
		storage:            storage,
	}
}

// AddLink shares a plain URL into a group.
func (s *ResourceService) AddLink(userID, groupID, title, url string) (*model.Resource, error) {
	if url == "" {
		return nil, ErrResourceInput
	}

	err := s.requireMember(groupID, userID)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = url
	}

	resource := &model.Resource{
		ID:        uuid.New().String(),
		Title:     title,
		URL:       url,
		AddedBy:   userID,
		CreatedAt: time.Now(),
	}

	err = s.resourceRepository.Create(resource, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return resource, nil
}

// AddFile uploads a file to object storage and shares it into a group.
// Validation of type and size is done by the caller before the upload.
func (s *ResourceService) AddFile(userID, groupID, title string, file multipart.File, header *multipart.FileHeader) (*model.Resource, error) {
	err := s.requireMember(groupID, userID)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(header.Filename)
	storagePath := filepath.Join("resources", uuid.New().String()+ext)

	err = s.storage.Save(storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	if title == "" {
		title = header.Filename
	}

	resource := &model.Resource{
		ID:          uuid.New().String(),
		Title:       title,
		URL:         "", // uploaded files are served via presigned download URLs
		StoragePath: &storagePath,
		MimeType:    header.Header.Get("Content-Type"),
		Size:        header.Size,
		AddedBy:     userID,
		CreatedAt:   time.Now(),
	}

	err = s.resourceRepository.Create(resource, groupID)
	if err != nil {
		// If the DB insert fails, try to clean up the uploaded object
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create resource record: %w", err)
	}

	return resource, nil
}

func (s *ResourceService) ByGroup(userID, groupID string) ([]model.ResourceDetail, error) {
	err := s.requireMember(groupID, userID)
	if err != nil {
		return nil, err
	}

	return s.resourceRepository.ByGroup(groupID)
}

// DownloadURL returns a presigned URL for an uploaded resource file.
func (s *ResourceService) DownloadURL(resourceID string) (string, error) {
	resource, err := s.resourceRepository.ByID(resourceID)
	if err != nil {
		return "", err
	}

	if !resource.IsUpload() {
		return "", ErrNotDownloadable
	}

	return s.storage.DownloadURL(*resource.StoragePath)
}

// RemoveFromGroup detaches a resource from a group; the resource owner or
// the group admin may do this. A resource left with no group associations is
// deleted outright, including its stored object.
func (s *ResourceService) RemoveFromGroup(userID, resourceID, groupID string) (deleted bool, err error) {
	resource, err := s.resourceRepository.ByID(resourceID)
	if err != nil {
		return false, err
	}

	group, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return false, err
	}

	shared, err := s.resourceRepository.InGroup(resourceID, groupID)
	if err != nil {
		return false, err
	}
	if !shared {
		return false, repository.ErrResourceNotInGroup
	}

	isAdmin := group.CreatedBy == userID
	isOwner := resource.AddedBy == userID
	if !isAdmin && !isOwner {
		return false, ErrResourceForbidden
	}

	remaining, err := s.resourceRepository.RemoveFromGroup(resourceID, groupID)
	if err != nil {
		return false, err
	}
	if remaining > 0 {
		return false, nil
	}

	// Orphaned: delete the stored object (best effort) and the row
	if resource.IsUpload() {
		delErr := s.storage.Delete(*resource.StoragePath)
		if delErr != nil {
			slog.Error("failed to delete resource file from storage", "error", delErr, "path", *resource.StoragePath)
		}
	}

	err = s.resourceRepository.Delete(resourceID)
	if err != nil {
		return false, err
	}

	return true, nil
}

// CleanupGroup deletes the resources a group delete would orphan: those
// shared with no other group. Stored objects are removed best effort, the
// rows outright. Resources still shared elsewhere are untouched.
func (s *ResourceService) CleanupGroup(groupID string) error {
	orphans, err := s.resourceRepository.OnlyInGroup(groupID)
	if err != nil {
		return fmt.Errorf("failed to list group resources: %w", err)
	}

	for _, resource := range orphans {
		if resource.IsUpload() {
			delErr := s.storage.Delete(*resource.StoragePath)
			if delErr != nil {
				slog.Error("failed to delete resource file from storage", "error", delErr, "path", *resource.StoragePath)
			}
		}

		err = s.resourceRepository.Delete(resource.ID)
		if err != nil {
			return fmt.Errorf("failed to delete orphaned resource: %w", err)
		}
	}

	return nil
}

func (s *ResourceService) requireMember(groupID, userID string) error {
	_, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return err
	}

	member, err := s.groupRepository.IsMember(groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotGroupMember
	}
	return nil
}
