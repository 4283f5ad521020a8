package handler

import (
	"errors"
	"net/http"

	"github.com/prepsync/prepsync/internal/ctxkeys"
	"github.com/prepsync/prepsync/internal/service"
	"github.com/prepsync/prepsync/internal/validation"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
	maxUploadSize   int64
}

func NewResourceHandler(resourceService *service.ResourceService, maxUploadSize int64) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		maxUploadSize:   maxUploadSize,
	}
}

// Add handles both uploaded files and plain links. File uploads come in as
// multipart form data with a "resourceFile" part, links as form fields.
func (h *ResourceHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1024)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		Error(w, http.StatusBadRequest, "Could not parse the upload. The file may be too large.")
		return
	}

	groupID := r.FormValue("groupId")
	title := r.FormValue("title")

	file, header, err := r.FormFile("resourceFile")
	if errors.Is(err, http.ErrMissingFile) {
		resource, err := h.resourceService.AddLink(user.ID, groupID, title, r.FormValue("url"))
		if err != nil {
			serviceError(w, err)
			return
		}
		JSON(w, http.StatusCreated, map[string]any{
			"message":  "Resource shared successfully.",
			"resource": resource,
		})
		return
	}
	if err != nil {
		Error(w, http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}
	defer file.Close()

	if err := validation.ResourceConstraints.ValidateFile(header); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := h.resourceService.AddFile(user.ID, groupID, title, file, header)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message":  "Resource shared successfully.",
		"resource": resource,
	})
}

func (h *ResourceHandler) ByGroup(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	groupID := r.PathValue("id")

	resources, err := h.resourceService.ByGroup(user.ID, groupID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, resources)
}

// Download redirects to a short-lived presigned URL for the stored object.
func (h *ResourceHandler) Download(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")

	url, err := h.resourceService.DownloadURL(resourceID)
	if err != nil {
		serviceError(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (h *ResourceHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	resourceID := r.PathValue("resourceId")
	groupID := r.PathValue("groupId")

	deleted, err := h.resourceService.RemoveFromGroup(user.ID, resourceID, groupID)
	if err != nil {
		serviceError(w, err)
		return
	}

	message := "Resource removed from group."
	if deleted {
		message = "Resource removed from group and deleted."
	}

	JSON(w, http.StatusOK, map[string]string{"message": message})
}
