package handler

import (
	"net/http"

	"github.com/prepsync/prepsync/internal/ctxkeys"
	"github.com/prepsync/prepsync/internal/service"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groupService.Create(user.ID, req.Name, req.Description)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message": "Group created successfully.",
		"group":   group,
	})
}

func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	groupID := r.PathValue("id")

	group, err := h.groupService.Join(user.ID, groupID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Joined group successfully.",
		"group":   group,
	})
}

func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	groupID := r.PathValue("id")

	if err := h.groupService.Leave(user.ID, groupID); err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Left group successfully."})
}

func (h *GroupHandler) MyGroups(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	groups, err := h.groupService.MyGroups(user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Details(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	groupID := r.PathValue("id")

	details, err := h.groupService.Details(user.ID, groupID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, details)
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	groupID := r.PathValue("id")

	if err := h.groupService.Delete(user.ID, groupID); err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully."})
}

func (h *GroupHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	groupID := r.PathValue("id")

	entries, err := h.groupService.Leaderboard(user.ID, groupID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, entries)
}
