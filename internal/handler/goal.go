package handler

import (
	"net/http"
	"time"

	"github.com/prepsync/prepsync/internal/ctxkeys"
	"github.com/prepsync/prepsync/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type goalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	GroupID     *string    `json:"groupId"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Title, req.Description, req.DueDate, req.GroupID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message": "Goal created successfully.",
		"goal":    goal,
	})
}

func (h *GoalHandler) MyGoals(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	personal, group, err := h.goalService.MyGoals(user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"personalGoals": personal,
		"groupGoals":    group,
	})
}

func (h *GoalHandler) ByGroup(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	groupID := r.PathValue("id")

	goals, err := h.goalService.GoalsByGroup(user.ID, groupID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Details(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, completions, err := h.goalService.Details(user.ID, goalID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"goal":        goal,
		"completedBy": completions,
	})
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	streak, timeliness, err := h.goalService.Complete(user.ID, goalID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message":    "Goal marked as complete.",
		"streak":     streak,
		"timeliness": timeliness,
	})
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := h.goalService.Update(user.ID, goalID, req.Title, req.Description, req.DueDate)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Goal updated successfully.",
		"goal":    goal,
	})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(user.ID, goalID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully."})
}
