package handler

import (
	"net/http"

	"github.com/prepsync/prepsync/internal/ctxkeys"
	"github.com/prepsync/prepsync/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	dashboard, err := h.dashboardService.Dashboard(user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	JSON(w, http.StatusOK, dashboard)
}
