package routes

import (
	"net/http"

	"github.com/prepsync/prepsync/internal/app"
	"github.com/prepsync/prepsync/internal/handler"
	"github.com/prepsync/prepsync/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	user := handler.NewUserHandler(app.AuthService, app.UserService)
	group := handler.NewGroupHandler(app.GroupService)
	goal := handler.NewGoalHandler(app.GoalService)
	resource := handler.NewResourceHandler(app.ResourceService, app.Cfg.UploadMaxSize)
	dashboard := handler.NewDashboardHandler(app.DashboardService)

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PrepSync API is running"))
	})

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /users/signup", rateLimiter(user.Signup))
	mux.HandleFunc("POST /users/login", rateLimiter(user.Login))

	// Account
	mux.HandleFunc("GET /users/me", middleware.RequireAuth(user.Me))
	mux.HandleFunc("PATCH /users/me", middleware.RequireAuth(user.UpdateMe))
	mux.HandleFunc("DELETE /users/me", middleware.RequireAuth(user.DeleteMe))

	// Groups
	mux.HandleFunc("POST /groups/create", middleware.RequireAuth(group.Create))
	mux.HandleFunc("POST /groups/join/{id}", middleware.RequireAuth(group.Join))
	mux.HandleFunc("POST /groups/leave/{id}", middleware.RequireAuth(group.Leave))
	mux.HandleFunc("GET /groups/my-groups", middleware.RequireAuth(group.MyGroups))
	mux.HandleFunc("GET /groups/{id}", middleware.RequireAuth(group.Details))
	mux.HandleFunc("GET /groups/{id}/leaderboard", middleware.RequireAuth(group.Leaderboard))
	mux.HandleFunc("DELETE /groups/{id}", middleware.RequireAuth(group.Delete))

	// Goals
	mux.HandleFunc("POST /goals/create", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /goals/my-goals", middleware.RequireAuth(goal.MyGoals))
	mux.HandleFunc("GET /goals/group/{id}", middleware.RequireAuth(goal.ByGroup))
	mux.HandleFunc("GET /goals/{id}", middleware.RequireAuth(goal.Details))
	mux.HandleFunc("PATCH /goals/{id}/complete", middleware.RequireAuth(goal.Complete))
	mux.HandleFunc("PATCH /goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /goals/{id}", middleware.RequireAuth(goal.Delete))

	// Resources
	mux.HandleFunc("POST /resources/add", middleware.RequireAuth(resource.Add))
	mux.HandleFunc("GET /resources/group/{id}", middleware.RequireAuth(resource.ByGroup))
	mux.HandleFunc("GET /resources/download/{id}", middleware.RequireAuth(resource.Download))
	mux.HandleFunc("DELETE /resources/{resourceId}/group/{groupId}", middleware.RequireAuth(resource.Remove))

	// Dashboard
	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(dashboard.Dashboard))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS,
		middleware.RequestLogging,
		middleware.Recover,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
