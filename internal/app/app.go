package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prepsync/prepsync/internal/activity"
	"github.com/prepsync/prepsync/internal/config"
	"github.com/prepsync/prepsync/internal/db"
	"github.com/prepsync/prepsync/internal/repository"
	"github.com/prepsync/prepsync/internal/service"
	"github.com/prepsync/prepsync/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	AuthService      *service.AuthService
	UserService      *service.UserService
	EmailService     *service.EmailService
	StreakService    *service.StreakService
	GoalService      *service.GoalService
	GroupService     *service.GroupService
	ResourceService  *service.ResourceService
	DashboardService *service.DashboardService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	groupRepository := repository.NewGroupRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	completionRepository := repository.NewCompletionRepository(database)
	resourceRepository := repository.NewResourceRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(userRepository, emailService, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepository, authService)
	streakService := service.NewStreakService(userRepository, activity.NewCalendar(cfg.ReferenceTZOffset))
	goalService := service.NewGoalService(goalRepository, completionRepository, groupRepository, streakService)
	resourceService := service.NewResourceService(resourceRepository, groupRepository, fileStorage)
	groupService := service.NewGroupService(groupRepository, completionRepository, resourceService)
	dashboardService := service.NewDashboardService(userRepository, completionRepository, streakService)

	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      authService,
		UserService:      userService,
		EmailService:     emailService,
		StreakService:    streakService,
		GoalService:      goalService,
		GroupService:     groupService,
		ResourceService:  resourceService,
		DashboardService: dashboardService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
