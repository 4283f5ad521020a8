package service

import (
	"fmt"
	"time"

	"github.com/prepsync/prepsync/internal/activity"
	"github.com/prepsync/prepsync/internal/repository"
)

const (
	streakGraphDays = 7
	heatmapDays     = 365
)

type DashboardStats struct {
	CurrentStreak          int `json:"currentStreak"`
	TotalCompleted         int `json:"totalCompleted"`
	PersonalGoalsCompleted int `json:"personalGoalsCompleted"`
	GroupGoalsCompleted    int `json:"groupGoalsCompleted"`
	TotalPending           int `json:"totalPending"`
}

type Dashboard struct {
	Stats            DashboardStats                `json:"stats"`
	StreakGraph      []activity.DayCount           `json:"streakGraph"`
	Heatmap          [][]activity.DayCount         `json:"heatmap"`
	GroupPerformance []repository.GroupPerformance `json:"groupPerformance"`
}

type DashboardService struct {
	userRepository       repository.UserRepository
	completionRepository repository.CompletionRepository
	streakService        *StreakService
	calendar             activity.Calendar
	now                  func() time.Time
}

func NewDashboardService(
	userRepository repository.UserRepository,
	completionRepository repository.CompletionRepository,
	streakService *StreakService,
) *DashboardService {
	return &DashboardService{
		userRepository:       userRepository,
		completionRepository: completionRepository,
		streakService:        streakService,
		calendar:             streakService.Calendar(),
		now:                  time.Now,
	}
}

// Dashboard assembles the user's stats, the 7-day streak graph, the
// year-long weekly heatmap and per-group performance. The lazy streak decay
// check runs here; everything else is read-only.
func (s *DashboardService) Dashboard(userID string) (*Dashboard, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	currentStreak, err := s.streakService.CurrentStreak(user)
	if err != nil {
		return nil, err
	}

	stats, err := s.completionRepository.Stats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion stats: %w", err)
	}

	pending, err := s.completionRepository.PendingCount(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending goals: %w", err)
	}

	today := s.calendar.Today(s.now())

	streakGraph, err := s.dailySeries(userID, today)
	if err != nil {
		return nil, err
	}

	heatmap, err := s.weeklyHeatmap(userID, today)
	if err != nil {
		return nil, err
	}

	performance, err := s.completionRepository.PerformanceByGroup(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group performance: %w", err)
	}

	return &Dashboard{
		Stats: DashboardStats{
			CurrentStreak:          currentStreak,
			TotalCompleted:         stats.TotalCompleted,
			PersonalGoalsCompleted: stats.PersonalGoalsCompleted,
			GroupGoalsCompleted:    stats.GroupGoalsCompleted,
			TotalPending:           pending,
		},
		StreakGraph:      streakGraph,
		Heatmap:          heatmap,
		GroupPerformance: performance,
	}, nil
}

func (s *DashboardService) dailySeries(userID string, today activity.Date) ([]activity.DayCount, error) {
	window, err := s.calendar.LastNDays(today, streakGraphDays)
	if err != nil {
		return nil, err
	}
	return s.fill(userID, window)
}

func (s *DashboardService) weeklyHeatmap(userID string, today activity.Date) ([][]activity.DayCount, error) {
	window, err := s.calendar.HeatmapWindow(today, heatmapDays)
	if err != nil {
		return nil, err
	}

	daily, err := s.fill(userID, window)
	if err != nil {
		return nil, err
	}
	return activity.Weeks(daily), nil
}

func (s *DashboardService) fill(userID string, window activity.Window) ([]activity.DayCount, error) {
	instants, err := s.completionRepository.InstantsInRange(userID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion events: %w", err)
	}
	return s.calendar.Fill(window, instants)
}
