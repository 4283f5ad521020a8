package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/repository"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrDueDateInPast    = errors.New("the due date for a goal should be in the future")
	ErrNotGroupMember   = errors.New("you are not a member of this group")
	ErrNotGoalCreator   = errors.New("only the goal creator can modify the goal")
	ErrGoalNotDeletable = errors.New("only the goal creator or group admin can delete the goal")
	ErrGoalNotVisible   = errors.New("you do not have access to this goal")
)

type GoalService struct {
	goalRepository       repository.GoalRepository
	completionRepository repository.CompletionRepository
	groupRepository      repository.GroupRepository
	streakService        *StreakService
	now                  func() time.Time
}

func NewGoalService(
	goalRepository repository.GoalRepository,
	completionRepository repository.CompletionRepository,
	groupRepository repository.GroupRepository,
	streakService *StreakService,
) *GoalService {
	return &GoalService{
		goalRepository:       goalRepository,
		completionRepository: completionRepository,
		groupRepository:      groupRepository,
		streakService:        streakService,
		now:                  time.Now,
	}
}

func (s *GoalService) Create(userID, title, description string, dueDate *time.Time, groupID *string) (*model.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if dueDate != nil && !dueDate.After(s.now()) {
		return nil, ErrDueDateInPast
	}

	if groupID != nil {
		_, err := s.groupRepository.ByID(*groupID)
		if err != nil {
			return nil, err
		}

		member, err := s.groupRepository.IsMember(*groupID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrNotGroupMember
		}
	}

	goal := &model.Goal{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedBy:   userID,
		GroupID:     groupID,
		DueDate:     dueDate,
		CreatedAt:   s.now(),
	}

	err := s.goalRepository.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// MyGoals returns the user's personal goals and the goals of joined groups.
func (s *GoalService) MyGoals(userID string) (personal, group []*model.Goal, err error) {
	personal, err = s.goalRepository.PersonalGoals(userID)
	if err != nil {
		return nil, nil, err
	}

	group, err = s.goalRepository.GoalsOfJoinedGroups(userID)
	if err != nil {
		return nil, nil, err
	}

	return personal, group, nil
}

func (s *GoalService) GoalsByGroup(userID, groupID string) ([]*model.Goal, error) {
	_, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.groupRepository.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	return s.goalRepository.GroupGoals(groupID)
}

// Details returns a goal with its completion records. Personal goals are
// visible only to their creator, group goals to group members.
func (s *GoalService) Details(userID, goalID string) (*model.Goal, []model.CompletionDetail, error) {
	goal, err := s.visibleGoal(userID, goalID)
	if err != nil {
		return nil, nil, err
	}

	completions, err := s.completionRepository.ByGoal(goalID)
	if err != nil {
		return nil, nil, err
	}

	return goal, completions, nil
}

// Complete records the user's completion of a goal and credits the streak.
// The completion row persists first; a duplicate is rejected before the
// streak engine runs at all. A streak failure after the completion is
// recorded is surfaced, leaving a logged inconsistency rather than an
// automatic retry.
func (s *GoalService) Complete(userID, goalID string) (streak int, timeliness string, err error) {
	goal, err := s.visibleGoal(userID, goalID)
	if err != nil {
		return 0, "", err
	}

	completedAt := s.now()
	timeliness = model.TimelinessOnTime
	if goal.DueDate != nil && completedAt.After(*goal.DueDate) {
		timeliness = model.TimelinessLate
	}

	completion := &model.Completion{
		ID:          uuid.New().String(),
		GoalID:      goal.ID,
		UserID:      userID,
		CompletedAt: completedAt,
		Timeliness:  timeliness,
	}

	err = s.completionRepository.Create(completion)
	if err != nil {
		return 0, "", err
	}

	streak, err = s.streakService.RecordCompletion(userID)
	if err != nil {
		return 0, "", fmt.Errorf("completion recorded but streak update failed: %w", err)
	}

	return streak, timeliness, nil
}

func (s *GoalService) Update(userID, goalID, title, description string, dueDate *time.Time) (*model.Goal, error) {
	goal, err := s.goalRepository.ByID(goalID)
	if err != nil {
		return nil, err
	}

	if goal.CreatedBy != userID {
		return nil, ErrNotGoalCreator
	}

	if title != "" {
		goal.Title = strings.TrimSpace(title)
	}
	goal.Description = strings.TrimSpace(description)

	if dueDate != nil {
		if !dueDate.After(s.now()) {
			return nil, ErrDueDateInPast
		}
		goal.DueDate = dueDate
	}

	err = s.goalRepository.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes a goal. Personal goals: creator only. Group goals: creator
// or the group admin.
func (s *GoalService) Delete(userID, goalID string) error {
	goal, err := s.goalRepository.ByID(goalID)
	if err != nil {
		return err
	}

	isCreator := goal.CreatedBy == userID

	if goal.IsPersonal() {
		if !isCreator {
			return ErrGoalNotDeletable
		}
		return s.goalRepository.Delete(goalID)
	}

	group, err := s.groupRepository.ByID(*goal.GroupID)
	if err != nil {
		return err
	}

	if !isCreator && group.CreatedBy != userID {
		return ErrGoalNotDeletable
	}

	return s.goalRepository.Delete(goalID)
}

func (s *GoalService) visibleGoal(userID, goalID string) (*model.Goal, error) {
	goal, err := s.goalRepository.ByID(goalID)
	if err != nil {
		return nil, err
	}

	if goal.IsPersonal() {
		if goal.CreatedBy != userID {
			return nil, ErrGoalNotVisible
		}
		return goal, nil
	}

	member, err := s.groupRepository.IsMember(*goal.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrGoalNotVisible
	}

	return goal, nil
}
