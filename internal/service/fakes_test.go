package service

import (
	"time"

	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/repository"
)

// In-memory repository fakes. They implement just enough of the real
// semantics (guarded streak writes, completion uniqueness) to drive the
// services under test.

type fakeUserRepository struct {
	users map[string]*model.User

	updateStreakCalls int
	resetStreakCalls  int
	updateStreakErr   error
	resetStreakErr    error

	// beforeUpdateStreak runs before the guard check, to simulate a rival
	// writer winning the race.
	beforeUpdateStreak func()
}

func newFakeUserRepository(users ...*model.User) *fakeUserRepository {
	r := &fakeUserRepository{users: map[string]*model.User{}}
	for _, u := range users {
		copied := *u
		r.users[u.ID] = &copied
	}
	return r
}

func (r *fakeUserRepository) Create(user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) ByID(id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepository) ByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepository) Update(user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepository) UpdateStreak(userID string, streak int, lastCompletedDate *string, prevStreak int, prevDate *string) (bool, error) {
	r.updateStreakCalls++
	if r.updateStreakErr != nil {
		return false, r.updateStreakErr
	}
	if r.beforeUpdateStreak != nil {
		r.beforeUpdateStreak()
	}

	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	if u.Streak != prevStreak || !sameDate(u.LastCompletedDate, prevDate) {
		return false, nil
	}
	u.Streak = streak
	u.LastCompletedDate = lastCompletedDate
	return true, nil
}

func (r *fakeUserRepository) ResetStreak(userID string) error {
	r.resetStreakCalls++
	if r.resetStreakErr != nil {
		return r.resetStreakErr
	}
	if u, ok := r.users[userID]; ok {
		u.Streak = 0
	}
	return nil
}

func sameDate(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakeGroupRepository struct {
	groups  map[string]*model.Group
	members map[string]map[string]bool

	leaderboard []model.LeaderboardEntry
}

func newFakeGroupRepository(groups ...*model.Group) *fakeGroupRepository {
	r := &fakeGroupRepository{
		groups:  map[string]*model.Group{},
		members: map[string]map[string]bool{},
	}
	for _, g := range groups {
		copied := *g
		r.groups[g.ID] = &copied
		r.members[g.ID] = map[string]bool{g.CreatedBy: true}
	}
	return r
}

func (r *fakeGroupRepository) Create(group *model.Group) error {
	copied := *group
	r.groups[group.ID] = &copied
	r.members[group.ID] = map[string]bool{group.CreatedBy: true}
	return nil
}

func (r *fakeGroupRepository) ByID(id string) (*model.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, repository.ErrGroupNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGroupRepository) Delete(id string) error {
	delete(r.groups, id)
	delete(r.members, id)
	return nil
}

func (r *fakeGroupRepository) AddMember(groupID, userID string) error {
	r.members[groupID][userID] = true
	return nil
}

func (r *fakeGroupRepository) RemoveMember(groupID, userID string) error {
	if !r.members[groupID][userID] {
		return repository.ErrNotMember
	}
	delete(r.members[groupID], userID)
	return nil
}

func (r *fakeGroupRepository) IsMember(groupID, userID string) (bool, error) {
	return r.members[groupID][userID], nil
}

func (r *fakeGroupRepository) Members(groupID string) ([]model.MemberSummary, error) {
	var out []model.MemberSummary
	for userID := range r.members[groupID] {
		out = append(out, model.MemberSummary{ID: userID})
	}
	return out, nil
}

func (r *fakeGroupRepository) GroupsByUser(userID string) ([]*model.Group, error) {
	var out []*model.Group
	for groupID, members := range r.members {
		if members[userID] {
			g := *r.groups[groupID]
			out = append(out, &g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepository) MembersWithStreak(groupID string) ([]model.LeaderboardEntry, error) {
	out := make([]model.LeaderboardEntry, len(r.leaderboard))
	copy(out, r.leaderboard)
	return out, nil
}

type fakeGoalRepository struct {
	goals map[string]*model.Goal
}

func newFakeGoalRepository(goals ...*model.Goal) *fakeGoalRepository {
	r := &fakeGoalRepository{goals: map[string]*model.Goal{}}
	for _, g := range goals {
		copied := *g
		r.goals[g.ID] = &copied
	}
	return r
}

func (r *fakeGoalRepository) Create(goal *model.Goal) error {
	copied := *goal
	r.goals[goal.ID] = &copied
	return nil
}

func (r *fakeGoalRepository) ByID(id string) (*model.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, repository.ErrGoalNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGoalRepository) Update(goal *model.Goal) error {
	if _, ok := r.goals[goal.ID]; !ok {
		return repository.ErrGoalNotFound
	}
	copied := *goal
	r.goals[goal.ID] = &copied
	return nil
}

func (r *fakeGoalRepository) Delete(id string) error {
	if _, ok := r.goals[id]; !ok {
		return repository.ErrGoalNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *fakeGoalRepository) PersonalGoals(userID string) ([]*model.Goal, error) {
	var out []*model.Goal
	for _, g := range r.goals {
		if g.IsPersonal() && g.CreatedBy == userID {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeGoalRepository) GroupGoals(groupID string) ([]*model.Goal, error) {
	var out []*model.Goal
	for _, g := range r.goals {
		if g.GroupID != nil && *g.GroupID == groupID {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeGoalRepository) GoalsOfJoinedGroups(userID string) ([]*model.Goal, error) {
	return nil, nil
}

type fakeCompletionRepository struct {
	completions []*model.Completion

	stats       repository.CompletionStats
	pending     int
	performance []repository.GroupPerformance
	counts      map[string]int
}

func newFakeCompletionRepository() *fakeCompletionRepository {
	return &fakeCompletionRepository{counts: map[string]int{}}
}

func (r *fakeCompletionRepository) Create(completion *model.Completion) error {
	for _, c := range r.completions {
		if c.GoalID == completion.GoalID && c.UserID == completion.UserID {
			return repository.ErrAlreadyCompleted
		}
	}
	copied := *completion
	r.completions = append(r.completions, &copied)
	return nil
}

func (r *fakeCompletionRepository) ByGoal(goalID string) ([]model.CompletionDetail, error) {
	var out []model.CompletionDetail
	for _, c := range r.completions {
		if c.GoalID == goalID {
			out = append(out, model.CompletionDetail{Completion: *c})
		}
	}
	return out, nil
}

func (r *fakeCompletionRepository) HasCompleted(goalID, userID string) (bool, error) {
	for _, c := range r.completions {
		if c.GoalID == goalID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompletionRepository) InstantsInRange(userID string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, c := range r.completions {
		if c.UserID != userID {
			continue
		}
		if c.CompletedAt.Before(from) || !c.CompletedAt.Before(to) {
			continue
		}
		out = append(out, c.CompletedAt)
	}
	return out, nil
}

func (r *fakeCompletionRepository) Stats(userID string) (*repository.CompletionStats, error) {
	stats := r.stats
	return &stats, nil
}

func (r *fakeCompletionRepository) PendingCount(userID string) (int, error) {
	return r.pending, nil
}

func (r *fakeCompletionRepository) PerformanceByGroup(userID string) ([]repository.GroupPerformance, error) {
	return r.performance, nil
}

func (r *fakeCompletionRepository) CountPerMemberInGroup(groupID string) (map[string]int, error) {
	return r.counts, nil
}
