package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepsync/prepsync/internal/model"
)

type completionFixture struct {
	users       UserRepository
	groups      GroupRepository
	goals       GoalRepository
	completions CompletionRepository
}

func newCompletionFixture(t *testing.T) *completionFixture {
	t.Helper()

	database := newTestDB(t)
	return &completionFixture{
		users:       NewUserRepository(database),
		groups:      NewGroupRepository(database),
		goals:       NewGoalRepository(database),
		completions: NewCompletionRepository(database),
	}
}

func (f *completionFixture) complete(t *testing.T, goalID, userID string, at time.Time) {
	t.Helper()
	require.NoError(t, f.completions.Create(&model.Completion{
		ID:          uuid.New().String(),
		GoalID:      goalID,
		UserID:      userID,
		CompletedAt: at,
		Timeliness:  model.TimelinessOnTime,
	}))
}

func TestCompletionUniquePerGoalAndUser(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")
	goal := insertGoal(t, f.goals, alice.ID, nil)

	f.complete(t, goal.ID, alice.ID, time.Now().UTC())

	err := f.completions.Create(&model.Completion{
		ID:          uuid.New().String(),
		GoalID:      goal.ID,
		UserID:      alice.ID,
		CompletedAt: time.Now().UTC(),
		Timeliness:  model.TimelinessLate,
	})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	done, err := f.completions.HasCompleted(goal.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestCompletionByGoalIncludesUserNames(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")
	bob := insertUser(t, f.users, "Bob", "b@example.com")
	group := insertGroup(t, f.groups, "Math", alice.ID)
	require.NoError(t, f.groups.AddMember(group.ID, bob.ID))
	goal := insertGoal(t, f.goals, alice.ID, &group.ID)

	base := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	f.complete(t, goal.ID, bob.ID, base)
	f.complete(t, goal.ID, alice.ID, base.Add(time.Hour))

	details, err := f.completions.ByGoal(goal.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Bob", details[0].UserName)
	assert.Equal(t, "Alice", details[1].UserName)
}

func TestInstantsInRangeBounds(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	inside := insertGoal(t, f.goals, alice.ID, nil)
	before := insertGoal(t, f.goals, alice.ID, nil)
	atEnd := insertGoal(t, f.goals, alice.ID, nil)

	f.complete(t, inside.ID, alice.ID, from.Add(36*time.Hour))
	f.complete(t, before.ID, alice.ID, from.Add(-time.Second))
	f.complete(t, atEnd.ID, alice.ID, to) // half-open: excluded

	instants, err := f.completions.InstantsInRange(alice.ID, from, to)
	require.NoError(t, err)
	require.Len(t, instants, 1)
	assert.True(t, instants[0].Equal(from.Add(36*time.Hour)))
}

func TestInstantsInRangeMixedOffsets(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")

	// Dashboard windows arrive with bounds in the reference zone while the
	// stored instants are UTC; the range query must match by instant, not by
	// the lexical order of the encoded timestamps.
	ist := time.FixedZone("UTC+05:30", 5*3600+30*60)
	from := time.Date(2024, 2, 25, 0, 0, 0, 0, ist) // 2024-02-24T18:30:00Z
	to := time.Date(2024, 2, 26, 0, 0, 0, 0, ist)

	early := insertGoal(t, f.goals, alice.ID, nil)
	late := insertGoal(t, f.goals, alice.ID, nil)
	prior := insertGoal(t, f.goals, alice.ID, nil)

	inDay := time.Date(2024, 2, 24, 19, 30, 0, 0, time.UTC) // 01:00 on the civil day
	f.complete(t, early.ID, alice.ID, inDay)
	f.complete(t, late.ID, alice.ID, time.Date(2024, 2, 25, 9, 0, 0, 0, ist))
	f.complete(t, prior.ID, alice.ID, time.Date(2024, 2, 24, 23, 0, 0, 0, ist))

	instants, err := f.completions.InstantsInRange(alice.ID, from, to)
	require.NoError(t, err)
	require.Len(t, instants, 2)
	assert.True(t, instants[0].Equal(inDay))
	assert.True(t, instants[1].Equal(time.Date(2024, 2, 25, 9, 0, 0, 0, ist)))
}

func TestStatsSplitsPersonalAndGroup(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")
	group := insertGroup(t, f.groups, "Math", alice.ID)

	now := time.Now().UTC()
	for i := 0; i < 2; i++ {
		personal := insertGoal(t, f.goals, alice.ID, nil)
		f.complete(t, personal.ID, alice.ID, now)
	}
	grouped := insertGoal(t, f.goals, alice.ID, &group.ID)
	f.complete(t, grouped.ID, alice.ID, now)

	stats, err := f.completions.Stats(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCompleted)
	assert.Equal(t, 2, stats.PersonalGoalsCompleted)
	assert.Equal(t, 1, stats.GroupGoalsCompleted)
}

func TestPendingCountCoversVisibleGoals(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")
	bob := insertUser(t, f.users, "Bob", "b@example.com")
	group := insertGroup(t, f.groups, "Math", bob.ID)
	require.NoError(t, f.groups.AddMember(group.ID, alice.ID))

	insertGoal(t, f.goals, alice.ID, nil) // pending personal goal
	donePersonal := insertGoal(t, f.goals, alice.ID, nil)
	f.complete(t, donePersonal.ID, alice.ID, time.Now().UTC())

	insertGoal(t, f.goals, bob.ID, &group.ID) // pending for alice via membership
	insertGoal(t, f.goals, bob.ID, nil)       // bob's personal goal, invisible

	count, err := f.completions.PendingCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPerformanceByGroup(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")
	bob := insertUser(t, f.users, "Bob", "b@example.com")

	math := insertGroup(t, f.groups, "Math", alice.ID)
	physics := insertGroup(t, f.groups, "Physics", bob.ID)
	require.NoError(t, f.groups.AddMember(physics.ID, alice.ID))

	now := time.Now().UTC()
	mathGoal := insertGoal(t, f.goals, alice.ID, &math.ID)
	f.complete(t, mathGoal.ID, alice.ID, now)
	insertGoal(t, f.goals, bob.ID, &physics.ID) // not completed by alice

	perf, err := f.completions.PerformanceByGroup(alice.ID)
	require.NoError(t, err)
	require.Len(t, perf, 2)

	byName := map[string]int{}
	for _, p := range perf {
		byName[p.GroupName] = p.CompletedCount
	}
	assert.Equal(t, 1, byName["Math"])
	assert.Zero(t, byName["Physics"])
}

func TestCountPerMemberInGroup(t *testing.T) {
	f := newCompletionFixture(t)
	alice := insertUser(t, f.users, "Alice", "a@example.com")
	bob := insertUser(t, f.users, "Bob", "b@example.com")
	group := insertGroup(t, f.groups, "Math", alice.ID)
	require.NoError(t, f.groups.AddMember(group.ID, bob.ID))

	now := time.Now().UTC()
	first := insertGoal(t, f.goals, alice.ID, &group.ID)
	second := insertGoal(t, f.goals, alice.ID, &group.ID)
	f.complete(t, first.ID, alice.ID, now)
	f.complete(t, second.ID, alice.ID, now)
	f.complete(t, first.ID, bob.ID, now)

	counts, err := f.completions.CountPerMemberInGroup(group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[alice.ID])
	assert.Equal(t, 1, counts[bob.ID])
}
