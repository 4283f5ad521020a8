package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/prepsync/prepsync/internal/db"
	"github.com/prepsync/prepsync/internal/model"
)

// newTestDB opens a fresh in-memory database with all migrations applied.
// A single connection keeps every statement on the same in-memory instance.
// Foreign keys are enabled as in production, so cascades behave the same.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func insertUserModel(name, email string) *model.User {
	return &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
}

func insertUser(t *testing.T, repo UserRepository, name, email string) *model.User {
	t.Helper()

	user := insertUserModel(name, email)
	require.NoError(t, repo.Create(user))
	return user
}

func insertGroup(t *testing.T, repo GroupRepository, name, createdBy string) *model.Group {
	t.Helper()

	group := &model.Group{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(group))
	return group
}

func insertGoal(t *testing.T, repo GoalRepository, createdBy string, groupID *string) *model.Goal {
	t.Helper()

	goal := &model.Goal{
		ID:        uuid.New().String(),
		Title:     "goal",
		CreatedBy: createdBy,
		GroupID:   groupID,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(goal))
	return goal
}
