package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/prepsync/prepsync/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(id string) (*model.Goal, error)
	Update(goal *model.Goal) error
	Delete(id string) error

	PersonalGoals(userID string) ([]*model.Goal, error)
	GroupGoals(groupID string) ([]*model.Goal, error)
	// GoalsOfJoinedGroups returns goals belonging to any group the user is
	// a member of.
	GoalsOfJoinedGroups(userID string) ([]*model.Goal, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, title, description, created_by, group_id, due_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, goal.ID, goal.Title, goal.Description, goal.CreatedBy, goal.GroupID, goal.DueDate, goal.CreatedAt)
	return err
}

func (r *goalRepository) ByID(id string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals SET title = $1, description = $2, due_date = $3 WHERE id = $4`

	result, err := r.db.Exec(query, goal.Title, goal.Description, goal.DueDate, goal.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(id string) error {
	query := `DELETE FROM goals WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) PersonalGoals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE created_by = $1 AND group_id IS NULL
	          ORDER BY created_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) GroupGoals(groupID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE group_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&goals, query, groupID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) GoalsOfJoinedGroups(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT g.* FROM goals g
	          JOIN group_members gm ON gm.group_id = g.group_id
	          WHERE gm.user_id = $1
	          ORDER BY g.created_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}
