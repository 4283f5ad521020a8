package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prepsync/prepsync/internal/model"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNotMember     = errors.New("not a member of this group")
)

type GroupRepository interface {
	Create(group *model.Group) error
	ByID(id string) (*model.Group, error)
	Delete(id string) error

	AddMember(groupID, userID string) error
	RemoveMember(groupID, userID string) error
	IsMember(groupID, userID string) (bool, error)
	Members(groupID string) ([]model.MemberSummary, error)
	GroupsByUser(userID string) ([]*model.Group, error)

	// MembersWithStreak returns leaderboard rows without completion counts.
	MembersWithStreak(groupID string) ([]model.LeaderboardEntry, error)
}

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create inserts the group and its admin as first member in one transaction.
func (r *groupRepository) Create(group *model.Group) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO groups (id, name, description, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err = tx.Exec(query, group.ID, group.Name, group.Description, group.CreatedBy, group.CreatedAt)
	if err != nil {
		return err
	}

	memberQuery := `INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3)`
	_, err = tx.Exec(memberQuery, group.ID, group.CreatedBy, time.Now())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *groupRepository) ByID(id string) (*model.Group, error) {
	group := &model.Group{}
	query := `SELECT * FROM groups WHERE id = $1`

	err := r.db.Get(group, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrGroupNotFound
	}

	return group, err
}

func (r *groupRepository) Delete(id string) error {
	query := `DELETE FROM groups WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGroupNotFound
	}

	return nil
}

func (r *groupRepository) AddMember(groupID, userID string) error {
	query := `INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3)
	          ON CONFLICT (group_id, user_id) DO NOTHING`

	_, err := r.db.Exec(query, groupID, userID, time.Now())
	return err
}

func (r *groupRepository) RemoveMember(groupID, userID string) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, groupID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotMember
	}

	return nil
}

func (r *groupRepository) IsMember(groupID, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM group_members WHERE group_id = $1 AND user_id = $2`

	err := r.db.QueryRow(query, groupID, userID).Scan(&count)
	return count > 0, err
}

func (r *groupRepository) Members(groupID string) ([]model.MemberSummary, error) {
	var members []model.MemberSummary
	query := `SELECT u.id, u.name, u.email FROM users u
	          JOIN group_members gm ON gm.user_id = u.id
	          WHERE gm.group_id = $1
	          ORDER BY gm.joined_at ASC`

	err := r.db.Select(&members, query, groupID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *groupRepository) GroupsByUser(userID string) ([]*model.Group, error) {
	var groups []*model.Group
	query := `SELECT g.* FROM groups g
	          JOIN group_members gm ON gm.group_id = g.id
	          WHERE gm.user_id = $1
	          ORDER BY g.created_at DESC`

	err := r.db.Select(&groups, query, userID)
	if err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *groupRepository) MembersWithStreak(groupID string) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	query := `SELECT u.id AS user_id, u.name, u.email, u.streak,
	                 0 AS total_completed_in_group
	          FROM users u
	          JOIN group_members gm ON gm.user_id = u.id
	          WHERE gm.group_id = $1`

	err := r.db.Select(&entries, query, groupID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
