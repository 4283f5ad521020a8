package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prepsync/prepsync/internal/model"
)

var (
	ErrAlreadyCompleted = errors.New("goal already completed by this user")
)

// GroupPerformance is the per-group completion count for one user.
type GroupPerformance struct {
	GroupID        string `db:"group_id" json:"groupId"`
	GroupName      string `db:"group_name" json:"groupName"`
	CompletedCount int    `db:"completed_count" json:"completedCount"`
}

// CompletionStats are the dashboard counters derived from completion rows.
type CompletionStats struct {
	TotalCompleted          int `db:"total_completed" json:"totalCompleted"`
	PersonalGoalsCompleted  int `db:"personal_completed" json:"personalGoalsCompleted"`
	GroupGoalsCompleted     int `db:"group_completed" json:"groupGoalsCompleted"`
}

type CompletionRepository interface {
	// Create records one user's completion of one goal. The (goal, user)
	// pair is unique; a second completion returns ErrAlreadyCompleted.
	Create(completion *model.Completion) error
	ByGoal(goalID string) ([]model.CompletionDetail, error)
	HasCompleted(goalID, userID string) (bool, error)

	// InstantsInRange returns the user's completion instants across all
	// goals with from <= completed_at < to, for activity aggregation.
	InstantsInRange(userID string, from, to time.Time) ([]time.Time, error)

	Stats(userID string) (*CompletionStats, error)
	// PendingCount counts goals visible to the user (own personal goals plus
	// goals of joined groups) with no completion by the user.
	PendingCount(userID string) (int, error)
	PerformanceByGroup(userID string) ([]GroupPerformance, error)
	// CountPerMemberInGroup returns completed-goal counts per user for one
	// group's goals, keyed by user id.
	CountPerMemberInGroup(groupID string) (map[string]int, error)
}

type completionRepository struct {
	db *sqlx.DB
}

func NewCompletionRepository(db *sqlx.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Create(completion *model.Completion) error {
	query := `INSERT INTO goal_completions (id, goal_id, user_id, completed_at, timeliness)
	          VALUES ($1, $2, $3, $4, $5)`

	// Instants are stored normalized to UTC. SQLite compares timestamp text
	// lexically, so mixed offsets in the column would break range queries.
	_, err := r.db.Exec(query, completion.ID, completion.GoalID, completion.UserID, completion.CompletedAt.UTC(), completion.Timeliness)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrAlreadyCompleted
		}
		return err
	}

	return nil
}

func (r *completionRepository) ByGoal(goalID string) ([]model.CompletionDetail, error) {
	var details []model.CompletionDetail
	query := `SELECT gc.*, u.name AS user_name FROM goal_completions gc
	          JOIN users u ON u.id = gc.user_id
	          WHERE gc.goal_id = $1
	          ORDER BY gc.completed_at ASC`

	err := r.db.Select(&details, query, goalID)
	if err != nil {
		return nil, err
	}

	return details, nil
}

func (r *completionRepository) HasCompleted(goalID, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM goal_completions WHERE goal_id = $1 AND user_id = $2`

	err := r.db.QueryRow(query, goalID, userID).Scan(&count)
	return count > 0, err
}

func (r *completionRepository) InstantsInRange(userID string, from, to time.Time) ([]time.Time, error) {
	var instants []time.Time
	query := `SELECT completed_at FROM goal_completions
	          WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
	          ORDER BY completed_at ASC`

	// Bounds often arrive in the reference zone while the column holds UTC
	// text; bind them in UTC so the comparison stays chronological.
	err := r.db.Select(&instants, query, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}

	return instants, nil
}

func (r *completionRepository) Stats(userID string) (*CompletionStats, error) {
	stats := &CompletionStats{}
	query := `SELECT
	            COUNT(*) AS total_completed,
	            COUNT(CASE WHEN g.group_id IS NULL THEN 1 END) AS personal_completed,
	            COUNT(CASE WHEN g.group_id IS NOT NULL THEN 1 END) AS group_completed
	          FROM goal_completions gc
	          JOIN goals g ON g.id = gc.goal_id
	          WHERE gc.user_id = $1`

	err := r.db.Get(stats, query, userID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *completionRepository) PendingCount(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals g
	          WHERE ((g.created_by = $1 AND g.group_id IS NULL)
	                 OR g.group_id IN (SELECT group_id FROM group_members WHERE user_id = $1))
	            AND NOT EXISTS (SELECT 1 FROM goal_completions gc
	                            WHERE gc.goal_id = g.id AND gc.user_id = $1)`

	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *completionRepository) PerformanceByGroup(userID string) ([]GroupPerformance, error) {
	var perf []GroupPerformance
	query := `SELECT grp.id AS group_id, grp.name AS group_name,
	                 COUNT(gc.id) AS completed_count
	          FROM groups grp
	          JOIN group_members gm ON gm.group_id = grp.id AND gm.user_id = $1
	          LEFT JOIN goals g ON g.group_id = grp.id
	          LEFT JOIN goal_completions gc ON gc.goal_id = g.id AND gc.user_id = $1
	          GROUP BY grp.id, grp.name`

	err := r.db.Select(&perf, query, userID)
	if err != nil {
		return nil, err
	}

	return perf, nil
}

func (r *completionRepository) CountPerMemberInGroup(groupID string) (map[string]int, error) {
	rows := []struct {
		UserID string `db:"user_id"`
		Count  int    `db:"count"`
	}{}
	query := `SELECT gc.user_id, COUNT(*) AS count
	          FROM goal_completions gc
	          JOIN goals g ON g.id = gc.goal_id
	          WHERE g.group_id = $1
	          GROUP BY gc.user_id`

	err := r.db.Select(&rows, query, groupID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
