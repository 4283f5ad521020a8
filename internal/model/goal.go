package model

import (
	"time"
)

const (
	TimelinessOnTime = "on_time"
	TimelinessLate   = "late"
)

type Goal struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	CreatedBy   string     `db:"created_by" json:"createdBy"`
	GroupID     *string    `db:"group_id" json:"groupId"` // nil for personal goals
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

func (g *Goal) IsPersonal() bool {
	return g.GroupID == nil
}

// Completion records that a user completed a goal at an instant. A user
// appears at most once per goal.
type Completion struct {
	ID          string    `db:"id" json:"id"`
	GoalID      string    `db:"goal_id" json:"goalId"`
	UserID      string    `db:"user_id" json:"userId"`
	CompletedAt time.Time `db:"completed_at" json:"completedAt"`
	Timeliness  string    `db:"timeliness" json:"timeliness"`
}

// CompletionDetail joins a completion with the completing user's name for
// goal detail responses.
type CompletionDetail struct {
	Completion
	UserName string `db:"user_name" json:"userName"`
}
