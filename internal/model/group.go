package model

import (
	"time"
)

type Group struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// MemberSummary is the public slice of a user shown in group details
// and leaderboards.
type MemberSummary struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

type GroupDetails struct {
	Group
	Admin   MemberSummary   `json:"admin"`
	Members []MemberSummary `json:"members"`
}

type LeaderboardEntry struct {
	UserID                string `db:"user_id" json:"userId"`
	Name                  string `db:"name" json:"name"`
	Email                 string `db:"email" json:"email"`
	Streak                int    `db:"streak" json:"streak"`
	TotalCompletedInGroup int    `db:"total_completed_in_group" json:"totalCompletedInGroup"`
}
