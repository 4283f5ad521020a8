package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Streak       int       `db:"streak" json:"streak"`
	// Civil date (YYYY-MM-DD, reference timezone) of the most recent
	// completion across all goals. Null until the first completion.
	LastCompletedDate *string   `db:"last_completed_date" json:"lastCompletedDate"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}
