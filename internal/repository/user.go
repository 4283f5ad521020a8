package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/prepsync/prepsync/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	Delete(id string) error

	// UpdateStreak writes both streak fields in a single statement, guarded
	// by the previously observed values so concurrent completions cannot
	// silently lose an update. Returns false when the guard did not match.
	UpdateStreak(userID string, streak int, lastCompletedDate *string, prevStreak int, prevDate *string) (bool, error)

	// ResetStreak zeroes a lapsed streak (lazy decay on read).
	ResetStreak(userID string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, streak, last_completed_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, user.ID, user.Name, user.Email, user.PasswordHash, user.Streak, user.LastCompletedDate, user.CreatedAt)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET name = $1, email = $2, password_hash = $3 WHERE id = $4`

	result, err := r.db.Exec(query, user.Name, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdateStreak(userID string, streak int, lastCompletedDate *string, prevStreak int, prevDate *string) (bool, error) {
	// NULL-safe guard on the previous date: IS NOT DISTINCT FROM is not
	// available on SQLite, so spell out both branches.
	var result sql.Result
	var err error
	if prevDate == nil {
		query := `UPDATE users SET streak = $1, last_completed_date = $2
		          WHERE id = $3 AND streak = $4 AND last_completed_date IS NULL`
		result, err = r.db.Exec(query, streak, lastCompletedDate, userID, prevStreak)
	} else {
		query := `UPDATE users SET streak = $1, last_completed_date = $2
		          WHERE id = $3 AND streak = $4 AND last_completed_date = $5`
		result, err = r.db.Exec(query, streak, lastCompletedDate, userID, prevStreak, *prevDate)
	}
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *userRepository) ResetStreak(userID string) error {
	query := `UPDATE users SET streak = 0 WHERE id = $1 AND streak <> 0`

	_, err := r.db.Exec(query, userID)
	return err
}
