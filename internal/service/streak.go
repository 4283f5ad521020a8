package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prepsync/prepsync/internal/activity"
	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/repository"
)

// StreakService applies the streak transition rules against persisted user
// state. Both streak fields are written in one guarded statement so a reader
// never observes one without the other.
type StreakService struct {
	userRepository repository.UserRepository
	calendar       activity.Calendar
	now            func() time.Time
}

func NewStreakService(userRepository repository.UserRepository, calendar activity.Calendar) *StreakService {
	return &StreakService{
		userRepository: userRepository,
		calendar:       calendar,
		now:            time.Now,
	}
}

func (s *StreakService) Calendar() activity.Calendar {
	return s.calendar
}

// RecordCompletion credits today's completion and returns the resulting
// streak. Completions already credited today leave the streak unchanged.
// Concurrent completions by the same user are serialized by the guarded
// write: on a lost race the state is re-read and the transition recomputed.
func (s *StreakService) RecordCompletion(userID string) (int, error) {
	today := s.calendar.Today(s.now())

	for attempt := 0; attempt < 2; attempt++ {
		user, err := s.userRepository.ByID(userID)
		if err != nil {
			return 0, fmt.Errorf("failed to read streak state: %w", err)
		}

		state, err := streakState(user)
		if err != nil {
			return 0, err
		}

		next, changed := activity.Complete(state, today)
		if !changed {
			return state.Count, nil
		}

		date := next.Last.String()
		ok, err := s.userRepository.UpdateStreak(userID, next.Count, &date, user.Streak, user.LastCompletedDate)
		if err != nil {
			return 0, fmt.Errorf("failed to persist streak: %w", err)
		}
		if ok {
			return next.Count, nil
		}
		// Guard mismatch: another completion won the race. Retry once from
		// fresh state; the second observation of the same day is a no-op.
	}

	return 0, fmt.Errorf("streak update for user %s kept losing races", userID)
}

// CurrentStreak returns the streak as of now, lazily decaying a lapsed one.
// The healing write is best effort: its failure is logged and the computed
// value is still returned.
func (s *StreakService) CurrentStreak(user *model.User) (int, error) {
	today := s.calendar.Today(s.now())

	state, err := streakState(user)
	if err != nil {
		return 0, err
	}

	displayed, stale := activity.Observe(state, today)
	if stale {
		err = s.userRepository.ResetStreak(user.ID)
		if err != nil {
			slog.Warn("failed to persist streak decay", "error", err, "user_id", user.ID)
		}
	}
	return displayed, nil
}

func streakState(user *model.User) (activity.StreakState, error) {
	state := activity.StreakState{Count: user.Streak}
	if user.LastCompletedDate != nil {
		last, err := activity.ParseDate(*user.LastCompletedDate)
		if err != nil {
			return activity.StreakState{}, fmt.Errorf("corrupt last completion date for user %s: %w", user.ID, err)
		}
		state.Last = &last
	}
	return state, nil
}
