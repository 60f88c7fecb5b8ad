package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// CreateGoal creates a savings goal.
func (s *Store) CreateGoal(userID string, goal *models.Goal) (*models.Goal, error) {
	goal.UserID = userID
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals lists a user's goals, highest priority first.
func (s *Store) GetGoals(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID returns a goal if it belongs to the user.
func (s *Store) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update.
func (s *Store) UpdateGoal(userID, goalID string, updates map[string]any) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetGoalByID(userID, goalID)
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetGoalSummary aggregates a user's goals.
func (s *Store) GetGoalSummary(userID string) (*models.GoalSummary, error) {
	goals, err := s.GetGoals(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.GoalSummary{TotalGoals: len(goals)}
	for i := range goals {
		g := &goals[i]
		summary.TotalTarget += g.TargetAmount
		summary.TotalSaved += g.CurrentAmount
		if g.Completed() {
			summary.Completed++
		} else {
			summary.InProgress++
		}
	}
	if summary.TotalTarget > 0 {
		summary.OverallPercent = summary.TotalSaved / summary.TotalTarget * 100
	}
	return summary, nil
}

// Contribute adds an amount to a goal's current total, raising a
// notification the first time the goal reaches its target.
func (s *Store) Contribute(userID, goalID string, amount float64) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	wasCompleted := goal.Completed()
	if err := s.db.Model(goal).
		Update("current_amount", gorm.Expr("current_amount + ?", amount)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal, err = s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if !wasCompleted && goal.Completed() {
		_, nerr := s.CreateNotification(userID, models.NotificationTypeGoal,
			"Goal reached: "+goal.Name,
			fmt.Sprintf("You have saved %.2f of your %.2f target.", goal.CurrentAmount, goal.TargetAmount))
		if nerr != nil {
			logger.Get().Warnw("goal notification failed", "goal_id", goal.ID, "error", nerr.Error())
		}
	}
	return goal, nil
}
