package models

import "time"

// Goal represents a savings goal.
type Goal struct {
	Base
	UserID        string     `gorm:"index;not null" json:"-"`
	Name          string     `gorm:"not null" json:"name"`
	TargetAmount  float64    `gorm:"not null" json:"target_amount"`
	CurrentAmount float64    `gorm:"not null;default:0" json:"current_amount"`
	Category      string     `json:"category"`
	Icon          string     `json:"icon"`
	Color         string     `json:"color"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	Priority      int        `gorm:"default:0" json:"priority"`
}

// ProgressPercent returns the raw progress percentage, unclamped, so the
// display can show overfunded goals (e.g. 120%). A zero target reports 0.
func (g *Goal) ProgressPercent() float64 {
	if g.TargetAmount == 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// BarPercent returns the progress clamped to [0, 100] for progress bars.
func (g *Goal) BarPercent() float64 {
	pct := g.ProgressPercent()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Completed reports whether the goal has reached its target.
func (g *Goal) Completed() bool {
	return g.TargetAmount > 0 && g.CurrentAmount >= g.TargetAmount
}

// GoalSummary aggregates a user's savings goals.
type GoalSummary struct {
	TotalGoals     int     `json:"total_goals"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	TotalTarget    float64 `json:"total_target"`
	TotalSaved     float64 `json:"total_saved"`
	OverallPercent float64 `json:"overall_percent"`
}
