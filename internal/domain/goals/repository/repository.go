// Package repository provides database operations for savings goals.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the status of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

// Goal is a savings target the user wants to reach by EndAt.
type Goal struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	Status             GoalStatus
	TargetAmountMinor  int64
	CurrencyCode       string
	CurrentAmountMinor int64
	StartAt            time.Time
	EndAt              time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Remaining returns how much is still missing to reach the target.
func (g *Goal) Remaining() int64 {
	if g.CurrentAmountMinor >= g.TargetAmountMinor {
		return 0
	}
	return g.TargetAmountMinor - g.CurrentAmountMinor
}

// GoalRepository defines the interface for goal persistence operations.
// Every lookup is scoped to the owning user.
type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUserID(ctx context.Context, userID uuid.UUID, statusFilter *GoalStatus) ([]*Goal, error)

	// UpdateProgress stores the current amount and status of the goal.
	UpdateProgress(ctx context.Context, goal *Goal) error
}
