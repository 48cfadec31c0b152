// Package budget tracks monthly spending limits per expense category.
package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PeriodMonthly is the only budget period.
const PeriodMonthly = "monthly"

// Status thresholds, in percent of the budget spent.
const (
	WarningPercent  = 80
	ExceededPercent = 100
)

var (
	ErrInvalidAmount = errors.New("budget amount must be positive")
	ErrNoBudget      = errors.New("no budget for category")
)

// Status classifies how much of a budget has been spent.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// StatusFor returns the status for a spent percentage.
func StatusFor(percent float64) Status {
	switch {
	case percent >= ExceededPercent:
		return StatusExceeded
	case percent >= WarningPercent:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Budget is a spending limit for one expense category.
type Budget struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	AmountMinor  int64
	Period       string
	UpdatedAt    time.Time
}

// Progress is a budget with what has been spent against it this month.
type Progress struct {
	Budget
	SpentMinor int64
	Percent    float64
	Status     Status
}

// RemainingMinor is negative when the budget is exceeded.
func (p Progress) RemainingMinor() int64 {
	return p.AmountMinor - p.SpentMinor
}

func newProgress(b Budget, spent int64) Progress {
	p := Progress{Budget: b, SpentMinor: spent}
	if b.AmountMinor > 0 {
		p.Percent = float64(spent) / float64(b.AmountMinor) * 100
	}
	p.Status = StatusFor(p.Percent)
	return p
}
