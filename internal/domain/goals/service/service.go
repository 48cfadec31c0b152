// Package service provides business logic for savings goals.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/repository"
)

var (
	ErrInvalidName   = errors.New("goal name is required")
	ErrInvalidTarget = errors.New("target amount must be positive")
	ErrInvalidAmount = errors.New("contribution must be positive")
	ErrPastDate      = errors.New("target date is in the past")
	ErrGoalNotFound  = errors.New("goal not found")
)

// GoalProgress contains calculated progress information
type GoalProgress struct {
	Goal               *repository.Goal
	ProgressPercent    float64 // 0-100, current/target
	PacePercent        float64 // 100 = on track, <100 = behind
	IsBehindPace       bool
	DaysRemaining      int
	AmountNeededPerDay int64
}

// MilestoneReached contains info about a reached milestone
type MilestoneReached struct {
	Percent int
	Message string
}

var milestonePercents = []int{25, 50, 75, 100}

// Service provides goal management business logic
type Service struct {
	repo     repository.GoalRepository
	currency string
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// NewService creates a new goals service
func NewService(repo repository.GoalRepository, currency string, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		currency: currency,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// CreateGoal creates an active goal due on the given calendar day.
func (s *Service) CreateGoal(ctx context.Context, userID uuid.UUID, name string, targetMinor int64, due time.Time) (*repository.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if targetMinor <= 0 {
		return nil, ErrInvalidTarget
	}

	today := s.today()
	endAt := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, s.loc)
	if endAt.Before(today) {
		return nil, ErrPastDate
	}

	goal := &repository.Goal{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              name,
		Status:            repository.GoalStatusActive,
		TargetAmountMinor: targetMinor,
		CurrencyCode:      s.currency,
		StartAt:           today,
		EndAt:             endAt,
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "goal created",
		slog.String("user_id", userID.String()),
		slog.String("goal_id", goal.ID.String()),
		slog.Int64("target_minor", targetMinor))
	return goal, nil
}

// ListGoals returns the user's active goals ordered by target date, with
// progress computed against today.
func (s *Service) ListGoals(ctx context.Context, userID uuid.UUID) ([]*GoalProgress, error) {
	goals, err := s.activeGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, s.progress(g))
	}
	return out, nil
}

// ContributeToGoal adds amountMinor to the goal at the given 1-based position
// of the active list. The balance never exceeds the target, and reaching the
// target completes the goal.
func (s *Service) ContributeToGoal(ctx context.Context, userID uuid.UUID, position int, amountMinor int64) (*GoalProgress, *MilestoneReached, error) {
	if amountMinor <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	goal, err := s.goalAt(ctx, userID, position)
	if err != nil {
		return nil, nil, err
	}

	previous := goal.CurrentAmountMinor
	updated := previous + amountMinor
	if updated > goal.TargetAmountMinor {
		updated = goal.TargetAmountMinor
	}
	goal.CurrentAmountMinor = updated
	if updated >= goal.TargetAmountMinor {
		goal.Status = repository.GoalStatusCompleted
	}

	if err := s.repo.UpdateProgress(ctx, goal); err != nil {
		return nil, nil, err
	}

	var reached *MilestoneReached
	for i := len(milestonePercents) - 1; i >= 0; i-- {
		pct := milestonePercents[i]
		threshold := goal.TargetAmountMinor * int64(pct) / 100
		if previous < threshold && updated >= threshold {
			reached = &MilestoneReached{Percent: pct, Message: milestoneMessage(pct)}
			break
		}
	}

	s.logger.InfoContext(ctx, "goal contribution",
		slog.String("user_id", userID.String()),
		slog.String("goal_id", goal.ID.String()),
		slog.Int64("current_minor", updated),
		slog.String("status", string(goal.Status)))

	return s.progress(goal), reached, nil
}

// DeleteGoal removes the goal at the given 1-based position of the active list.
func (s *Service) DeleteGoal(ctx context.Context, userID uuid.UUID, position int) (*repository.Goal, error) {
	goal, err := s.goalAt(ctx, userID, position)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, userID, goal.ID); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) activeGoals(ctx context.Context, userID uuid.UUID) ([]*repository.Goal, error) {
	status := repository.GoalStatusActive
	goals, err := s.repo.ListByUserID(ctx, userID, &status)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *Service) goalAt(ctx context.Context, userID uuid.UUID, position int) (*repository.Goal, error) {
	goals, err := s.activeGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if position < 1 || position > len(goals) {
		return nil, ErrGoalNotFound
	}
	return goals[position-1], nil
}

func (s *Service) progress(goal *repository.Goal) *GoalProgress {
	today := s.today()
	p := &GoalProgress{Goal: goal}

	if goal.TargetAmountMinor > 0 {
		p.ProgressPercent = float64(goal.CurrentAmountMinor) / float64(goal.TargetAmountMinor) * 100
		if p.ProgressPercent > 100 {
			p.ProgressPercent = 100
		}
	}

	if today.Before(goal.EndAt) {
		p.DaysRemaining = daysBetween(today, goal.EndAt)
	}

	totalDays := float64(daysBetween(goal.StartAt, goal.EndAt))
	elapsedDays := float64(daysBetween(goal.StartAt, today))
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	if elapsedDays > totalDays {
		elapsedDays = totalDays
	}

	expected := 0.0
	if totalDays > 0 {
		expected = elapsedDays / totalDays * 100
	}
	if expected > 0 {
		p.PacePercent = p.ProgressPercent / expected * 100
	} else {
		p.PacePercent = 100
	}
	p.IsBehindPace = p.PacePercent < 100 && goal.Status == repository.GoalStatusActive

	if p.DaysRemaining > 0 {
		p.AmountNeededPerDay = goal.Remaining() / int64(p.DaysRemaining)
	}
	return p
}

// daysBetween counts calendar days, ignoring DST shifts.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func milestoneMessage(percent int) string {
	switch percent {
	case 25:
		return "Ótimo começo! Você já juntou 25% da meta!"
	case 50:
		return "Metade do caminho! Continue assim!"
	case 75:
		return "Progresso incrível! Faltam só 25%!"
	case 100:
		return "Parabéns! Você alcançou sua meta! 🎉"
	default:
		return fmt.Sprintf("Você alcançou %d%% da sua meta!", percent)
	}
}
