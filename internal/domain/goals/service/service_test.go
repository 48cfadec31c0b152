package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/repository"
)

type fakeRepo struct {
	goals   []*repository.Goal
	updated *repository.Goal
	deleted uuid.UUID
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, goal *repository.Goal) error {
	if f.err != nil {
		return f.err
	}
	f.goals = append(f.goals, goal)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*repository.Goal, error) {
	for _, g := range f.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	f.deleted = id
	return f.err
}

func (f *fakeRepo) ListByUserID(ctx context.Context, userID uuid.UUID, statusFilter *repository.GoalStatus) ([]*repository.Goal, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*repository.Goal
	for _, g := range f.goals {
		if statusFilter == nil || g.Status == *statusFilter {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateProgress(ctx context.Context, goal *repository.Goal) error {
	f.updated = goal
	return f.err
}

var fixedNow = time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, "BRL", time.UTC, logger).WithClock(func() time.Time { return fixedNow })
}

func goal(name string, target, current int64, end time.Time) *repository.Goal {
	return &repository.Goal{
		ID:                 uuid.New(),
		Name:               name,
		Status:             repository.GoalStatusActive,
		TargetAmountMinor:  target,
		CurrentAmountMinor: current,
		CurrencyCode:       "BRL",
		StartAt:            time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndAt:              end,
	}
}

func TestCreateGoal(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	g, err := svc.CreateGoal(context.Background(), uuid.New(), "  Reserva de emergência ", 100000, time.Date(2026, 12, 31, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Reserva de emergência", g.Name)
	assert.Equal(t, repository.GoalStatusActive, g.Status)
	assert.Equal(t, "BRL", g.CurrencyCode)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), g.EndAt)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), g.StartAt)
	require.Len(t, repo.goals, 1)
}

func TestCreateGoal_Validation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		target  int64
		due     time.Time
		wantErr error
	}{
		{"blank name", " ", 100, fixedNow.AddDate(0, 1, 0), ErrInvalidName},
		{"zero target", "Viagem", 0, fixedNow.AddDate(0, 1, 0), ErrInvalidTarget},
		{"past date", "Viagem", 100, fixedNow.AddDate(0, 0, -1), ErrPastDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(&fakeRepo{}).CreateGoal(context.Background(), uuid.New(), tt.title, tt.target, tt.due)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateGoal_TodayIsAllowed(t *testing.T) {
	_, err := newTestService(&fakeRepo{}).CreateGoal(context.Background(), uuid.New(), "Hoje", 100, fixedNow)
	assert.NoError(t, err)
}

func TestListGoals_Progress(t *testing.T) {
	repo := &fakeRepo{goals: []*repository.Goal{
		goal("Viagem", 100000, 25000, time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)),
		goal("Vencida", 1000, 100, time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)),
	}}
	done := goal("Feita", 100, 100, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	done.Status = repository.GoalStatusCompleted
	repo.goals = append(repo.goals, done)

	list, err := newTestService(repo).ListGoals(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, list, 2)

	first := list[0]
	assert.InDelta(t, 25.0, first.ProgressPercent, 0.001)
	assert.Equal(t, 16, first.DaysRemaining)
	assert.Equal(t, int64(75000/16), first.AmountNeededPerDay)
	// 14 of 30 days elapsed, 25% saved: behind the linear pace
	assert.True(t, first.IsBehindPace)

	assert.Equal(t, 0, list[1].DaysRemaining)
}

func TestContributeToGoal(t *testing.T) {
	g := goal("Viagem", 10000, 2000, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))
	repo := &fakeRepo{goals: []*repository.Goal{g}}

	progress, milestone, err := newTestService(repo).ContributeToGoal(context.Background(), uuid.New(), 1, 3500)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), progress.Goal.CurrentAmountMinor)
	assert.Equal(t, repository.GoalStatusActive, progress.Goal.Status)
	require.NotNil(t, milestone)
	assert.Equal(t, 50, milestone.Percent)
	assert.Same(t, g, repo.updated)
}

func TestContributeToGoal_CapsAtTarget(t *testing.T) {
	g := goal("Viagem", 10000, 9000, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))
	repo := &fakeRepo{goals: []*repository.Goal{g}}

	progress, milestone, err := newTestService(repo).ContributeToGoal(context.Background(), uuid.New(), 1, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), progress.Goal.CurrentAmountMinor)
	assert.Equal(t, repository.GoalStatusCompleted, progress.Goal.Status)
	assert.InDelta(t, 100.0, progress.ProgressPercent, 0.001)
	require.NotNil(t, milestone)
	assert.Equal(t, 100, milestone.Percent)
	assert.Contains(t, milestone.Message, "Parabéns")
}

func TestContributeToGoal_Errors(t *testing.T) {
	repo := &fakeRepo{goals: []*repository.Goal{goal("Viagem", 100, 0, fixedNow.AddDate(0, 1, 0))}}
	svc := newTestService(repo)

	_, _, err := svc.ContributeToGoal(context.Background(), uuid.New(), 2, 10)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, _, err = svc.ContributeToGoal(context.Background(), uuid.New(), 0, 10)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, _, err = svc.ContributeToGoal(context.Background(), uuid.New(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	repo.err = errors.New("db down")
	_, _, err = svc.ContributeToGoal(context.Background(), uuid.New(), 1, 10)
	assert.Error(t, err)
}

func TestDeleteGoal(t *testing.T) {
	first := goal("A", 100, 0, fixedNow.AddDate(0, 1, 0))
	second := goal("B", 100, 0, fixedNow.AddDate(0, 2, 0))
	repo := &fakeRepo{goals: []*repository.Goal{first, second}}

	deleted, err := newTestService(repo).DeleteGoal(context.Background(), uuid.New(), 2)
	require.NoError(t, err)
	assert.Equal(t, "B", deleted.Name)
	assert.Equal(t, second.ID, repo.deleted)
}
