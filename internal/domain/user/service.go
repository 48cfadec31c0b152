package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type repository interface {
	Upsert(ctx context.Context, phone, name string) (*User, error)
}

// Service registers chat participants.
type Service struct {
	repo   repository
	logger *slog.Logger
}

// NewService creates a new user service
func NewService(repo repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterOrTouch upserts the sender and returns its ID. Safe to call on every
// message.
func (s *Service) RegisterOrTouch(ctx context.Context, senderID, displayName string) (uuid.UUID, error) {
	u, err := s.repo.Upsert(ctx, senderID, strings.TrimSpace(displayName))
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Debug("user touched", slog.String("user_id", u.ID.String()))
	return u.ID, nil
}
