package categorization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

type repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	Create(ctx context.Context, userID uuid.UUID, name string, kind Kind) (*Category, error)
	CreateMissing(ctx context.Context, userID uuid.UUID, categories []Category) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service manages categories and suggests one for new transactions.
type Service struct {
	repo   repository
	engine *Engine
	fuzzy  *FuzzyMatcher
	logger *slog.Logger
}

// NewService creates a categorization service using the default keyword table.
func NewService(repo repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: NewEngine(DefaultKeywordRules),
		fuzzy:  NewFuzzyMatcher(DefaultFuzzyThreshold),
		logger: logger,
	}
}

// List returns the user's categories, seeding the defaults on first use.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	categories, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	if err := s.repo.CreateMissing(ctx, userID, DefaultCategories); err != nil {
		return nil, err
	}
	s.logger.Info("default categories created", slog.String("user_id", userID.String()))

	return s.repo.ListByUser(ctx, userID)
}

// Suggest picks a category for a new transaction. The keyword engine names a
// default category; when the user no longer has it, Outros of the same kind is
// used. Nil means the user has no usable category.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, kind Kind, description string) (*Category, error) {
	categories, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if match := s.engine.Match(kind, description); match != nil {
		if c := findByName(categories, match.Category, kind); c != nil {
			return c, nil
		}
	}

	return findByName(categories, FallbackCategory, kind), nil
}

// Add creates a user category.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, name string, kind Kind) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || !kind.Valid() {
		return nil, ErrInvalidCategory
	}

	if _, err := s.List(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, name, kind)
}

// Resolve finds the category the user meant. Kind may be empty to search both
// kinds; exact folded names win over fuzzy ones.
func (s *Service) Resolve(ctx context.Context, userID uuid.UUID, name string, kind Kind) (*Category, error) {
	categories, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := categories
	if kind != "" {
		candidates = candidates[:0:0]
		for _, c := range categories {
			if c.Kind == kind {
				candidates = append(candidates, c)
			}
		}
	}

	if c := findByName(candidates, name, kind); c != nil {
		return c, nil
	}
	if match := s.fuzzy.Match(name, candidates); match != nil {
		c := match.Category
		return &c, nil
	}
	return nil, ErrCategoryNotFound
}

// Remove deletes the category the user named.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	c, err := s.Resolve(ctx, userID, name, "")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, userID, c.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to remove category: %w", err)
	}
	return c, nil
}

func findByName(categories []Category, name string, kind Kind) *Category {
	folded := Fold(name)
	for i := range categories {
		if kind != "" && categories[i].Kind != kind {
			continue
		}
		if Fold(categories[i].Name) == folded {
			c := categories[i]
			return &c
		}
	}
	return nil
}
