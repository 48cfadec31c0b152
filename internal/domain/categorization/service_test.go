package categorization

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

type mockRepo struct {
	categories []Category
	seeded     int
	deleted    []uuid.UUID
	listErr    error
	createErr  error
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *mockRepo) Create(ctx context.Context, userID uuid.UUID, name string, kind Kind) (*Category, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	c := Category{ID: uuid.New(), UserID: userID, Name: name, Kind: kind}
	m.categories = append(m.categories, c)
	return &c, nil
}

func (m *mockRepo) CreateMissing(ctx context.Context, userID uuid.UUID, categories []Category) error {
	m.seeded++
	for _, c := range categories {
		c.ID = uuid.New()
		c.UserID = userID
		m.categories = append(m.categories, c)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, c := range m.categories {
		if c.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return db.ErrNotFound
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_ListSeedsDefaultsOnce(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	userID := uuid.New()

	categories, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, categories, len(DefaultCategories))

	_, err = svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.seeded)
}

func TestService_Suggest(t *testing.T) {
	svc := newTestService(&mockRepo{})
	userID := uuid.New()

	tests := []struct {
		name        string
		kind        Kind
		description string
		want        string
	}{
		{"keyword", KindExpense, "pão", "Alimentação"},
		{"fallback", KindExpense, "presente pra vó", FallbackCategory},
		{"income keyword", KindIncome, "salário", "Salário"},
		{"income fallback", KindIncome, "achei na rua", FallbackCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.Suggest(context.Background(), userID, tt.kind, tt.description)
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.Name)
			assert.Equal(t, tt.kind, c.Kind)
		})
	}
}

func TestService_SuggestFallsBackWhenCategoryDeleted(t *testing.T) {
	repo := &mockRepo{categories: []Category{
		{ID: uuid.New(), Name: "Outros", Kind: KindExpense},
	}}
	svc := newTestService(repo)

	c, err := svc.Suggest(context.Background(), uuid.New(), KindExpense, "uber")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Outros", c.Name)
}

func TestService_SuggestWithoutUsableCategory(t *testing.T) {
	repo := &mockRepo{categories: []Category{{ID: uuid.New(), Name: "Lazer", Kind: KindExpense}}}
	svc := newTestService(repo)

	c, err := svc.Suggest(context.Background(), uuid.New(), KindIncome, "salário")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestService_SuggestStorageError(t *testing.T) {
	svc := newTestService(&mockRepo{listErr: errors.New("db down")})
	_, err := svc.Suggest(context.Background(), uuid.New(), KindExpense, "pão")
	assert.Error(t, err)
}

func TestService_Add(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	c, err := svc.Add(context.Background(), uuid.New(), " Pets ", KindExpense)
	require.NoError(t, err)
	assert.Equal(t, "Pets", c.Name)

	_, err = svc.Add(context.Background(), uuid.New(), "  ", KindExpense)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.Add(context.Background(), uuid.New(), "Pets", Kind("other"))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestService_Remove(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	userID := uuid.New()

	c, err := svc.Remove(context.Background(), userID, "lazr")
	require.NoError(t, err)
	assert.Equal(t, "Lazer", c.Name)
	assert.Equal(t, []uuid.UUID{c.ID}, repo.deleted)

	_, err = svc.Remove(context.Background(), userID, "zzzzqq")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestService_ResolveFiltersKind(t *testing.T) {
	svc := newTestService(&mockRepo{})
	userID := uuid.New()

	c, err := svc.Resolve(context.Background(), userID, "aluguel", KindIncome)
	require.NoError(t, err)
	assert.Equal(t, KindIncome, c.Kind)

	_, err = svc.Resolve(context.Background(), userID, "moradia", KindIncome)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	c, err = svc.Resolve(context.Background(), userID, "moradia", "")
	require.NoError(t, err)
	assert.Equal(t, "Moradia", c.Name)
}
