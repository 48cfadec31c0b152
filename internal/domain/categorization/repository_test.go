package categorization

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

func TestRepository_ListByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "user_id", "name", "type"}).
		AddRow(uuid.New(), userID, "Alimentação", "expense").
		AddRow(uuid.New(), userID, "Salário", "income")

	mock.ExpectQuery("FROM categories").
		WithArgs(userID).
		WillReturnRows(rows)

	categories, err := NewRepository(mock).ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, KindExpense, categories[0].Kind)
	assert.Equal(t, "Salário", categories[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	mock.ExpectExec("INSERT INTO categories").
		WithArgs(pgxmock.AnyArg(), userID, "Pets", "expense").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = NewRepository(mock).Create(context.Background(), userID, "Pets", KindExpense)
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestRepository_CreateMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	seed := []Category{{Name: "Lazer", Kind: KindExpense}, {Name: "Outros", Kind: KindIncome}}
	for _, c := range seed {
		mock.ExpectExec("INSERT INTO categories").
			WithArgs(pgxmock.AnyArg(), userID, c.Name, string(c.Kind)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	require.NoError(t, NewRepository(mock).CreateMissing(context.Background(), userID, seed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID, id := uuid.New(), uuid.New()
	mock.ExpectExec("DELETE FROM categories").
		WithArgs(id, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewRepository(mock).Delete(context.Background(), userID, id)
	assert.ErrorIs(t, err, db.ErrNotFound)
}
