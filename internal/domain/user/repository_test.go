package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

func userRow(id uuid.UUID, phone, name string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "phone", "name", "auth_state", "login", "created_at", "last_seen"}).
		AddRow(id, phone, name, "authenticated", "ana", now, now)
}

func TestRepository_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "5511999990000", "Ana").
		WillReturnRows(userRow(id, "5511999990000", "Ana"))

	repo := NewRepository(mock)
	u, err := repo.Upsert(context.Background(), "5511999990000", "Ana")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Ana", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "1", "").
		WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(mock).Upsert(context.Background(), "1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert user")
}

func TestRepository_GetByPhoneNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE phone").
		WithArgs("404").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewRepository(mock).GetByPhone(context.Background(), "404")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestRepository_SetAuthState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "1", "awaiting_password", "ana").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewRepository(mock).SetAuthState(context.Background(), "1", "awaiting_password", "ana"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
