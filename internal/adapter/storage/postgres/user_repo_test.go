package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"tron-wallet-service/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := &domain.User{
		Username:     "alice",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$salt$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.Username, u.PasswordHash, u.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), u)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT username, password_hash, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"username", "password_hash", "created_at"}).
			AddRow("alice", "$argon2id$hash", createdAt))

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "$argon2id$hash", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT username, password_hash, created_at FROM users").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"username", "password_hash", "created_at"}))

	u, err := repo.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT username, password_hash, created_at FROM users").
		WithArgs("alice").
		WillReturnError(errors.New("connection refused"))

	_, err = repo.GetByUsername(context.Background(), "alice")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
