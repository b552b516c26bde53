package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/user"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "username", "password_hash", "employee_id", "is_admin", "is_active", "created_at", "updated_at"}

func newMockRepository(t *testing.T) (pgxmock.PgxPoolIface, user.UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(&database.DB{Pool: mock})
}

func strPtr(s string) *string { return &s }

func TestUserRepository_EnsureSchema(t *testing.T) {
	mock, repo := newMockRepository(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows(userRowColumns).
				AddRow("0190a6f2-0000-7000-8000-000000000001", "alice", "hash", strPtr("E1"), false, true, now, now))

		got, err := repo.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		require.NotNil(t, got.EmployeeID)
		assert.Equal(t, "E1", *got.EmployeeID)
		assert.True(t, got.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	mock, repo := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)")).
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	newUser := user.User{Username: "bob", PasswordHash: "hash", EmployeeID: strPtr("7"), IsActive: true}

	t.Run("created", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), "bob", "hash", newUser.EmployeeID, false, true).
			WillReturnRows(pgxmock.NewRows(userRowColumns).
				AddRow("0190a6f2-0000-7000-8000-000000000002", "bob", "hash", strPtr("7"), false, true, now, now))

		got, err := repo.Create(context.Background(), newUser)
		require.NoError(t, err)
		assert.Equal(t, "0190a6f2-0000-7000-8000-000000000002", got.ID)
		assert.Equal(t, now, got.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), "bob", "hash", newUser.EmployeeID, false, true).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := repo.Create(context.Background(), newUser)
		assert.ErrorIs(t, err, user.ErrUsernameExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_List(t *testing.T) {
	mock, repo := newMockRepository(t)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY username").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("id-1", "admin", "hash", (*string)(nil), true, true, now, now).
			AddRow("id-2", "alice", "hash", strPtr("E1"), false, true, now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsAdmin)
	assert.Nil(t, users[0].EmployeeID)
	assert.Equal(t, "alice", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		db := &database.DB{Pool: mock}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err = WithTransaction(context.Background(), db, func(tx pgx.Tx) error {
			txCtx := WithTx(context.Background(), tx)
			_, err := GetQuerier(txCtx, db).Exec(txCtx, "UPDATE users SET is_active = false")
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		db := &database.DB{Pool: mock}

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = WithTransaction(context.Background(), db, func(tx pgx.Tx) error {
			return user.ErrUsernameExists
		})
		assert.ErrorIs(t, err, user.ErrUsernameExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
