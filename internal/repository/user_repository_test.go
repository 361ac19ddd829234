package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockRepo opens a GORM session over sqlmock so the tests can assert the
// SQL the list query generates.
func setupMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewUserRepository(db), mock
}

func userRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "status", "created_at", "updated_at"}).
		AddRow(1, "alice", "hashed", true, now, now).
		AddRow(2, "bob", "hashed", true, now, now)
}

func TestGormUserRepository_List_SearchAndSortFallback(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username LIKE \\?").
		WithArgs("%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	// unrecognized sort column falls back to the primary key
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username LIKE \\? ESCAPE '\\\\' ORDER BY id ASC").
		WillReturnRows(userRows())

	users, total, err := repo.List(ListQuery{
		SearchTerm: "ali",
		SortColumn: "nonsense",
		SortOrder:  "asc",
		Page:       1,
		PageSize:   10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, users, 2)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_List_EscapesLikeWildcards(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// "50%" must match a literal percent sign, not act as a wildcard
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username LIKE \\? ESCAPE '\\\\'").
		WithArgs(`%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username LIKE \\? ESCAPE '\\\\'").
		WithArgs(`%50\%%`).
		WillReturnRows(userRows())

	_, total, err := repo.List(ListQuery{
		SearchTerm: "50%",
		Page:       1,
		PageSize:   10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_List_DescendingSort(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery("SELECT \\* FROM `users` ORDER BY username DESC").
		WillReturnRows(userRows())

	_, _, err := repo.List(ListQuery{
		SortColumn: "Username",
		SortOrder:  "DESC",
		Page:       1,
		PageSize:   10,
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_List_NoSortWithoutColumn(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	// no ORDER BY at all when no sort column was requested
	mock.ExpectQuery("SELECT \\* FROM `users` LIMIT").
		WillReturnRows(userRows())

	_, _, err := repo.List(ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
