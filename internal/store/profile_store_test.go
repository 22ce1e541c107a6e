package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"treelink-backend/internal/models"
	"treelink-backend/internal/store"
)

func newMockStore(t *testing.T) (store.ProfileStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return store.NewPostgresProfileStore(sqlxDB, 0), mock
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "handle", "profile_image", "links", "created_at", "updated_at"})
}

func TestFindByEmail_Success(t *testing.T) {
	s, mock := newMockStore(t)

	id := uuid.New()
	now := time.Now()
	rows := profileRows().AddRow(id.String(), "a@x.com", "u1", nil,
		[]byte(`[{"title":"GitHub","url":"https://github.com/u1"}]`), now, now)
	mock.ExpectQuery(`SELECT .+ FROM treelink_profiles WHERE email = \$1`).
		WithArgs("a@x.com").WillReturnRows(rows)

	p, err := s.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "a@x.com", p.Email)
	require.Equal(t, "u1", p.HandleOrEmpty())
	require.Len(t, p.Links, 1)
	require.Equal(t, models.LinkItem{Title: "GitHub", URL: "https://github.com/u1"}, p.Links[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_Absent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM treelink_profiles WHERE email = \$1`).
		WithArgs("nobody@x.com").WillReturnError(sql.ErrNoRows)

	p, err := s.FindByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	require.Nil(t, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByHandle_Absent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM treelink_profiles WHERE handle = \$1 LIMIT 1`).
		WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	p, err := s.FindByHandle(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendLink_UpsertsAndReturnsHandle(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO treelink_profiles`).
		WithArgs(sqlmock.AnyArg(), "a@x.com", "u1", "",
			[]byte(`{"title":"GitHub","url":"https://github.com/u1"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"handle"}).AddRow("u1"))

	owner, err := s.AppendLink(context.Background(), "a@x.com", "u1", "",
		models.LinkItem{Title: "GitHub", URL: "https://github.com/u1"})
	require.NoError(t, err)
	require.Equal(t, "u1", owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendLink_HandleTaken(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO treelink_profiles`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "treelink_profiles_handle_key"})

	_, err := s.AppendLink(context.Background(), "b@x.com", "u1", "",
		models.LinkItem{Title: "Blog", URL: "https://blog.u1.dev"})
	require.ErrorIs(t, err, store.ErrHandleTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveLinksByURL_ReturnsOwnerHandle(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE treelink_profiles`).
		WithArgs("a@x.com", "https://github.com/u1").
		WillReturnRows(sqlmock.NewRows([]string{"handle"}).AddRow("u1"))

	owner, err := s.RemoveLinksByURL(context.Background(), "a@x.com", "https://github.com/u1")
	require.NoError(t, err)
	require.Equal(t, "u1", owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveLinksByURL_NoProfileIsNoop(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE treelink_profiles`).
		WithArgs("nobody@x.com", "https://gone.example").
		WillReturnError(sql.ErrNoRows)

	owner, err := s.RemoveLinksByURL(context.Background(), "nobody@x.com", "https://gone.example")
	require.NoError(t, err)
	require.Empty(t, owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetHandle_Success(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE treelink_profiles SET handle = \$2`).
		WithArgs("a@x.com", "u1-new").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.SetHandle(context.Background(), "a@x.com", "u1-new"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetHandle_Conflict(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE treelink_profiles SET handle = \$2`).
		WithArgs("b@x.com", "u1").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "treelink_profiles_handle_key"})

	err := s.SetHandle(context.Background(), "b@x.com", "u1")
	require.ErrorIs(t, err, store.ErrHandleTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetImage_UpsertReturnsProfile(t *testing.T) {
	s, mock := newMockStore(t)

	id := uuid.New()
	now := time.Now()
	img := "data:image/png;base64,xxxx"
	rows := profileRows().AddRow(id.String(), "a@x.com", nil, img, []byte(`[]`), now, now)
	mock.ExpectQuery(`INSERT INTO treelink_profiles`).
		WithArgs(sqlmock.AnyArg(), "a@x.com", img).
		WillReturnRows(rows)

	p, err := s.SetImage(context.Background(), "a@x.com", img)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, img, p.ImageOrEmpty())
	require.Empty(t, p.HandleOrEmpty())
	require.Empty(t, p.Links)
	require.NoError(t, mock.ExpectationsWereMet())
}
