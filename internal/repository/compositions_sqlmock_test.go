package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockedCompositions(t *testing.T) (*Compositions, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	database, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewCompositions(database), mock
}

func TestCompositionsCreateIssuesRollbackOnDetailFailure(t *testing.T) {
	t.Parallel()

	repo, mock := newMockedCompositions(t)
	insertFailure := errors.New(`insert or update on table "composition_details" violates foreign key constraint`)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "compositions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"composition_id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "composition_details"`)).
		WillReturnRows(sqlmock.NewRows([]string{"detail_id"}).AddRow(70))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "composition_details"`)).
		WillReturnError(insertFailure)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), NewComposition{
		CustomerID:  1,
		TotalAmount: 50,
		Details: []NewDetail{
			{FragranceID: 1, Amount: 20},
			{FragranceID: 99, Amount: 20},
			{FragranceID: 3, Amount: 10},
		},
	})
	require.ErrorIs(t, err, insertFailure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompositionsCreateCommitsAllInserts(t *testing.T) {
	t.Parallel()

	repo, mock := newMockedCompositions(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "compositions"`)).
		WithArgs(1, "Meeresbrise", 100.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"composition_id"}).AddRow(8))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "composition_details"`)).
		WithArgs(8, 2, 100.0).
		WillReturnRows(sqlmock.NewRows([]string{"detail_id"}).AddRow(80))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), NewComposition{
		CustomerID:  1,
		Name:        "Meeresbrise",
		TotalAmount: 100,
		Details:     []NewDetail{{FragranceID: 2, Amount: 100}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 8, created.ID)
	require.Len(t, created.Details, 1)
	require.EqualValues(t, 80, created.Details[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
