package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradebridge/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestBookingRepository_UpdateStatusIf_Applied(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.UpdateStatusIf(context.Background(), 1,
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingApproved, nil)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatusIf_WrongState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.UpdateStatusIf(context.Background(), 1,
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingApproved, nil)

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_RedeemCollectionToken_SingleUse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	scanner := uuid.New()

	// first scan wins the conditional update
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND collection_token_hash = \$\d+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// second scan sees no row matching the already-cleared digest
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND collection_token_hash = \$\d+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.RedeemCollectionToken(context.Background(), 42, "digest", domain.FlowBorrow, scanner, time.Now())
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.RedeemCollectionToken(context.Background(), 42, "digest", domain.FlowBorrow, scanner, time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_RedeemCollectionToken_UnknownFlow(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewBookingRepository(db)

	_, err := repo.RedeemCollectionToken(context.Background(), 42, "digest", domain.Flow("bogus"), uuid.New(), time.Now())

	assert.Error(t, err)
}

func TestBookingRepository_ClearCollectionTokenIf_DigestGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND collection_token_hash = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.ClearCollectionTokenIf(context.Background(), 42, "stale-digest")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CheckAvailability_Overlap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE product_id = \$\d+ AND status IN .+start_date <= \$\d+ AND end_date >= \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	ok, err := repo.CheckAvailability(context.Background(), 10, start, start.AddDate(0, 0, 2))

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CheckAvailability_Free(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	ok, err := repo.CheckAvailability(context.Background(), 10, start, start.AddDate(0, 0, 2))

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
