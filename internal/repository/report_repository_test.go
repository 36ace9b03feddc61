package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/model"
)

var (
	periodStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
)

func TestProfessionEarnings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT p\.profession, SUM\(j\.price\) AS total_earnings.*GROUP BY p\.profession.*ORDER BY total_earnings DESC, p\.profession ASC`).
		WithArgs(periodStart, periodEnd).
		WillReturnRows(sqlmock.NewRows([]string{"profession", "total_earnings"}).
			AddRow("Musician", "250.00").
			AddRow("Wizard", "120.00"))
	mock.ExpectCommit()

	rows, err := repo.ProfessionEarnings(context.Background(), periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Musician", rows[0].Profession)
	require.True(t, rows[0].TotalEarnings.Equal(decimal.RequireFromString("250")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessionEarnings_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT p\.profession`).
		WithArgs(periodStart, periodEnd).
		WillReturnRows(sqlmock.NewRows([]string{"profession", "total_earnings"}))
	mock.ExpectCommit()

	rows, err := repo.ProfessionEarnings(context.Background(), periodStart, periodEnd)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPayments_AppliesLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	clientID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT p\.id, p\.first_name \|\| ' ' \|\| p\.last_name AS full_name, SUM\(j\.price\) AS total_paid.*ORDER BY total_paid DESC.*LIMIT`).
		WithArgs(periodStart, periodEnd, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "total_paid"}).
			AddRow(clientID.String(), "Harry Potter", "120.00"))
	mock.ExpectCommit()

	rows, err := repo.ClientPayments(context.Background(), periodStart, periodEnd, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, clientID, rows[0].ID)
	require.Equal(t, "Harry Potter", rows[0].FullName)
	require.True(t, rows[0].TotalPaid.Equal(decimal.RequireFromString("120")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfile_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	profileID := uuid.New()
	mock.ExpectQuery(`(?s)SELECT.*FROM profiles.*WHERE id =`).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows(profileColumns()))

	_, err := repo.GetProfile(context.Background(), profileID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	profileID := uuid.New()
	mock.ExpectQuery(`(?s)SELECT.*FROM profiles.*WHERE id =`).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows(profileColumns()).
			AddRow(profileID.String(), "contractor", "John", "Lenon", "Musician", "64.00", time.Now()))

	profile, err := repo.GetProfile(context.Background(), profileID)
	require.NoError(t, err)
	require.Equal(t, model.ProfileTypeContractor, profile.Type)
	require.Equal(t, "John Lenon", profile.FullName())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnpaidJobsForProfile_FiltersBySide(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	contractorID := uuid.New()
	jobID := uuid.New()
	contractID := uuid.New()

	mock.ExpectQuery(`(?s)SELECT j\.id.*WHERE c\.contractor_id = .* AND c\.status = 'in_progress' AND NOT j\.paid`).
		WithArgs(contractorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contract_id", "description", "price", "paid", "payment_date", "created_at"}).
			AddRow(jobID.String(), contractID.String(), "magic wand repair", "25.00", false, nil, time.Now()))

	jobs, err := repo.UnpaidJobsForProfile(context.Background(), contractorID, model.ProfileTypeContractor)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, jobID, jobs[0].ID)
	require.False(t, jobs[0].Paid)
	require.Nil(t, jobs[0].PaymentDate)
	require.NoError(t, mock.ExpectationsWereMet())
}
