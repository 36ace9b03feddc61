package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/model"
	"github.com/aldanbek/gigworks-billing/internal/service"
)

// ReportRepository serves every read-only query: the admin aggregations, the
// per-profile marketplace listings and profile lookup for auth. The
// aggregations run inside a repeatable-read read-only transaction so a report
// never mixes rows from before and after a concurrent payment.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

var snapshotTxOptions = &sql.TxOptions{
	Isolation: sql.LevelRepeatableRead,
	ReadOnly:  true,
}

func (r *ReportRepository) ProfessionEarnings(ctx context.Context, start, end time.Time) ([]model.ProfessionEarnings, error) {
	var rows []model.ProfessionEarnings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ties on total resolve to the lexicographically smallest profession.
		return tx.Raw(`
			SELECT p.profession, SUM(j.price) AS total_earnings
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			JOIN profiles p ON p.id = c.contractor_id
			WHERE j.paid
				AND j.payment_date BETWEEN ? AND ?
				AND c.status = 'in_progress'
			GROUP BY p.profession
			ORDER BY total_earnings DESC, p.profession ASC
		`, start, end).Scan(&rows).Error
	}, snapshotTxOptions)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) ClientPayments(ctx context.Context, start, end time.Time, limit int) ([]model.ClientPayment, error) {
	var rows []model.ClientPayment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Raw(`
			SELECT p.id, p.first_name || ' ' || p.last_name AS full_name, SUM(j.price) AS total_paid
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			JOIN profiles p ON p.id = c.client_id
			WHERE j.paid
				AND j.payment_date BETWEEN ? AND ?
				AND c.status = 'in_progress'
			GROUP BY p.id, p.first_name, p.last_name
			ORDER BY total_paid DESC, p.id ASC
			LIMIT ?
		`, start, end, limit).Scan(&rows).Error
	}, snapshotTxOptions)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetProfile loads a profile without locking it. Used by the auth middleware.
func (r *ReportRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, type, first_name, last_name, COALESCE(profession, '') AS profession, balance, created_at
		FROM profiles
		WHERE id = ?
	`, id).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func (r *ReportRepository) ContractForContractor(ctx context.Context, id, contractorID uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, status, COALESCE(terms, '') AS terms, created_at
		FROM contracts
		WHERE id = ? AND contractor_id = ?
	`, id, contractorID).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (r *ReportRepository) ContractsForContractor(ctx context.Context, contractorID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, status, COALESCE(terms, '') AS terms, created_at
		FROM contracts
		WHERE contractor_id = ? AND status IN ('new', 'in_progress')
		ORDER BY created_at ASC
	`, contractorID).Scan(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ReportRepository) UnpaidJobsForProfile(ctx context.Context, profileID uuid.UUID, profileType model.ProfileType) ([]model.Job, error) {
	column := "c.client_id"
	if profileType == model.ProfileTypeContractor {
		column = "c.contractor_id"
	}

	var jobs []model.Job
	err := r.db.WithContext(ctx).Raw(`
		SELECT j.id, j.contract_id, COALESCE(j.description, '') AS description, j.price, j.paid, j.payment_date, j.created_at
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE `+column+` = ? AND c.status = 'in_progress' AND NOT j.paid
		ORDER BY j.created_at ASC
	`, profileID).Scan(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

var (
	_ service.ReportStore   = (*ReportRepository)(nil)
	_ service.ContractStore = (*ReportRepository)(nil)
)
