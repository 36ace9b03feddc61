package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/model"
	"github.com/aldanbek/gigworks-billing/internal/service"
)

// LedgerRepository owns every mutation of account balances and job payment
// state. All writes go through InTx; the SELECT ... FOR UPDATE reads inside a
// transaction block concurrent lockers of the same row until commit/rollback.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) InTx(ctx context.Context, level sql.IsolationLevel, fn func(tx service.LedgerTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{tx: tx})
	}, &sql.TxOptions{Isolation: level})
}

type ledgerTx struct {
	tx *gorm.DB
}

func (t *ledgerTx) LockProfile(id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := t.tx.Raw(`
		SELECT id, type, first_name, last_name, COALESCE(profession, '') AS profession, balance, created_at
		FROM profiles
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func (t *ledgerTx) LockContract(id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := t.tx.Raw(`
		SELECT id, client_id, contractor_id, status, COALESCE(terms, '') AS terms, created_at
		FROM contracts
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (t *ledgerTx) LockJob(id uuid.UUID) (*model.Job, error) {
	var job model.Job
	err := t.tx.Raw(`
		SELECT id, contract_id, COALESCE(description, '') AS description, price, paid, payment_date, created_at
		FROM jobs
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&job).Error
	if err != nil {
		return nil, err
	}
	if job.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &job, nil
}

func (t *ledgerTx) UnpaidJobsSummary(clientID uuid.UUID) (int64, decimal.Decimal, error) {
	var row struct {
		UnpaidCount int64
		UnpaidTotal decimal.Decimal
	}
	err := t.tx.Raw(`
		SELECT COUNT(*) AS unpaid_count, COALESCE(SUM(j.price), 0) AS unpaid_total
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = ? AND NOT j.paid
	`, clientID).Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return row.UnpaidCount, row.UnpaidTotal, nil
}

func (t *ledgerTx) UpdateBalance(profile *model.Profile) error {
	return t.tx.Exec(`
		UPDATE profiles SET balance = ? WHERE id = ?
	`, profile.Balance, profile.ID).Error
}

func (t *ledgerTx) MarkJobPaid(jobID uuid.UUID, paymentDate time.Time) error {
	return t.tx.Exec(`
		UPDATE jobs SET paid = TRUE, payment_date = ? WHERE id = ?
	`, paymentDate, jobID).Error
}

var _ service.LedgerStore = (*LedgerRepository)(nil)
