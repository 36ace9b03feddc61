package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aldanbek/gigworks-billing/internal/model"
)

// LedgerTx is the set of operations available inside one ledger transaction.
// Lock* methods take a row-level exclusive lock held until the transaction
// commits or rolls back; missing rows surface as gorm.ErrRecordNotFound.
type LedgerTx interface {
	LockProfile(id uuid.UUID) (*model.Profile, error)
	LockContract(id uuid.UUID) (*model.Contract, error)
	LockJob(id uuid.UUID) (*model.Job, error)
	// UnpaidJobsSummary counts and sums unpaid job prices across every
	// contract of the client, regardless of contract status.
	UnpaidJobsSummary(clientID uuid.UUID) (count int64, total decimal.Decimal, err error)
	UpdateBalance(profile *model.Profile) error
	MarkJobPaid(jobID uuid.UUID, paymentDate time.Time) error
}

// LedgerStore opens transactions against the balance ledger. The closure's
// error decides commit versus rollback; nothing written inside fn is visible
// until InTx returns nil.
type LedgerStore interface {
	InTx(ctx context.Context, level sql.IsolationLevel, fn func(tx LedgerTx) error) error
}

// ReportStore serves the read-only aggregation queries. Each call runs against
// a consistent snapshot of committed payment history.
type ReportStore interface {
	ProfessionEarnings(ctx context.Context, start, end time.Time) ([]model.ProfessionEarnings, error)
	ClientPayments(ctx context.Context, start, end time.Time, limit int) ([]model.ClientPayment, error)
}

// ContractStore serves the per-profile marketplace listings.
type ContractStore interface {
	ContractForContractor(ctx context.Context, id, contractorID uuid.UUID) (*model.Contract, error)
	ContractsForContractor(ctx context.Context, contractorID uuid.UUID) ([]model.Contract, error)
	UnpaidJobsForProfile(ctx context.Context, profileID uuid.UUID, profileType model.ProfileType) ([]model.Job, error)
}
