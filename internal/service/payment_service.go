package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/model"
)

type PaymentService struct {
	ledger LedgerStore
	log    zerolog.Logger
	now    func() time.Time
}

func NewPaymentService(ledger LedgerStore, log zerolog.Logger) *PaymentService {
	return &PaymentService{ledger: ledger, log: log, now: time.Now}
}

// PayForJob moves the job price from the calling client to the contractor and
// marks the job paid, all inside one serializable transaction. Serializable
// isolation plus the row locks guarantee that two concurrent payments for the
// same job cannot both observe it unpaid.
func (s *PaymentService) PayForJob(ctx context.Context, caller model.Principal, jobID uuid.UUID) (*model.Job, error) {
	if !caller.IsClient() {
		return nil, fmt.Errorf("%w: only clients can pay for jobs", ErrForbidden)
	}

	var paid *model.Job
	err := s.ledger.InTx(ctx, sql.LevelSerializable, func(tx LedgerTx) error {
		job, err := tx.LockJob(jobID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: job %s", ErrNotFound, jobID)
		}
		if err != nil {
			return err
		}

		contract, err := tx.LockContract(job.ContractID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: contract %s", ErrNotFound, job.ContractID)
		}
		if err != nil {
			return err
		}
		if contract.ClientID == nil || contract.ContractorID == nil {
			return fmt.Errorf("%w: contract is not fully assigned", ErrInvalidState)
		}
		if *contract.ClientID != caller.ID {
			return fmt.Errorf("%w: you can only pay for jobs on your own contracts", ErrForbidden)
		}
		if job.Paid {
			return fmt.Errorf("%w: job %s", ErrConflict, jobID)
		}

		// Client row first, contractor second. Every transfer acquires the
		// pair in this order, so opposing transfers cannot form a lock cycle.
		client, err := tx.LockProfile(*contract.ClientID)
		if err != nil {
			return err
		}
		contractor, err := tx.LockProfile(*contract.ContractorID)
		if err != nil {
			return err
		}

		if err := transfer(tx, client, contractor, job.Price); err != nil {
			return err
		}

		paymentDate := s.now().UTC()
		if err := tx.MarkJobPaid(job.ID, paymentDate); err != nil {
			return err
		}
		job.Paid = true
		job.PaymentDate = &paymentDate
		paid = job

		s.log.Info().
			Str("job_id", job.ID.String()).
			Str("client_id", client.ID.String()).
			Str("contractor_id", contractor.ID.String()).
			Str("price", job.Price.String()).
			Msg("job paid")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// transfer debits from and credits to by amount. Both rows are already locked
// by the caller; the sum of the two balances is unchanged and either both
// writes commit with the enclosing transaction or neither does.
func transfer(tx LedgerTx, from, to *model.Profile, amount decimal.Decimal) error {
	if from.Balance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s is below price %s", ErrInsufficientFunds, from.Balance, amount)
	}
	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	if err := tx.UpdateBalance(from); err != nil {
		return err
	}
	return tx.UpdateBalance(to)
}
