package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/config"
	"github.com/aldanbek/gigworks-billing/internal/model"
)

type BalanceService struct {
	ledger  LedgerStore
	capRate decimal.Decimal
	log     zerolog.Logger
}

func NewBalanceService(ledger LedgerStore, cfg *config.Config, log zerolog.Logger) *BalanceService {
	return &BalanceService{
		ledger:  ledger,
		capRate: decimal.NewFromFloat(cfg.Billing.DepositCapRate),
		log:     log,
	}
}

// Deposit credits the client's balance. A single deposit may not exceed the
// configured fraction of the client's unpaid job total; the unpaid total is
// read and the balance written under one locked transaction so a concurrent
// payment cannot invalidate the cap decision mid-flight.
func (s *BalanceService) Deposit(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidInput)
	}

	var updated decimal.Decimal
	err := s.ledger.InTx(ctx, sql.LevelSerializable, func(tx LedgerTx) error {
		client, err := tx.LockProfile(clientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: client %s", ErrNotFound, clientID)
		}
		if err != nil {
			return err
		}
		if client.Type != model.ProfileTypeClient {
			return fmt.Errorf("%w: contractors cannot deposit", ErrForbidden)
		}

		unpaidCount, unpaidTotal, err := tx.UnpaidJobsSummary(clientID)
		if err != nil {
			return err
		}
		if unpaidCount == 0 {
			return fmt.Errorf("%w: no unpaid jobs to deposit against", ErrInvalidState)
		}

		maxDeposit := unpaidTotal.Mul(s.capRate)
		if amount.GreaterThan(maxDeposit) {
			return fmt.Errorf("%w: deposit %s exceeds maximum %s", ErrLimitExceeded, amount, maxDeposit)
		}

		client.Balance = client.Balance.Add(amount)
		if err := tx.UpdateBalance(client); err != nil {
			return err
		}
		updated = client.Balance

		s.log.Info().
			Str("client_id", clientID.String()).
			Str("amount", amount.String()).
			Str("balance", updated.String()).
			Msg("deposit applied")
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return updated, nil
}
