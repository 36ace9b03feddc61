package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Job is a unit of billable work under a contract, paid at most once.
// Paid and PaymentDate change together, exactly once, and never reverse.
type Job struct {
	ID          uuid.UUID       `json:"id"`
	ContractID  uuid.UUID       `json:"contractId"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Paid        bool            `json:"paid"`
	PaymentDate *time.Time      `json:"paymentDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}
