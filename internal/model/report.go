package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionEarnings is one row of the best-profession report: total price of
// paid jobs in the period, grouped by contractor profession.
type ProfessionEarnings struct {
	Profession    string          `json:"profession"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
}

// ClientPayment is one row of the best-clients report.
type ClientPayment struct {
	ID        uuid.UUID       `json:"id"`
	FullName  string          `json:"fullName"`
	TotalPaid decimal.Decimal `json:"paid"`
}

// EarningsReport is the payload handed to the excel/pdf generators.
type EarningsReport struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Clients     []ClientPayment
}

func (r EarningsReport) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, client := range r.Clients {
		total = total.Add(client.TotalPaid)
	}
	return total
}
