package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

// Profile is a party on the marketplace, either a client paying for jobs or a
// contractor performing them. Balance is mutated only inside a locked
// transaction by the balance and payment services.
type Profile struct {
	ID         uuid.UUID       `json:"id"`
	Type       ProfileType     `json:"type"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Profession string          `json:"profession,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
