package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract binds one client and one contractor. Either party may be unassigned
// while the contract is being negotiated; jobs under such a contract are not
// payable.
type Contract struct {
	ID           uuid.UUID      `json:"id"`
	ClientID     *uuid.UUID     `json:"clientId"`
	ContractorID *uuid.UUID     `json:"contractorId"`
	Status       ContractStatus `json:"status"`
	Terms        string         `json:"terms,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
