package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/model"
)

type ContractService struct {
	store ContractStore
	log   zerolog.Logger
}

func NewContractService(store ContractStore, log zerolog.Logger) *ContractService {
	return &ContractService{store: store, log: log}
}

// GetContract returns the contract only when it is assigned to the calling
// contractor.
func (s *ContractService) GetContract(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.store.ContractForContractor(ctx, id, caller.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: you are yet to be assigned this contract", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// ListContracts returns the caller's non-terminated contracts.
func (s *ContractService) ListContracts(ctx context.Context, caller model.Principal) ([]model.Contract, error) {
	contracts, err := s.store.ContractsForContractor(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListUnpaidJobs returns unpaid jobs on the caller's in_progress contracts.
func (s *ContractService) ListUnpaidJobs(ctx context.Context, caller model.Principal) ([]model.Job, error) {
	jobs, err := s.store.UnpaidJobsForProfile(ctx, caller.ID, caller.Type)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: you currently have no unpaid contract jobs", ErrNotFound)
	}
	return jobs, nil
}
