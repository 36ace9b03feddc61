package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/model"
)

// fakeLedger is an in-memory LedgerStore with transactional semantics: each
// InTx runs against a staged copy under a store-wide mutex, and the copy is
// published only when the closure succeeds. The mutex stands in for
// serializable isolation, the staged copy for rollback.
type fakeLedger struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]model.Profile
	contracts map[uuid.UUID]model.Contract
	jobs      map[uuid.UUID]model.Job
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		profiles:  make(map[uuid.UUID]model.Profile),
		contracts: make(map[uuid.UUID]model.Contract),
		jobs:      make(map[uuid.UUID]model.Job),
	}
}

func (f *fakeLedger) addProfile(p model.Profile) {
	f.profiles[p.ID] = p
}

func (f *fakeLedger) addContract(c model.Contract) {
	f.contracts[c.ID] = c
}

func (f *fakeLedger) addJob(j model.Job) {
	f.jobs[j.ID] = j
}

func (f *fakeLedger) balance(id uuid.UUID) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[id].Balance
}

func (f *fakeLedger) job(id uuid.UUID) model.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id]
}

func (f *fakeLedger) InTx(ctx context.Context, level sql.IsolationLevel, fn func(tx LedgerTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tx := &fakeLedgerTx{
		profiles:  cloneMap(f.profiles),
		contracts: cloneMap(f.contracts),
		jobs:      cloneMap(f.jobs),
	}
	if err := fn(tx); err != nil {
		return err
	}
	f.profiles = tx.profiles
	f.contracts = tx.contracts
	f.jobs = tx.jobs
	return nil
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type fakeLedgerTx struct {
	profiles  map[uuid.UUID]model.Profile
	contracts map[uuid.UUID]model.Contract
	jobs      map[uuid.UUID]model.Job
}

func (t *fakeLedgerTx) LockProfile(id uuid.UUID) (*model.Profile, error) {
	profile, ok := t.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func (t *fakeLedgerTx) LockContract(id uuid.UUID) (*model.Contract, error) {
	contract, ok := t.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (t *fakeLedgerTx) LockJob(id uuid.UUID) (*model.Job, error) {
	job, ok := t.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &job, nil
}

func (t *fakeLedgerTx) UnpaidJobsSummary(clientID uuid.UUID) (int64, decimal.Decimal, error) {
	var count int64
	total := decimal.Zero
	for _, job := range t.jobs {
		if job.Paid {
			continue
		}
		contract, ok := t.contracts[job.ContractID]
		if !ok || contract.ClientID == nil || *contract.ClientID != clientID {
			continue
		}
		count++
		total = total.Add(job.Price)
	}
	return count, total, nil
}

func (t *fakeLedgerTx) UpdateBalance(profile *model.Profile) error {
	if _, ok := t.profiles[profile.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	t.profiles[profile.ID] = *profile
	return nil
}

func (t *fakeLedgerTx) MarkJobPaid(jobID uuid.UUID, paymentDate time.Time) error {
	job, ok := t.jobs[jobID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	job.Paid = true
	job.PaymentDate = &paymentDate
	t.jobs[jobID] = job
	return nil
}

var _ LedgerStore = (*fakeLedger)(nil)
