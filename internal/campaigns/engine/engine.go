package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
	"github.com/fundchain/campaign-engine/internal/campaigns/store"
)

// Transferer releases withdrawn value to a creator's account. The
// transfer may reach untrusted external code, so the engine always
// zeroes the balance before calling it.
type Transferer interface {
	Transfer(ctx context.Context, to domain.Account, amount domain.Money) error
}

// Emitter records domain events for external observers.
type Emitter interface {
	Emit(ctx context.Context, e domain.Event) error
}

// Engine implements the campaign ledger and authorization state
// machine: create, fund, withdraw, plus the read surface. A single
// mutex serializes the three mutating calls, matching the
// serialized-transaction environment the contract ABI assumes.
type Engine struct {
	mu       sync.Mutex
	store    store.Store
	transfer Transferer
	emitter  Emitter
	now      func() time.Time
}

func New(st store.Store, tr Transferer, em Emitter) *Engine {
	return &Engine{
		store:    st,
		transfer: tr,
		emitter:  em,
		now:      time.Now,
	}
}

// WithClock overrides the engine's time source. Tests use it to pin
// deadlines.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// CreateProject allocates the next project id and records the
// campaign. The goal must be positive and the deadline strictly in
// the future.
func (e *Engine) CreateProject(ctx context.Context, req domain.CreateProjectRequest) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now().Unix()
	if req.FundingGoal <= 0 || req.Deadline <= now {
		return 0, domain.ErrInvalidProjectParameters
	}

	p := &domain.Project{
		Title:          req.Title,
		Description:    req.Description,
		FundingGoal:    req.FundingGoal,
		CurrentFunding: 0,
		Deadline:       req.Deadline,
		ImageURL:       req.ImageURL,
		Category:       req.Category,
		Creator:        req.Creator,
		CreatedAt:      now,
	}
	id, err := e.store.CreateProject(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}

	e.emit(ctx, domain.Event{
		ID:        uuid.NewString(),
		Type:      domain.EventProjectCreated,
		ProjectID: id,
		Account:   req.Creator,
		Title:     req.Title,
		CreatedAt: now,
	})
	return id, nil
}

// FundProject adds a contribution to an active campaign. Preconditions
// are checked in a fixed order and the first failure wins; on failure
// nothing is written.
func (e *Engine) FundProject(ctx context.Context, projectID int64, backer domain.Account, amount domain.Money) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	now := e.now()
	if domain.IsExpired(p, now) {
		return domain.ErrProjectExpired
	}
	if domain.IsFunded(p) {
		return domain.ErrProjectAlreadyFunded
	}
	if domain.IsCreator(p, backer) {
		return domain.ErrSelfFundingForbidden
	}

	// Over-goal contributions are accepted in full; the goal is a
	// threshold, not a ceiling.
	c := domain.Contribution{Backer: backer, Amount: amount, Timestamp: now.Unix()}
	if err := e.store.AddContribution(ctx, projectID, c); err != nil {
		return fmt.Errorf("record contribution: %w", err)
	}

	e.emit(ctx, domain.Event{
		ID:        uuid.NewString(),
		Type:      domain.EventProjectFunded,
		ProjectID: projectID,
		Account:   backer,
		Amount:    amount,
		CreatedAt: now.Unix(),
	})
	return nil
}

// WithdrawFunds releases the accumulated balance to the creator, once
// the campaign is either funded or past its deadline. The balance is
// zeroed before the external transfer so a reentrant call sees
// NothingToWithdraw; if the transfer fails the balance is restored
// and the call reports ErrTransferFailed.
func (e *Engine) WithdrawFunds(ctx context.Context, projectID int64, caller domain.Account) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !domain.IsCreator(p, caller) {
		return domain.ErrNotAuthorized
	}
	if p.CurrentFunding <= 0 {
		return domain.ErrNothingToWithdraw
	}

	now := e.now()
	if !domain.IsFunded(p) && !domain.IsExpired(p, now) {
		return domain.ErrCampaignStillActive
	}

	amount := p.CurrentFunding
	if err := e.store.SetFunding(ctx, projectID, 0); err != nil {
		return fmt.Errorf("capture withdrawal: %w", err)
	}

	if err := e.transfer.Transfer(ctx, p.Creator, amount); err != nil {
		if rbErr := e.store.SetFunding(ctx, projectID, amount); rbErr != nil {
			// The store refused the compensating write; funds are
			// stuck at zero with no transfer. Operator intervention
			// territory, so log loudly.
			log.Printf("[engine] rollback after failed transfer also failed: project=%d amount=%d err=%v", projectID, amount, rbErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	e.emit(ctx, domain.Event{
		ID:        uuid.NewString(),
		Type:      domain.EventFundsWithdrawn,
		ProjectID: projectID,
		Account:   p.Creator,
		Amount:    amount,
		CreatedAt: now.Unix(),
	})
	return nil
}

func (e *Engine) emit(ctx context.Context, ev domain.Event) {
	if e.emitter == nil {
		return
	}
	if err := e.emitter.Emit(ctx, ev); err != nil {
		log.Printf("[engine] emit %s for project %d failed: %v", ev.Type, ev.ProjectID, err)
	}
}
