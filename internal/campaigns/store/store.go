package store

import (
	"context"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

// Store is the durable campaign state: the project table, the
// per-project backer ledger, and the append-only event log. Only the
// campaign engine writes to it. Unknown project ids surface as
// domain.ErrProjectNotFound.
type Store interface {
	// CreateProject inserts the record and assigns the next id.
	// Ids are monotonically increasing and never reused.
	CreateProject(ctx context.Context, p *domain.Project) (int64, error)
	GetProject(ctx context.Context, id int64) (domain.Project, error)
	// ListProjects returns all projects in creation order.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// AddContribution increments the project's funding and appends the
	// ledger entry as one atomic step.
	AddContribution(ctx context.Context, projectID int64, c domain.Contribution) error
	// ListBackers returns the ledger in contribution order.
	ListBackers(ctx context.Context, projectID int64) ([]domain.Contribution, error)

	// SetFunding overwrites the project's current funding. Used only
	// by withdrawal capture and its compensating rollback.
	SetFunding(ctx context.Context, projectID int64, amount domain.Money) error

	AppendEvent(ctx context.Context, e domain.Event) error
	ListEvents(ctx context.Context, projectID int64) ([]domain.Event, error)
}
