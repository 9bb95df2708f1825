package engine

import (
	"context"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

// Read operations bypass the guards and never mutate state. Derived
// status fields are evaluated against the engine clock at call time.

func (e *Engine) GetProject(ctx context.Context, id int64) (domain.ProjectView, error) {
	p, err := e.store.GetProject(ctx, id)
	if err != nil {
		return domain.ProjectView{}, err
	}
	return domain.NewProjectView(p, e.now()), nil
}

func (e *Engine) ListProjects(ctx context.Context) ([]domain.ProjectView, error) {
	projects, err := e.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()
	out := make([]domain.ProjectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, domain.NewProjectView(p, now))
	}
	return out, nil
}

func (e *Engine) GetBackers(ctx context.Context, id int64) ([]domain.Contribution, error) {
	return e.store.ListBackers(ctx, id)
}

func (e *Engine) ListEvents(ctx context.Context, id int64) ([]domain.Event, error) {
	if _, err := e.store.GetProject(ctx, id); err != nil {
		return nil, err
	}
	return e.store.ListEvents(ctx, id)
}

func (e *Engine) IsProjectExpired(ctx context.Context, id int64) (bool, error) {
	p, err := e.store.GetProject(ctx, id)
	if err != nil {
		return false, err
	}
	return domain.IsExpired(p, e.now()), nil
}

// IsProjectCompleted reports whether the campaign reached its goal.
func (e *Engine) IsProjectCompleted(ctx context.Context, id int64) (bool, error) {
	p, err := e.store.GetProject(ctx, id)
	if err != nil {
		return false, err
	}
	return domain.IsFunded(p), nil
}

func (e *Engine) IsProjectCreator(ctx context.Context, id int64, account domain.Account) (bool, error) {
	p, err := e.store.GetProject(ctx, id)
	if err != nil {
		return false, err
	}
	return domain.IsCreator(p, account), nil
}

func (e *Engine) IsProjectBacker(ctx context.Context, id int64, account domain.Account) (bool, error) {
	contribs, err := e.store.ListBackers(ctx, id)
	if err != nil {
		return false, err
	}
	return domain.IsBacker(contribs, account), nil
}
