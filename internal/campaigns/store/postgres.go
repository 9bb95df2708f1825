package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

// Postgres persists campaign state in three tables: projects, backers
// and events (see Migrate). Project ids come from a bigserial, which
// keeps them monotonically increasing and never reused.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the schema if it does not exist yet.
func (s *Postgres) Migrate(ctx context.Context) error {
	const ddl = `
create table if not exists projects (
	id              bigserial primary key,
	title           text not null,
	description     text not null,
	funding_goal    bigint not null check (funding_goal > 0),
	current_funding bigint not null default 0 check (current_funding >= 0),
	total_raised    bigint not null default 0 check (total_raised >= 0),
	deadline        bigint not null,
	image_url       text not null default '',
	category        text not null default '',
	creator         text not null,
	created_at      bigint not null
);

create table if not exists backers (
	id         bigserial primary key,
	project_id bigint not null references projects (id),
	backer     text not null,
	amount     bigint not null check (amount > 0),
	ts         bigint not null
);
create index if not exists backers_project_idx on backers (project_id, id);

create table if not exists events (
	id         uuid primary key,
	type       text not null,
	project_id bigint not null,
	account    text not null,
	amount     bigint not null default 0,
	title      text not null default '',
	created_at bigint not null
);
create index if not exists events_project_idx on events (project_id, created_at);
`
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate campaign schema: %w", err)
	}
	return nil
}

func (s *Postgres) CreateProject(ctx context.Context, p *domain.Project) (int64, error) {
	const q = `
insert into projects (title, description, funding_goal, current_funding, total_raised, deadline, image_url, category, creator, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
returning id;
`
	err := s.db.QueryRow(ctx, q,
		p.Title, p.Description, p.FundingGoal, p.CurrentFunding, p.TotalRaised,
		p.Deadline, p.ImageURL, p.Category, p.Creator, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return p.ID, nil
}

const projectColumns = `id, title, description, funding_goal, current_funding, total_raised, deadline, image_url, category, creator, created_at`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.FundingGoal, &p.CurrentFunding, &p.TotalRaised,
		&p.Deadline, &p.ImageURL, &p.Category, &p.Creator, &p.CreatedAt)
	return p, err
}

func (s *Postgres) GetProject(ctx context.Context, id int64) (domain.Project, error) {
	q := `select ` + projectColumns + ` from projects where id = $1;`
	p, err := scanProject(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *Postgres) ListProjects(ctx context.Context) ([]domain.Project, error) {
	q := `select ` + projectColumns + ` from projects order by id;`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Postgres) AddContribution(ctx context.Context, projectID int64, c domain.Contribution) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin contribution tx: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`update projects set current_funding = current_funding + $2, total_raised = total_raised + $2 where id = $1;`,
		projectID, c.Amount)
	if err != nil {
		return fmt.Errorf("increment funding: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}

	_, err = tx.Exec(ctx,
		`insert into backers (project_id, backer, amount, ts) values ($1, $2, $3, $4);`,
		projectID, c.Backer, c.Amount, c.Timestamp)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *Postgres) ListBackers(ctx context.Context, projectID int64) ([]domain.Contribution, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	const q = `select backer, amount, ts from backers where project_id = $1 order by id;`
	rows, err := s.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list backers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Contribution, 0, 16)
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.Backer, &c.Amount, &c.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) SetFunding(ctx context.Context, projectID int64, amount domain.Money) error {
	ct, err := s.db.Exec(ctx,
		`update projects set current_funding = $2 where id = $1;`,
		projectID, amount)
	if err != nil {
		return fmt.Errorf("set funding: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (s *Postgres) AppendEvent(ctx context.Context, e domain.Event) error {
	const q = `
insert into events (id, type, project_id, account, amount, title, created_at)
values ($1, $2, $3, $4, $5, $6, $7);
`
	if _, err := s.db.Exec(ctx, q, e.ID, e.Type, e.ProjectID, e.Account, e.Amount, e.Title, e.CreatedAt); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (s *Postgres) ListEvents(ctx context.Context, projectID int64) ([]domain.Event, error) {
	const q = `
select id, type, project_id, account, amount, title, created_at
from events where project_id = $1 order by created_at, id;
`
	rows, err := s.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Event, 0, 16)
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Type, &e.ProjectID, &e.Account, &e.Amount, &e.Title, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
