package events

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

// OpenArchive connects to the archive database with a fail-fast ping.
func OpenArchive(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping archive db: %w", err)
	}
	return db, nil
}

// ArchiveRepository mirrors emitted events into a long-retention
// analytics table, separate from the engine's own event log. It runs
// over database/sql so deployments can point it at a warehouse-side
// Postgres through lib/pq.
type ArchiveRepository struct {
	db *sql.DB
}

func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Migrate creates the archive table if it does not exist yet.
func (r *ArchiveRepository) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS campaign_events_archive (
	id         uuid PRIMARY KEY,
	type       text NOT NULL,
	project_id bigint NOT NULL,
	account    text NOT NULL,
	amount     bigint NOT NULL DEFAULT 0,
	title      text NOT NULL DEFAULT '',
	created_at bigint NOT NULL
);
CREATE INDEX IF NOT EXISTS campaign_events_archive_project_idx
	ON campaign_events_archive (project_id, created_at);`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate archive schema: %w", err)
	}
	return nil
}

func (r *ArchiveRepository) Record(ctx context.Context, e domain.Event) error {
	return r.InsertBatch(ctx, []domain.Event{e})
}

// InsertBatch writes a batch of events in one transaction.
func (r *ArchiveRepository) InsertBatch(ctx context.Context, batch []domain.Event) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO campaign_events_archive (id, type, project_id, account, amount, title, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("prepare archive insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Type, e.ProjectID, string(e.Account), int64(e.Amount), e.Title, e.CreatedAt); err != nil {
			return fmt.Errorf("insert archived event %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetByProjectID returns archived events for a project, oldest first.
func (r *ArchiveRepository) GetByProjectID(ctx context.Context, projectID int64) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, type, project_id, account, amount, title, created_at
FROM campaign_events_archive
WHERE project_id = $1
ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Event, 0, 16)
	for rows.Next() {
		var (
			e       domain.Event
			account string
			amount  int64
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.ProjectID, &account, &amount, &e.Title, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Account = domain.Account(account)
		e.Amount = domain.Money(amount)
		out = append(out, e)
	}
	return out, rows.Err()
}
