package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
	"github.com/fundchain/campaign-engine/internal/campaigns/events"
	"github.com/fundchain/campaign-engine/internal/campaigns/store"
)

// Set of project ids whose expiry has already been announced:
// campaign:expired:announced
const announcedSetKey = "campaign:expired:announced"

// Watcher pushes a one-time campaign_expired notice to Redis when an
// unfunded campaign crosses its deadline, so front ends do not have
// to poll for it. Expiry itself is derived state; the watcher never
// touches the ledger.
type Watcher struct {
	store  store.Store
	client *redis.Client
	now    func() time.Time
}

func New(st store.Store, client *redis.Client) *Watcher {
	return &Watcher{store: st, client: client, now: time.Now}
}

// WithClock overrides the watcher's time source for tests.
func (w *Watcher) WithClock(now func() time.Time) *Watcher {
	w.now = now
	return w
}

// Start schedules the sweep every minute and returns the running cron.
func (w *Watcher) Start() (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc("0 * * * * *", func() {
		if err := w.Sweep(context.Background()); err != nil {
			log.Printf("[watcher] sweep failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule sweep: %w", err)
	}

	log.Println("[watcher] deadline sweep scheduled (every minute)")
	c.Start()
	return c, nil
}

// Sweep announces every campaign that is expired, below goal, and not
// yet announced.
func (w *Watcher) Sweep(ctx context.Context) error {
	projects, err := w.store.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	now := w.now()
	for _, p := range projects {
		if !domain.IsExpired(p, now) || domain.IsFunded(p) {
			continue
		}

		member := fmt.Sprintf("%d", p.ID)
		seen, err := w.client.SIsMember(ctx, announcedSetKey, member).Result()
		if err != nil {
			return fmt.Errorf("check announced set: %w", err)
		}
		if seen {
			continue
		}

		if err := w.announce(ctx, p, now); err != nil {
			log.Printf("[watcher] announce expiry for project %d failed: %v", p.ID, err)
			continue
		}
		if err := w.client.SAdd(ctx, announcedSetKey, member).Err(); err != nil {
			return fmt.Errorf("mark announced: %w", err)
		}
		log.Printf("[watcher] announced expiry: project=%d deadline=%d", p.ID, p.Deadline)
	}
	return nil
}

func (w *Watcher) announce(ctx context.Context, p domain.Project, now time.Time) error {
	notice := domain.Event{
		ID:        uuid.NewString(),
		Type:      domain.EventCampaignExpired,
		ProjectID: p.ID,
		Account:   p.Creator,
		Title:     p.Title,
		CreatedAt: now.Unix(),
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}

	pipe := w.client.Pipeline()
	pipe.Publish(ctx, events.FirehoseChannel, payload)
	pipe.Publish(ctx, events.ProjectChannel(p.ID), payload)
	_, err = pipe.Exec(ctx)
	return err
}
