package events

import (
	"context"
	"fmt"
	"log"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
	"github.com/fundchain/campaign-engine/internal/campaigns/store"
)

// Sink receives every emitted event after it has been appended to the
// store's event log. Sinks are best-effort: a failing sink is logged
// and never fails the mutation that produced the event.
type Sink interface {
	Record(ctx context.Context, e domain.Event) error
}

// Emitter appends domain events to the durable event log and fans
// them out to the configured sinks (Redis pub/sub, SQL archive).
type Emitter struct {
	store store.Store
	sinks []Sink
}

func NewEmitter(st store.Store, sinks ...Sink) *Emitter {
	return &Emitter{store: st, sinks: sinks}
}

func (em *Emitter) Emit(ctx context.Context, e domain.Event) error {
	if err := em.store.AppendEvent(ctx, e); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	for _, s := range em.sinks {
		if err := s.Record(ctx, e); err != nil {
			log.Printf("[events] sink failed for %s project=%d: %v", e.Type, e.ProjectID, err)
		}
	}
	return nil
}
