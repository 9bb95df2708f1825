package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

const (
	// FirehoseChannel carries every campaign event.
	FirehoseChannel = "campaign:events"
	// Per-project channel: campaign:events:{project_id}
	projectChannelPrefix = "campaign:events:"
)

// RedisPublisher pushes events to Redis pub/sub so front ends can
// sync state live instead of polling.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// ProjectChannel returns the pub/sub channel carrying events for one
// project.
func ProjectChannel(projectID int64) string {
	return fmt.Sprintf("%s%d", projectChannelPrefix, projectID)
}

func (p *RedisPublisher) Record(ctx context.Context, e domain.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, FirehoseChannel, payload)
	pipe.Publish(ctx, ProjectChannel(e.ProjectID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
