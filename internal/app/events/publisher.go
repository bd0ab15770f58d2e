package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
)

// EventRecordSaved is the type of the event sent after every append.
const EventRecordSaved = "record.saved"

// RecordEvent is the payload published for a saved record.
type RecordEvent struct {
	Type   string                    `json:"type"`
	Record model.TranscriptionRecord `json:"record"`
	Total  int                       `json:"total"`
}

// Publisher announces saved records to other processes.
type Publisher interface {
	RecordSaved(ctx context.Context, record model.TranscriptionRecord, total int) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) RecordSaved(context.Context, model.TranscriptionRecord, int) error { return nil }
func (NopPublisher) Close() error                                                     { return nil }

// RedisConfig configures a RedisPublisher.
type RedisConfig struct {
	Addr     string
	Password string
	Channel  string
}

// RedisPublisher publishes events as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis and verifies the connection.
func NewRedisPublisher(ctx context.Context, cfg RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.ErrConfiguration.Wrap(err, "connect to redis at "+cfg.Addr)
	}

	return &RedisPublisher{client: client, channel: cfg.Channel}, nil
}

// Channel returns the channel events are published on.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

func (p *RedisPublisher) RecordSaved(ctx context.Context, record model.TranscriptionRecord, total int) error {
	payload, err := json.Marshal(RecordEvent{Type: EventRecordSaved, Record: record, Total: total})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
