package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ChannelInterviewStarted   = "interview_started"
	ChannelInterviewCompleted = "interview_completed"

	// DefaultPublishTimeout bounds one publish so an unreachable broker
	// cannot hold up a request that has already committed.
	DefaultPublishTimeout = time.Second
)

// Event is published on the channel named by Type.
type Event struct {
	Type          string    `json:"type"`
	InterviewID   string    `json:"interviewId"`
	UserID        string    `json:"userId,omitempty"`
	QuestionCount int       `json:"questionCount,omitempty"`
	OverallScore  *int      `json:"overallScore,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// EventPublisher delivers lifecycle events. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// RedisPublisher needs a client built with ContextTimeoutEnabled so the
// publish deadline also applies to socket reads and writes.
type RedisPublisher struct {
	rdb     *redis.Client
	logger  *zap.Logger
	timeout time.Duration
}

func NewRedisPublisher(rdb *redis.Client, logger *zap.Logger) *RedisPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPublisher{rdb: rdb, logger: logger, timeout: DefaultPublishTimeout}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("Failed to encode session event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.rdb.Publish(ctx, event.Type, data).Err(); err != nil {
		p.logger.Warn("Failed to publish session event",
			zap.String("type", event.Type),
			zap.String("interview_id", event.InterviewID),
			zap.Error(err))
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) {}

// NoopPublisher drops every event. Used when Redis is not configured.
func NoopPublisher() EventPublisher {
	return noopPublisher{}
}
