package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"task-manager-api/pkg/logger"
)

type publishFunc func(ctx context.Context, subject string, data []byte) error

// Publisher publishes task events to JetStream behind a circuit breaker.
type Publisher struct {
	publish       publishFunc
	subjectPrefix string
	breaker       *gobreaker.CircuitBreaker
}

// NewPublisher สร้าง Publisher ใหม่
func NewPublisher(client *Client) *Publisher {
	return newPublisher(func(ctx context.Context, subject string, data []byte) error {
		_, err := client.js.Publish(ctx, subject, data)
		return err
	}, client.SubjectPrefix())
}

func newPublisher(publish publishFunc, subjectPrefix string) *Publisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nats-task-events",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Publisher{
		publish:       publish,
		subjectPrefix: subjectPrefix,
		breaker:       breaker,
	}
}

// PublishTaskEvent ส่ง task event ไปยัง JetStream
func (p *Publisher) PublishTaskEvent(ctx context.Context, msg *TaskEventMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	subject := EventSubject(p.subjectPrefix, msg.Type)
	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publish(ctx, subject, data)
	})
	if err != nil {
		return fmt.Errorf("failed to publish task event to %s: %w", subject, err)
	}

	logger.DebugContext(ctx, "Task event published", "subject", subject, "task_id", msg.TaskID)
	return nil
}
