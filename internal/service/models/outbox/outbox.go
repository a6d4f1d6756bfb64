package outbox

import (
	"time"
)

// OutboxMessage is an order event staged for publication to RabbitMQ. Rows
// are written in the same transaction as the order change they describe and
// removed once the publish succeeds.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
