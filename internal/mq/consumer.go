// Package mq provides a RabbitMQ consumer for remote configuration
// synchronization. When another service changes a property, it
// publishes an event to the config.events exchange; this consumer
// applies the change to the local snapshot so reports stay current
// without polling Redis.
package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eco2-team/backend/domains/env-report/internal/logging"
)

const (
	// exchangeName is the fanout exchange for config events.
	exchangeName = "config.events"
	// exchangeType is fanout to broadcast to all consumers.
	exchangeType = "fanout"
	// reconnectDelay is the delay before attempting to reconnect.
	reconnectDelay = 5 * time.Second
	// refreshTimeout bounds the Redis round trip for a full refresh.
	refreshTimeout = 10 * time.Second
)

// Metrics for MQ consumer
var (
	mqEventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "env_report",
		Subsystem: "mq",
		Name:      "events_received_total",
		Help:      "Total number of events received from RabbitMQ",
	}, []string{"type"})

	mqEventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "env_report",
		Subsystem: "mq",
		Name:      "events_processed_total",
		Help:      "Total number of events successfully processed",
	}, []string{"type"})

	mqEventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "env_report",
		Subsystem: "mq",
		Name:      "events_failed_total",
		Help:      "Total number of events that failed to process",
	})

	mqConnectionStatus = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "env_report",
		Subsystem: "mq",
		Name:      "connection_status",
		Help:      "Current connection status (1=connected, 0=disconnected)",
	})

	mqReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "env_report",
		Subsystem: "mq",
		Name:      "reconnects_total",
		Help:      "Total number of reconnection attempts",
	})
)

// ConfigEvent represents a remote configuration change.
type ConfigEvent struct {
	Type  string `json:"type"`  // "set", "remove" or "refresh"
	Key   string `json:"key"`   // Property key (set/remove)
	Value string `json:"value"` // New value (set)
}

// SnapshotTarget is the part of the remote source the consumer drives.
type SnapshotTarget interface {
	Refresh(ctx context.Context) error
	Apply(key, value string)
	Remove(key string)
}

// ConfigConsumer consumes config events from RabbitMQ.
type ConfigConsumer struct {
	amqpURL string
	target  SnapshotTarget
	logger  *logging.Logger
	done    chan struct{}
}

// NewConfigConsumer creates a new ConfigConsumer.
func NewConfigConsumer(amqpURL string, target SnapshotTarget, logger *logging.Logger) *ConfigConsumer {
	return &ConfigConsumer{
		amqpURL: amqpURL,
		target:  target,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start begins consuming events from RabbitMQ.
// It will automatically reconnect on connection failure.
func (c *ConfigConsumer) Start() {
	go c.consumeLoop()
}

// Stop stops the consumer.
func (c *ConfigConsumer) Stop() {
	close(c.done)
}

// consumeLoop handles connection and reconnection to RabbitMQ.
func (c *ConfigConsumer) consumeLoop() {
	for {
		select {
		case <-c.done:
			c.logger.Info("MQ consumer stopped")
			return
		default:
			if err := c.connect(); err != nil {
				c.logger.Error("MQ connection failed",
					"error", err,
					"retry_in", reconnectDelay,
				)
				mqConnectionStatus.Set(0)
				mqReconnects.Inc()
				time.Sleep(reconnectDelay)
				continue
			}
		}
	}
}

// connect establishes a connection to RabbitMQ and starts consuming.
func (c *ConfigConsumer) connect() error {
	conn, err := amqp.Dial(c.amqpURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	// Declare fanout exchange
	err = ch.ExchangeDeclare(
		exchangeName, // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return err
	}

	// Declare anonymous exclusive queue
	q, err := ch.QueueDeclare(
		"",    // name (auto-generated)
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	// Bind queue to exchange
	err = ch.QueueBind(
		q.Name,       // queue name
		"",           // routing key (ignored for fanout)
		exchangeName, // exchange
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return err
	}

	// Start consuming
	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer tag
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // arguments
	)
	if err != nil {
		return err
	}

	mqConnectionStatus.Set(1)
	c.logger.Info("MQ consumer connected",
		"exchange", exchangeName,
		"queue", q.Name,
	)

	// Process messages until connection closes or shutdown
	connClose := conn.NotifyClose(make(chan *amqp.Error))

	for {
		select {
		case <-c.done:
			return nil
		case err := <-connClose:
			c.logger.Warn("MQ connection closed", "error", err)
			mqConnectionStatus.Set(0)
			return err
		case msg := <-msgs:
			c.handleMessage(msg.Body)
		}
	}
}

// handleMessage processes a single config event.
func (c *ConfigConsumer) handleMessage(body []byte) {
	var event ConfigEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Warn("Failed to unmarshal event",
			"error", err,
			"body", string(body),
		)
		mqEventsFailed.Inc()
		return
	}

	mqEventsReceived.WithLabelValues(event.Type).Inc()

	switch event.Type {
	case "set":
		if event.Key == "" {
			c.logger.Warn("Received set event with empty key")
			mqEventsFailed.Inc()
			return
		}
		c.target.Apply(event.Key, event.Value)
		c.logger.Debug("Applied config key",
			"key", event.Key,
		)
		mqEventsProcessed.WithLabelValues("set").Inc()

	case "remove":
		if event.Key == "" {
			c.logger.Warn("Received remove event with empty key")
			mqEventsFailed.Inc()
			return
		}
		c.target.Remove(event.Key)
		c.logger.Debug("Removed config key",
			"key", event.Key,
		)
		mqEventsProcessed.WithLabelValues("remove").Inc()

	case "refresh":
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := c.target.Refresh(ctx); err != nil {
			c.logger.Warn("Snapshot refresh failed",
				"error", err,
			)
			mqEventsFailed.Inc()
			return
		}
		mqEventsProcessed.WithLabelValues("refresh").Inc()

	default:
		c.logger.Warn("Unknown event type",
			"type", event.Type,
		)
		mqEventsFailed.Inc()
	}
}
