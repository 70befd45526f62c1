package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// OrderQueue carries order lifecycle events from the API to the notifier.
const OrderQueue = "order_queue"

// ErrChannelClosed is returned when the client has no usable channel.
var ErrChannelClosed = errors.New("rabbitmq channel is not available")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *logrus.Logger

	// amqp.Channel must not be used by concurrent publishers.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL    string
	Queues []string
}

// NewClient connects to RabbitMQ, opens a channel and declares every queue
// in cfg.Queues (OrderQueue when empty).
func NewClient(cfg Config, logger *logrus.Logger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	queues := cfg.Queues
	if len(queues) == 0 {
		queues = []string{OrderQueue}
	}
	for _, name := range queues {
		if err := declare(ch, name); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	logger.WithField("queues", queues).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		log:     logger,
	}, nil
}

func declare(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Publish sends a persistent JSON message to the queue named by routingKey
// through the default exchange.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c == nil || c.channel == nil {
		return ErrChannelClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		"", // default exchange
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.WithFields(logrus.Fields{"queue": routingKey, "bytes": len(body)}).Debug("Published message")
	return nil
}

// Handler processes one message body. A non-nil error requeues the message
// unless it wraps ErrDiscard.
type Handler func(body []byte) error

// ErrDiscard marks a message that can never be processed, such as malformed
// JSON. It is rejected without requeue.
var ErrDiscard = errors.New("discard message")

// Consume delivers messages from queue to handler until ctx is cancelled or
// the channel closes. Messages are acknowledged manually.
func (c *Client) Consume(ctx context.Context, queue string, handler Handler) error {
	if c == nil || c.channel == nil {
		return ErrChannelClosed
	}
	if err := declare(c.channel, queue); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.WithField("queue", queue).Info("Waiting for messages")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}
			c.dispatch(msg, handler)
		}
	}
}

func (c *Client) dispatch(msg amqp.Delivery, handler Handler) {
	entry := c.log.WithField("delivery_tag", msg.DeliveryTag)

	err := handler(msg.Body)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			entry.WithError(ackErr).Error("Error acking message")
		}
	case errors.Is(err, ErrDiscard):
		entry.WithError(err).Warn("Discarding message")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			entry.WithError(nackErr).Error("Error rejecting message")
		}
	default:
		entry.WithError(err).Error("Error processing message")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			entry.WithError(nackErr).Error("Error nacking message")
		}
	}
}
