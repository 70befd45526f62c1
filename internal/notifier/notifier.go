// Package notifier turns order events from the broker into notifications
// for the parties of the order.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/pkg/rabbitmq"
)

// Notification is a message addressed to one user.
type Notification struct {
	RecipientID string
	Email       string
	Subject     string
	Body        string
}

// Notifier resolves recipients and logs notifications. users may be nil, in
// which case notifications carry no email address.
type Notifier struct {
	users repositories.UserRepository
	log   *logrus.Logger
}

func New(users repositories.UserRepository, logger *logrus.Logger) *Notifier {
	return &Notifier{users: users, log: logger}
}

// Handle is a rabbitmq.Handler for the order queue.
func (n *Notifier) Handle(body []byte) error {
	var event models.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: malformed order event: %v", rabbitmq.ErrDiscard, err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("%w: order event without order id", rabbitmq.ErrDiscard)
	}

	notifications, err := Describe(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, note := range notifications {
		if err := n.resolve(ctx, &note); err != nil {
			// Lookup failures are transient, requeue.
			return err
		}
		n.log.WithFields(logrus.Fields{
			"recipient": note.RecipientID,
			"email":     note.Email,
			"order_id":  event.OrderID,
			"event":     event.Type,
			"body":      note.Body,
		}).Info(note.Subject)
	}
	return nil
}

func (n *Notifier) resolve(ctx context.Context, note *Notification) error {
	if n.users == nil || note.RecipientID == "" {
		return nil
	}
	user, err := n.users.GetByID(ctx, note.RecipientID)
	if err != nil {
		return fmt.Errorf("failed to look up recipient %s: %w", note.RecipientID, err)
	}
	if user != nil && user.Email != nil {
		note.Email = *user.Email
	}
	return nil
}

// Describe builds the notifications for one event. New orders notify the
// vendor; status changes notify the customer.
func Describe(event models.OrderEvent) ([]Notification, error) {
	short := event.OrderID
	if len(short) > 8 {
		short = short[:8]
	}

	switch event.Type {
	case models.EventOrderCreated:
		return []Notification{{
			RecipientID: event.VendorID,
			Subject:     fmt.Sprintf("New order %s", short),
			Body:        fmt.Sprintf("You received a new order worth %s.", event.Total),
		}}, nil
	case models.EventOrderStatusUpdated:
		return []Notification{{
			RecipientID: event.CustomerID,
			Subject:     fmt.Sprintf("Order %s is %s", short, event.Status),
			Body:        fmt.Sprintf("Your order is now %s.", event.Status),
		}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", rabbitmq.ErrDiscard, event.Type)
	}
}
