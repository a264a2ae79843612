// Package notify delivers order workflow events to interested parties.
// Delivery is best effort: a failed or slow notification never blocks or
// rolls back the transition that produced it.
package notify

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/pkg/email"
)

// Event describes a single order status transition.
type Event struct {
	OrderID   uuid.UUID
	Number    string // display number, e.g. ORD-000042
	From      enum.OrderStatus
	To        enum.OrderStatus
	ActorRole enum.Role
	Timestamp time.Time
}

// Notifier receives workflow events. Implementations must be safe for
// concurrent use and must not panic on delivery failure.
type Notifier interface {
	Notify(event Event)
}

// LogNotifier writes events to the application log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(event Event) {
	log.Printf("order %s: %s -> %s (by %s)",
		event.Number, event.From, event.To, event.ActorRole)
}

// EmailNotifier sends a status email to a configured operations address.
type EmailNotifier struct {
	emailService *email.EmailService
	toEmail      string
}

func NewEmailNotifier(emailService *email.EmailService, toEmail string) *EmailNotifier {
	return &EmailNotifier{emailService: emailService, toEmail: toEmail}
}

func (n *EmailNotifier) Notify(event Event) {
	if n.toEmail == "" {
		return
	}
	err := n.emailService.SendOrderStatusEmail(
		n.toEmail,
		event.Number,
		event.From.String(),
		event.To.String(),
		string(event.ActorRole),
	)
	if err != nil {
		log.Printf("Warning: failed to send order status email for %s: %v", event.Number, err)
	}
}

// Fanout dispatches each event to all registered notifiers in the
// background. Emit returns immediately.
type Fanout struct {
	notifiers []Notifier
}

func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

func (f *Fanout) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, n := range f.notifiers {
		go func(n Notifier) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Warning: notifier panic for order %s: %v", event.Number, r)
				}
			}()
			n.Notify(event)
		}(n)
	}
}
