// Package worker drains venue events off RabbitMQ and turns them into
// staff notifications.
package worker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/events"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/notifier"
	"github.com/usausernob/lapangan-putroagung-rangkah/pkg/mq"
)

type NotifyWorker struct {
	cons *mq.Consumer
	n    notifier.Notifier
}

func NewNotifyWorker(cons *mq.Consumer, n notifier.Notifier) *NotifyWorker {
	return &NotifyWorker{cons: cons, n: n}
}

// Bindings are the routing keys the notify queue listens on.
func Bindings() []string {
	return []string{
		events.RKBookingCreated,
		events.RKPaymentPaid,
		events.RKPaymentFailed,
		events.RKPaymentExpired,
	}
}

func (w *NotifyWorker) Run(ctx context.Context) error {
	msgs, err := w.cons.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(d); err != nil {
				logrus.WithError(err).WithField("key", d.RoutingKey).Warn("notify handling failed, requeueing")
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *NotifyWorker) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingCreated:
		ev, err := events.Unmarshal[events.BookingCreated](d.Body)
		if err != nil {
			return err
		}
		return w.n.Notify("Booking Created",
			fmt.Sprintf("Booking %s: %s on %s at %s (Rp%d)", ev.BookingID, ev.CourtID, ev.BookingDate, ev.TimeSlot, ev.Amount))

	case events.RKPaymentPaid:
		ev, err := events.Unmarshal[events.PaymentResult](d.Body)
		if err != nil {
			return err
		}
		return w.n.Notify("Payment Paid",
			fmt.Sprintf("Booking %s paid Rp%d.", ev.BookingID, ev.Amount))

	case events.RKPaymentFailed:
		ev, err := events.Unmarshal[events.PaymentResult](d.Body)
		if err != nil {
			return err
		}
		return w.n.Notify("Payment Failed",
			fmt.Sprintf("Payment failed for booking %s.", ev.BookingID))

	case events.RKPaymentExpired:
		ev, err := events.Unmarshal[events.PaymentResult](d.Body)
		if err != nil {
			return err
		}
		return w.n.Notify("Payment Expired",
			fmt.Sprintf("Payment window expired for booking %s.", ev.BookingID))

	default:
		logrus.WithField("key", d.RoutingKey).Debug("skip unknown routing key")
	}
	return nil
}
