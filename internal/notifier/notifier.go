package notifier

import (
	"github.com/sirupsen/logrus"
)

// Notifier is an interface so the delivery channel can change later
// (email, WhatsApp, Telegram) without touching the worker.
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier logs notifications; the MVP channel.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	logrus.WithField("subject", subject).Info(message)
	return nil
}
