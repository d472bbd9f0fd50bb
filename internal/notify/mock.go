package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// MockNotifier logs instead of dispatching.
type MockNotifier struct {
	log *logrus.Logger
}

func NewMockNotifier(log *logrus.Logger) *MockNotifier {
	return &MockNotifier{log: log}
}

func (n *MockNotifier) SendSMS(_ context.Context, phoneNumber, message string) error {
	n.log.WithFields(logrus.Fields{"to": phoneNumber, "message": message}).Info("mock sms")
	return nil
}

func (n *MockNotifier) SendEmail(_ context.Context, to, subject, message string) error {
	n.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mock email")
	return nil
}
