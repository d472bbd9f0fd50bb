package notify

import "context"

// Notifier dispatches decision notifications. Failures are logged and
// swallowed by callers; a notification must never fail the request that
// triggered it.
type Notifier interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
	SendEmail(ctx context.Context, to, subject, message string) error
}
