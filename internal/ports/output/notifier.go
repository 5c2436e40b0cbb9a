package output

import (
	"context"

	"storefront/internal/domain"
)

// Notifier interface - Output port
// Receives transient user-facing notifications.
type Notifier interface {
	Notify(notification domain.Notification)
}

// SessionStorage interface - Output port
// Durable key/value storage owned by the shopper (a browser cookie over HTTP).
type SessionStorage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(notification domain.Notification)

// Notify calls f
func (f NotifierFunc) Notify(notification domain.Notification) {
	f(notification)
}

type notifierKey struct{}

// ContextWithNotifier returns a context carrying the request notifier
func ContextWithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// NotifierFromContext returns the request notifier, or nil when none was attached
func NotifierFromContext(ctx context.Context) Notifier {
	n, _ := ctx.Value(notifierKey{}).(Notifier)
	return n
}
