package mocks

import (
	"context"
	"sync"

	apporder "shopcore/application/order"
	"shopcore/domain/order"
)

// Notification is one recorded Notify call.
type Notification struct {
	Owner   order.OwnerRef
	Kind    apporder.EventKind
	Payload map[string]any
}

// MockNotifier records notifications for assertions. Notifications are
// dispatched on goroutines, so tests should poll or wait before reading.
type MockNotifier struct {
	mu            sync.Mutex
	notifications []Notification

	// NotifyErr, when set, is returned from Notify. The service is
	// expected to log and swallow it.
	NotifyErr error
}

// NewMockNotifier creates an empty recorder.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) Notify(ctx context.Context, owner order.OwnerRef, kind apporder.EventKind, payload map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notifications = append(n.notifications, Notification{
		Owner:   owner,
		Kind:    kind,
		Payload: payload,
	})
	return n.NotifyErr
}

// Notifications returns a copy of everything recorded so far.
func (n *MockNotifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.notifications))
	copy(out, n.notifications)
	return out
}

// Compile-time interface implementation check
var _ apporder.Notifier = (*MockNotifier)(nil)
