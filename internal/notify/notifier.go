package notify

import (
	"context"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
)

// Notifier sends purchase emails. It is always called off the request
// path; a failed send is logged by the caller and never rolls back an
// order.
type Notifier interface {
	// OrderPlaced notifies both the customer and the seller of a new order
	OrderPlaced(ctx context.Context, order *domain.Order) error
}

// NoopNotifier is used when SMTP is not configured
type NoopNotifier struct{}

func (NoopNotifier) OrderPlaced(context.Context, *domain.Order) error { return nil }
