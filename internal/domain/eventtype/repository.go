package eventtype

import "context"

type EventTypeRepository interface {
	Create(ctx context.Context, et EventType) (EventType, error)
	GetByID(ctx context.Context, id string) (EventType, error)
	Update(ctx context.Context, et EventType) error
	Delete(ctx context.Context, id string) error

	// ListVisible returns global event types plus those scoped to the
	// given campaign. A nil campaignID returns only global types.
	ListVisible(ctx context.Context, campaignID *string) ([]EventType, error)
}
