package campaign

import "context"

type CampaignRepository interface {
	Create(ctx context.Context, c Campaign) (Campaign, error)
	GetByID(ctx context.Context, id string) (Campaign, error)
	Update(ctx context.Context, c Campaign) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Campaign, error)

	// ListScheduled returns campaigns that have a work-day start
	// configured, the only ones the late-arrival job evaluates.
	ListScheduled(ctx context.Context) ([]Campaign, error)
}
