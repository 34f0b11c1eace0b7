package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	List(ctx context.Context) ([]User, error)

	// ListByCampaigns returns all users belonging to any of the given
	// campaigns. An empty slice of IDs yields an empty result.
	ListByCampaigns(ctx context.Context, campaignIDs []string) ([]User, error)

	// ListByRole returns every user holding the given role.
	ListByRole(ctx context.Context, role Role) ([]User, error)

	// ListTeamLeaders returns the distinct users referenced as team
	// leader by at least one member of the campaign.
	ListTeamLeaders(ctx context.Context, campaignID string) ([]User, error)
}
