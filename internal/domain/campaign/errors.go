package campaign

import "errors"

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrNameExists       = errors.New("campaign name already exists")
)
