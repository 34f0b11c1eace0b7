package eventtype

import "time"

type Category string

const (
	CategoryWork  Category = "WORK"
	CategoryBreak Category = "BREAK"
	CategoryLeave Category = "LEAVE"
	CategoryOther Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryBreak, CategoryLeave, CategoryOther:
		return true
	}
	return false
}

// EventType is a named clock action. A nil CampaignID means the type is
// global and visible to every campaign.
type EventType struct {
	ID         string
	Name       string
	Category   Category
	IsPaid     bool
	IsBreak    bool
	CampaignID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
