package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	CampaignID   *string
	TeamLeaderID *string
	Timezone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for responses
	CampaignName   *string
	TeamLeaderName *string
}

func (u User) IsManagerOrAdmin() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
