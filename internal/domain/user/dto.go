package user

import (
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role"`
	CampaignID   *string `json:"campaign_id,omitempty"`
	TeamLeaderID *string `json:"team_leader_id,omitempty"`
	Timezone     string  `json:"timezone"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: ADMIN, MANAGER, EMPLOYEE",
		})
	}

	if r.Timezone == "" {
		r.Timezone = "UTC"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID           string  `json:"-"`
	FullName     *string `json:"full_name,omitempty"`
	Role         *string `json:"role,omitempty"`
	CampaignID   *string `json:"campaign_id,omitempty"`
	TeamLeaderID *string `json:"team_leader_id,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Role != nil && !Role(*r.Role).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: ADMIN, MANAGER, EMPLOYEE",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	CampaignID     *string `json:"campaign_id,omitempty"`
	CampaignName   *string `json:"campaign_name,omitempty"`
	TeamLeaderID   *string `json:"team_leader_id,omitempty"`
	TeamLeaderName *string `json:"team_leader_name,omitempty"`
	Timezone       string  `json:"timezone"`
	CreatedAt      string  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           string(u.Role),
		CampaignID:     u.CampaignID,
		CampaignName:   u.CampaignName,
		TeamLeaderID:   u.TeamLeaderID,
		TeamLeaderName: u.TeamLeaderName,
		Timezone:       u.Timezone,
		CreatedAt:      u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
