package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/notification"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
)

type Service struct {
	userRepo     user.UserRepository
	campaignRepo campaign.CampaignRepository
	sender       notification.Sender
}

func NewService(userRepo user.UserRepository, campaignRepo campaign.CampaignRepository, sender notification.Sender) *Service {
	return &Service{
		userRepo:     userRepo,
		campaignRepo: campaignRepo,
		sender:       sender,
	}
}

// Create provisions an account with an explicit role; admin surface.
func (s *Service) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return user.User{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	if req.CampaignID != nil {
		if _, err := s.campaignRepo.GetByID(ctx, *req.CampaignID); err != nil {
			return user.User{}, fmt.Errorf("failed to get campaign: %w", err)
		}
	}
	if req.TeamLeaderID != nil {
		if _, err := s.userRepo.GetByID(ctx, *req.TeamLeaderID); err != nil {
			return user.User{}, fmt.Errorf("failed to get team leader: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.Role(req.Role),
		CampaignID:   req.CampaignID,
		TeamLeaderID: req.TeamLeaderID,
		Timezone:     req.Timezone,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	created.PasswordHash = ""
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (user.User, error) {
	found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	found.PasswordHash = ""
	return found, nil
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Update applies the non-nil fields of req. Campaign and team-leader
// changes notify the affected parties; a promotion to MANAGER notifies
// the promoted user.
func (s *Service) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	existing, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}

	campaignChanged := false
	leaderChanged := false
	promoted := false

	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.Timezone != nil {
		existing.Timezone = *req.Timezone
	}
	if req.Role != nil {
		newRole := user.Role(*req.Role)
		promoted = newRole == user.RoleManager && existing.Role != user.RoleManager
		existing.Role = newRole
	}
	if req.CampaignID != nil && (existing.CampaignID == nil || *existing.CampaignID != *req.CampaignID) {
		if _, err := s.campaignRepo.GetByID(ctx, *req.CampaignID); err != nil {
			return user.User{}, fmt.Errorf("failed to get campaign: %w", err)
		}
		existing.CampaignID = req.CampaignID
		campaignChanged = true
	}
	if req.TeamLeaderID != nil && (existing.TeamLeaderID == nil || *existing.TeamLeaderID != *req.TeamLeaderID) {
		if *req.TeamLeaderID == existing.ID {
			return user.User{}, user.ErrInvalidRole
		}
		if _, err := s.userRepo.GetByID(ctx, *req.TeamLeaderID); err != nil {
			return user.User{}, fmt.Errorf("failed to get team leader: %w", err)
		}
		existing.TeamLeaderID = req.TeamLeaderID
		leaderChanged = true
	}

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.notifyChanges(context.WithoutCancel(ctx), existing, campaignChanged, leaderChanged, promoted)

	existing.PasswordHash = ""
	return existing, nil
}

func (s *Service) notifyChanges(ctx context.Context, updated user.User, campaignChanged, leaderChanged, promoted bool) {
	if campaignChanged && updated.CampaignID != nil {
		c, err := s.campaignRepo.GetByID(ctx, *updated.CampaignID)
		if err != nil {
			slog.Error("Failed to resolve campaign for assignment notification",
				"campaign_id", *updated.CampaignID, "error", err)
		} else {
			go s.sender.Send(ctx, notification.KindCampaignAssignment, notification.Payload{
				To:      []string{updated.Email},
				Subject: fmt.Sprintf("You were assigned to %s", c.Name),
				Data: map[string]string{
					"AgentName": updated.FullName,
					"Campaign":  c.Name,
				},
			})
		}
	}

	if leaderChanged && updated.TeamLeaderID != nil {
		leader, err := s.userRepo.GetByID(ctx, *updated.TeamLeaderID)
		if err != nil {
			slog.Error("Failed to resolve team leader for assignment notification",
				"team_leader_id", *updated.TeamLeaderID, "error", err)
		} else {
			go s.sender.Send(ctx, notification.KindTeamAssignment, notification.Payload{
				To:      []string{leader.Email},
				Subject: fmt.Sprintf("%s joined your team", updated.FullName),
				Data: map[string]string{
					"AgentName":  updated.FullName,
					"LeaderName": leader.FullName,
				},
			})
		}
	}

	if promoted {
		go s.sender.Send(ctx, notification.KindTeamLeaderPromotion, notification.Payload{
			To:      []string{updated.Email},
			Subject: "You were promoted to manager",
			Data: map[string]string{
				"AgentName": updated.FullName,
			},
		})
	}
}
