package campaign

import (
	"context"
	"fmt"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

type Service struct {
	campaignRepo campaign.CampaignRepository
}

func NewService(campaignRepo campaign.CampaignRepository) *Service {
	return &Service{campaignRepo: campaignRepo}
}

func (s *Service) Create(ctx context.Context, req campaign.CreateCampaignRequest) (campaign.Campaign, error) {
	if err := req.Validate(); err != nil {
		return campaign.Campaign{}, err
	}
	if err := validateSchedule(req); err != nil {
		return campaign.Campaign{}, err
	}

	created, err := s.campaignRepo.Create(ctx, campaign.Campaign{
		Name:               req.Name,
		WorkDayStart:       req.WorkDayStart,
		WorkDayEnd:         req.WorkDayEnd,
		LunchStart:         req.LunchStart,
		LunchEnd:           req.LunchEnd,
		TeaBreaks:          req.TeaBreaks,
		LeaveApproverEmail: req.LeaveApproverEmail,
		EscalationEmail:    req.EscalationEmail,
		Timezone:           req.Timezone,
	})
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (campaign.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]campaign.Campaign, error) {
	campaigns, err := s.campaignRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *Service) Update(ctx context.Context, req campaign.UpdateCampaignRequest) (campaign.Campaign, error) {
	if err := req.Validate(); err != nil {
		return campaign.Campaign{}, err
	}
	if err := validateSchedule(req.CreateCampaignRequest); err != nil {
		return campaign.Campaign{}, err
	}

	existing, err := s.campaignRepo.GetByID(ctx, req.ID)
	if err != nil {
		return campaign.Campaign{}, err
	}

	existing.Name = req.Name
	existing.WorkDayStart = req.WorkDayStart
	existing.WorkDayEnd = req.WorkDayEnd
	existing.LunchStart = req.LunchStart
	existing.LunchEnd = req.LunchEnd
	existing.TeaBreaks = req.TeaBreaks
	existing.LeaveApproverEmail = req.LeaveApproverEmail
	existing.EscalationEmail = req.EscalationEmail
	existing.Timezone = req.Timezone

	if err := s.campaignRepo.Update(ctx, existing); err != nil {
		return campaign.Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.campaignRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// validateSchedule enforces ordering on whichever window pairs are
// fully specified; partially specified pairs pass through.
func validateSchedule(req campaign.CreateCampaignRequest) error {
	var errs validator.ValidationErrors

	checkPair := func(field string, start, end *string) {
		if start == nil || end == nil {
			return
		}
		from, err1 := campaign.ParseTimeOfDay(*start)
		to, err2 := campaign.ParseTimeOfDay(*end)
		if err1 != nil || err2 != nil {
			return
		}
		if !from.Before(to) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " start must be before its end",
			})
		}
	}

	checkPair("work_day", req.WorkDayStart, req.WorkDayEnd)
	checkPair("lunch", req.LunchStart, req.LunchEnd)
	for _, tb := range req.TeaBreaks {
		start, end := tb.Start, tb.End
		checkPair("tea_breaks", &start, &end)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
