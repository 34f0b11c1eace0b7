package master

import (
	"context"
	"fmt"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/eventtype"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
)

// Service owns the reference data: event types and leave types.
type Service struct {
	eventTypeRepo eventtype.EventTypeRepository
	leaveTypeRepo leave.LeaveTypeRepository
	campaignRepo  campaign.CampaignRepository
}

func NewService(
	eventTypeRepo eventtype.EventTypeRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	campaignRepo campaign.CampaignRepository,
) *Service {
	return &Service{
		eventTypeRepo: eventTypeRepo,
		leaveTypeRepo: leaveTypeRepo,
		campaignRepo:  campaignRepo,
	}
}

func (s *Service) CreateEventType(ctx context.Context, req eventtype.CreateEventTypeRequest) (eventtype.EventType, error) {
	if err := req.Validate(); err != nil {
		return eventtype.EventType{}, err
	}

	if req.CampaignID != nil {
		if _, err := s.campaignRepo.GetByID(ctx, *req.CampaignID); err != nil {
			return eventtype.EventType{}, fmt.Errorf("failed to get campaign: %w", err)
		}
	}

	created, err := s.eventTypeRepo.Create(ctx, eventtype.EventType{
		Name:       req.Name,
		Category:   eventtype.Category(req.Category),
		IsPaid:     req.IsPaid,
		IsBreak:    req.IsBreak,
		CampaignID: req.CampaignID,
	})
	if err != nil {
		return eventtype.EventType{}, fmt.Errorf("failed to create event type: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateEventType(ctx context.Context, id string, req eventtype.CreateEventTypeRequest) (eventtype.EventType, error) {
	if err := req.Validate(); err != nil {
		return eventtype.EventType{}, err
	}

	existing, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		return eventtype.EventType{}, err
	}

	existing.Name = req.Name
	existing.Category = eventtype.Category(req.Category)
	existing.IsPaid = req.IsPaid
	existing.IsBreak = req.IsBreak
	existing.CampaignID = req.CampaignID

	if err := s.eventTypeRepo.Update(ctx, existing); err != nil {
		return eventtype.EventType{}, fmt.Errorf("failed to update event type: %w", err)
	}
	return existing, nil
}

func (s *Service) DeleteEventType(ctx context.Context, id string) error {
	if _, err := s.eventTypeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.eventTypeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event type: %w", err)
	}
	return nil
}

// ListEventTypes returns the types visible to one campaign: the global
// set plus campaign-scoped entries.
func (s *Service) ListEventTypes(ctx context.Context, campaignID *string) ([]eventtype.EventType, error) {
	types, err := s.eventTypeRepo.ListVisible(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event types: %w", err)
	}
	return types, nil
}

func (s *Service) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	created, err := s.leaveTypeRepo.Create(ctx, leave.LeaveType{
		Name:         req.Name,
		IsPaid:       req.IsPaid,
		AllowFullDay: req.AllowFullDay,
		AllowHalfDay: req.AllowHalfDay,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateLeaveType(ctx context.Context, id string, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	existing, err := s.leaveTypeRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveType{}, err
	}

	existing.Name = req.Name
	existing.IsPaid = req.IsPaid
	existing.AllowFullDay = req.AllowFullDay
	existing.AllowHalfDay = req.AllowHalfDay
	existing.SortOrder = req.SortOrder

	if err := s.leaveTypeRepo.Update(ctx, existing); err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to update leave type: %w", err)
	}
	return existing, nil
}

func (s *Service) DeleteLeaveType(ctx context.Context, id string) error {
	if _, err := s.leaveTypeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.leaveTypeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	return nil
}

func (s *Service) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}
