package timeevent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/eventtype"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/report"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
)

type Service struct {
	timeEventRepo timeevent.TimeEventRepository
	eventTypeRepo eventtype.EventTypeRepository
	userRepo      user.UserRepository
	campaignRepo  campaign.CampaignRepository

	now func() time.Time
}

func NewService(
	timeEventRepo timeevent.TimeEventRepository,
	eventTypeRepo eventtype.EventTypeRepository,
	userRepo user.UserRepository,
	campaignRepo campaign.CampaignRepository,
) *Service {
	return &Service{
		timeEventRepo: timeEventRepo,
		eventTypeRepo: eventTypeRepo,
		userRepo:      userRepo,
		campaignRepo:  campaignRepo,
		now:           time.Now,
	}
}

// Clock records one immutable time event at the current instant. A
// "Work Start" event against a campaign with a configured work-day
// start also stores how many minutes late the clock-in was.
func (s *Service) Clock(ctx context.Context, req timeevent.ClockRequest) (timeevent.TimeEvent, error) {
	if err := req.Validate(); err != nil {
		return timeevent.TimeEvent{}, err
	}

	account, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return timeevent.TimeEvent{}, fmt.Errorf("failed to get user: %w", err)
	}

	eventType, err := s.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		return timeevent.TimeEvent{}, timeevent.ErrUnknownEventType
	}
	if eventType.CampaignID != nil {
		if account.CampaignID == nil || *account.CampaignID != *eventType.CampaignID {
			return timeevent.TimeEvent{}, timeevent.ErrUnknownEventType
		}
	}

	occurredAt := s.now().UTC()

	event := timeevent.TimeEvent{
		UserID:      account.ID,
		CampaignID:  account.CampaignID,
		EventTypeID: eventType.ID,
		OccurredAt:  occurredAt,
		Source:      req.Source,
	}

	if strings.Contains(eventType.Name, "Work Start") && account.CampaignID != nil {
		if late, ok := s.lateMinutes(ctx, *account.CampaignID, occurredAt); ok {
			event.LateMinutes = &late
		}
	}

	created, err := s.timeEventRepo.Create(ctx, event)
	if err != nil {
		return timeevent.TimeEvent{}, fmt.Errorf("failed to create time event: %w", err)
	}
	created.EventTypeName = eventType.Name
	created.EventTypeIsBreak = eventType.IsBreak
	return created, nil
}

// lateMinutes compares the clock-in instant against the campaign's
// work-day start in its own timezone. On-time clock-ins store zero.
func (s *Service) lateMinutes(ctx context.Context, campaignID string, occurredAt time.Time) (int, bool) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return 0, false
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		loc = time.UTC
	}

	workStart, ok := c.WorkStartToday(occurredAt, loc)
	if !ok {
		return 0, false
	}

	late := int(occurredAt.Sub(workStart).Minutes())
	if late < 0 {
		late = 0
	}
	return late, true
}

// ListForUser returns the user's events over an inclusive date range.
func (s *Service) ListForUser(ctx context.Context, userID string, req report.RangeReportRequest) ([]timeevent.TimeEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)

	events, err := s.timeEventRepo.ListForUser(ctx, userID, from, to.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list time events: %w", err)
	}
	return events, nil
}
