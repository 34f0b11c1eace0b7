package timeevent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/eventtype"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
)

type fakeTimeEventRepo struct {
	created []timeevent.TimeEvent
}

func (f *fakeTimeEventRepo) Create(ctx context.Context, e timeevent.TimeEvent) (timeevent.TimeEvent, error) {
	e.ID = "evt-1"
	f.created = append(f.created, e)
	return e, nil
}
func (f *fakeTimeEventRepo) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]timeevent.TimeEvent, error) {
	return f.created, nil
}
func (f *fakeTimeEventRepo) ListForUsers(ctx context.Context, userIDs []string, from, to time.Time) ([]timeevent.TimeEvent, error) {
	return nil, nil
}
func (f *fakeTimeEventRepo) HasWorkStart(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	return false, nil
}

type fakeEventTypeRepo struct {
	types map[string]eventtype.EventType
}

func (f *fakeEventTypeRepo) Create(ctx context.Context, et eventtype.EventType) (eventtype.EventType, error) {
	return et, nil
}
func (f *fakeEventTypeRepo) GetByID(ctx context.Context, id string) (eventtype.EventType, error) {
	et, ok := f.types[id]
	if !ok {
		return eventtype.EventType{}, eventtype.ErrEventTypeNotFound
	}
	return et, nil
}
func (f *fakeEventTypeRepo) Update(ctx context.Context, et eventtype.EventType) error { return nil }
func (f *fakeEventTypeRepo) Delete(ctx context.Context, id string) error              { return nil }
func (f *fakeEventTypeRepo) ListVisible(ctx context.Context, campaignID *string) ([]eventtype.EventType, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) ListByCampaigns(ctx context.Context, campaignIDs []string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ListTeamLeaders(ctx context.Context, campaignID string) ([]user.User, error) {
	return nil, nil
}

type fakeCampaignRepo struct {
	campaigns map[string]campaign.Campaign
}

func (f *fakeCampaignRepo) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	return c, nil
}
func (f *fakeCampaignRepo) GetByID(ctx context.Context, id string) (campaign.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return campaign.Campaign{}, campaign.ErrCampaignNotFound
	}
	return c, nil
}
func (f *fakeCampaignRepo) Update(ctx context.Context, c campaign.Campaign) error { return nil }
func (f *fakeCampaignRepo) Delete(ctx context.Context, id string) error           { return nil }
func (f *fakeCampaignRepo) List(ctx context.Context) ([]campaign.Campaign, error) { return nil, nil }
func (f *fakeCampaignRepo) ListScheduled(ctx context.Context) ([]campaign.Campaign, error) {
	return nil, nil
}

func ptr(s string) *string { return &s }

func newClockFixture() (*Service, *fakeTimeEventRepo) {
	events := &fakeTimeEventRepo{}
	types := &fakeEventTypeRepo{types: map[string]eventtype.EventType{
		"work-start": {ID: "work-start", Name: "Work Start", Category: eventtype.CategoryWork},
		"tea-break":  {ID: "tea-break", Name: "Tea Break Start", Category: eventtype.CategoryBreak, IsBreak: true},
		"scoped":     {ID: "scoped", Name: "Campaign Briefing", Category: eventtype.CategoryOther, CampaignID: ptr("other")},
	}}
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", FullName: "Ada", CampaignID: ptr("c1")},
	}}
	campaigns := &fakeCampaignRepo{campaigns: map[string]campaign.Campaign{
		"c1": {ID: "c1", Name: "Sales", WorkDayStart: ptr("09:00"), Timezone: "UTC"},
	}}

	svc := NewService(events, types, users, campaigns)
	return svc, events
}

func TestClock_StoresLateMinutesOnLateWorkStart(t *testing.T) {
	t.Parallel()

	svc, events := newClockFixture()
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 17, 0, 0, time.UTC)
	}

	created, err := svc.Clock(context.Background(), timeevent.ClockRequest{
		UserID: "u1", EventTypeID: "work-start",
	})
	require.NoError(t, err)

	require.NotNil(t, created.LateMinutes)
	assert.Equal(t, 17, *created.LateMinutes)
	assert.Equal(t, "web", events.created[0].Source)
	assert.Equal(t, "c1", *created.CampaignID)
}

func TestClock_OnTimeWorkStartStoresZero(t *testing.T) {
	t.Parallel()

	svc, _ := newClockFixture()
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 8, 50, 0, 0, time.UTC)
	}

	created, err := svc.Clock(context.Background(), timeevent.ClockRequest{
		UserID: "u1", EventTypeID: "work-start",
	})
	require.NoError(t, err)

	require.NotNil(t, created.LateMinutes)
	assert.Equal(t, 0, *created.LateMinutes)
}

func TestClock_NonWorkStartHasNoLateMinutes(t *testing.T) {
	t.Parallel()

	svc, _ := newClockFixture()
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	}

	created, err := svc.Clock(context.Background(), timeevent.ClockRequest{
		UserID: "u1", EventTypeID: "tea-break",
	})
	require.NoError(t, err)
	assert.Nil(t, created.LateMinutes)
}

func TestClock_RejectsForeignCampaignEventType(t *testing.T) {
	t.Parallel()

	svc, _ := newClockFixture()
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	}

	_, err := svc.Clock(context.Background(), timeevent.ClockRequest{
		UserID: "u1", EventTypeID: "scoped",
	})
	assert.ErrorIs(t, err, timeevent.ErrUnknownEventType)
}
