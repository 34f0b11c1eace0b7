package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/report"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

// ===== in-memory fakes =====

type fakeCampaignRepo struct {
	campaigns []campaign.Campaign
	listCalls int
}

func (f *fakeCampaignRepo) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	f.campaigns = append(f.campaigns, c)
	return c, nil
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id string) (campaign.Campaign, error) {
	for _, c := range f.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return campaign.Campaign{}, campaign.ErrCampaignNotFound
}

func (f *fakeCampaignRepo) Update(ctx context.Context, c campaign.Campaign) error { return nil }
func (f *fakeCampaignRepo) Delete(ctx context.Context, id string) error           { return nil }

func (f *fakeCampaignRepo) List(ctx context.Context) ([]campaign.Campaign, error) {
	f.listCalls++
	return f.campaigns, nil
}

func (f *fakeCampaignRepo) ListScheduled(ctx context.Context) ([]campaign.Campaign, error) {
	var out []campaign.Campaign
	for _, c := range f.campaigns {
		if c.WorkDayStart != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users     []user.User
	listCalls int
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return f.users, nil }

func (f *fakeUserRepo) ListByCampaigns(ctx context.Context, campaignIDs []string) ([]user.User, error) {
	f.listCalls++
	var out []user.User
	for _, u := range f.users {
		if u.CampaignID == nil {
			continue
		}
		for _, id := range campaignIDs {
			if *u.CampaignID == id {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListTeamLeaders(ctx context.Context, campaignID string) ([]user.User, error) {
	return nil, nil
}

type fakeTimeEventRepo struct {
	events []timeevent.TimeEvent
}

func (f *fakeTimeEventRepo) Create(ctx context.Context, e timeevent.TimeEvent) (timeevent.TimeEvent, error) {
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeTimeEventRepo) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]timeevent.TimeEvent, error) {
	return f.ListForUsers(ctx, []string{userID}, from, to)
}

func (f *fakeTimeEventRepo) ListForUsers(ctx context.Context, userIDs []string, from, to time.Time) ([]timeevent.TimeEvent, error) {
	ids := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		ids[id] = true
	}
	var out []timeevent.TimeEvent
	for _, e := range f.events {
		if ids[e.UserID] && !e.OccurredAt.Before(from) && e.OccurredAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimeEventRepo) HasWorkStart(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	events, _ := f.ListForUser(ctx, userID, from, to)
	for _, e := range events {
		if e.EventTypeName == "Work Start" {
			return true, nil
		}
	}
	return false, nil
}

type fakeLeaveRequestRepo struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaveRequestRepo) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests = append(f.requests, lr)
	return lr, nil
}

func (f *fakeLeaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRequestRepo) Update(ctx context.Context, lr leave.LeaveRequest) error { return nil }

func (f *fakeLeaveRequestRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRequestRepo) ListByStatus(ctx context.Context, status leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRequestRepo) CheckOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRequestRepo) ListApprovedOverlapping(ctx context.Context, userIDs []string, from, to time.Time) ([]leave.LeaveRequest, error) {
	ids := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		ids[id] = true
	}
	var out []leave.LeaveRequest
	for _, lr := range f.requests {
		if ids[lr.UserID] && lr.Status == leave.LeaveRequestStatusApproved &&
			!lr.StartDate.After(to) && !lr.EndDate.Before(from) {
			out = append(out, lr)
		}
	}
	return out, nil
}

// ===== helpers =====

func strPtr(s string) *string { return &s }

func workStart(userID, ts string, lateMinutes *int) timeevent.TimeEvent {
	t, _ := time.Parse(time.RFC3339, ts)
	return timeevent.TimeEvent{
		UserID:        userID,
		EventTypeName: "Work Start",
		OccurredAt:    t,
		LateMinutes:   lateMinutes,
	}
}

func workEnd(userID, ts string) timeevent.TimeEvent {
	t, _ := time.Parse(time.RFC3339, ts)
	return timeevent.TimeEvent{
		UserID:        userID,
		EventTypeName: "Work End",
		OccurredAt:    t,
	}
}

func newTestService() (*Service, *fakeCampaignRepo, *fakeUserRepo, *fakeTimeEventRepo, *fakeLeaveRequestRepo) {
	campaignRepo := &fakeCampaignRepo{}
	userRepo := &fakeUserRepo{}
	eventRepo := &fakeTimeEventRepo{}
	leaveRepo := &fakeLeaveRequestRepo{}
	svc := NewService(campaignRepo, userRepo, eventRepo, leaveRepo)
	return svc, campaignRepo, userRepo, eventRepo, leaveRepo
}

// ===== tests =====

func TestGetDaily_InvalidDateFailsBeforeQuerying(t *testing.T) {
	t.Parallel()

	svc, campaignRepo, userRepo, _, _ := newTestService()

	_, err := svc.GetDaily(context.Background(), report.DailyReportRequest{Date: "bad-date"})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Zero(t, campaignRepo.listCalls)
	assert.Zero(t, userRepo.listCalls)
}

func TestGetDaily_EmptyCampaignsShortCircuits(t *testing.T) {
	t.Parallel()

	svc, _, userRepo, _, _ := newTestService()

	table, err := svc.GetDaily(context.Background(), report.DailyReportRequest{Date: "2026-03-02"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Agent Name", "Team Leader", "Campaign", "2026-03-02"}, table.Columns)
	assert.Empty(t, table.Rows)
	assert.Zero(t, userRepo.listCalls, "users must not be queried when no campaigns match")
}

func TestGetDaily_BuildsRows(t *testing.T) {
	t.Parallel()

	svc, campaignRepo, userRepo, eventRepo, leaveRepo := newTestService()
	campaignRepo.campaigns = []campaign.Campaign{{ID: "c1", Name: "Support"}}
	userRepo.users = []user.User{
		{ID: "u1", FullName: "Ada Lovelace", CampaignID: strPtr("c1"), TeamLeaderName: strPtr("Grace Hopper")},
		{ID: "u2", FullName: "Alan Turing", CampaignID: strPtr("c1")},
	}
	eventRepo.events = []timeevent.TimeEvent{
		workStart("u1", "2026-03-02T08:00:00Z", nil),
		workEnd("u1", "2026-03-02T16:00:00Z"),
	}
	typeName := "Annual Leave"
	start, _ := time.Parse("2006-01-02", "2026-03-02")
	leaveRepo.requests = []leave.LeaveRequest{{
		UserID:        "u2",
		Status:        leave.LeaveRequestStatusApproved,
		StartDate:     start,
		EndDate:       start,
		LeaveTypeName: &typeName,
	}}

	table, err := svc.GetDaily(context.Background(), report.DailyReportRequest{Date: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	ada := table.Rows[0]
	assert.Equal(t, "Ada Lovelace", ada.AgentName)
	assert.Equal(t, "Grace Hopper", ada.TeamLeader)
	assert.Equal(t, "Support", ada.Campaign)
	require.NotNil(t, ada.Days["2026-03-02"])
	assert.Equal(t, "Present", ada.Days["2026-03-02"].Status)
	assert.Equal(t, 480, ada.Days["2026-03-02"].WorkMinutes)
	assert.Equal(t, 8.0, ada.Days["2026-03-02"].WorkHours)

	alan := table.Rows[1]
	require.NotNil(t, alan.Days["2026-03-02"])
	assert.Equal(t, "Annual Leave", alan.Days["2026-03-02"].Status)
}

func TestGetDaily_Idempotent(t *testing.T) {
	t.Parallel()

	svc, campaignRepo, userRepo, eventRepo, _ := newTestService()
	campaignRepo.campaigns = []campaign.Campaign{{ID: "c1", Name: "Sales"}}
	userRepo.users = []user.User{{ID: "u1", FullName: "Ada", CampaignID: strPtr("c1")}}
	eventRepo.events = []timeevent.TimeEvent{
		workStart("u1", "2026-03-02T08:00:00Z", nil),
		workEnd("u1", "2026-03-02T12:00:00Z"),
	}

	req := report.DailyReportRequest{Date: "2026-03-02"}
	first, err := svc.GetDaily(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.GetDaily(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetRange_LateMinutesFromStoredEvent(t *testing.T) {
	t.Parallel()

	svc, campaignRepo, userRepo, eventRepo, _ := newTestService()
	campaignRepo.campaigns = []campaign.Campaign{{ID: "c1", Name: "Sales"}}
	userRepo.users = []user.User{{ID: "u1", FullName: "Ada", CampaignID: strPtr("c1")}}
	late := 17
	eventRepo.events = []timeevent.TimeEvent{
		workStart("u1", "2026-03-02T08:17:00Z", &late),
		workStart("u1", "2026-03-03T08:00:00Z", nil),
	}

	table, err := svc.GetRange(context.Background(), report.RangeReportRequest{
		From: "2026-03-02", To: "2026-03-03",
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	assert.Equal(t, 17, table.Rows[0].Days["2026-03-02"].LateMinutes)
	assert.Equal(t, 0, table.Rows[0].Days["2026-03-03"].LateMinutes)
}

func TestGetWeeklyTeam_NullsFutureDates(t *testing.T) {
	t.Parallel()

	svc, campaignRepo, userRepo, eventRepo, _ := newTestService()
	campaignRepo.campaigns = []campaign.Campaign{{ID: "c1", Name: "Sales"}}
	userRepo.users = []user.User{{ID: "u1", FullName: "Ada", CampaignID: strPtr("c1")}}
	eventRepo.events = []timeevent.TimeEvent{
		workStart("u1", "2026-03-02T08:00:00Z", nil),
		workEnd("u1", "2026-03-02T16:00:00Z"),
	}
	svc.now = func() time.Time {
		return time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	}

	table, err := svc.GetWeeklyTeam(context.Background(), report.RangeReportRequest{
		From: "2026-03-02", To: "2026-03-06",
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.NotNil(t, row.Days["2026-03-02"])
	assert.NotNil(t, row.Days["2026-03-03"])
	assert.Nil(t, row.Days["2026-03-04"])
	assert.Nil(t, row.Days["2026-03-05"])
	assert.Nil(t, row.Days["2026-03-06"])
	assert.Equal(t, 480, row.TotalWorkMinutes)
}

func TestGetTooWeekly_ComplementaryWeeks(t *testing.T) {
	t.Parallel()

	svc, campaignRepo, userRepo, eventRepo, _ := newTestService()
	campaignRepo.campaigns = []campaign.Campaign{{ID: "c1", Name: "Sales"}}
	userRepo.users = []user.User{
		{ID: "u1", FullName: "Ada", CampaignID: strPtr("c1")},
		{ID: "u2", FullName: "Alan", CampaignID: strPtr("c1")},
	}

	// u1 present every weekday of week one (Jan 5-9), absent week two;
	// u2 the inverse (present Jan 12-16).
	for day := 5; day <= 9; day++ {
		eventRepo.events = append(eventRepo.events,
			workStart("u1", time.Date(2026, 1, day, 9, 0, 0, 0, time.UTC).Format(time.RFC3339), nil))
	}
	for day := 12; day <= 16; day++ {
		eventRepo.events = append(eventRepo.events,
			workStart("u2", time.Date(2026, 1, day, 9, 0, 0, 0, time.UTC).Format(time.RFC3339), nil))
	}

	table, err := svc.GetTooWeekly(context.Background(), report.RangeReportRequest{
		From: "2026-01-05", To: "2026-01-18",
	})
	require.NoError(t, err)

	// Week-ending columns land exactly on the two bounding Sundays.
	assert.Equal(t, []string{"2026-01-11", "2026-01-18"}, table.Columns)

	byMetric := make(map[string]map[string]string)
	for _, row := range table.Rows {
		byMetric[row.Metric] = row.Values
	}

	assert.Equal(t, "5", byMetric["Present"]["2026-01-11"])
	assert.Equal(t, "5", byMetric["Present"]["2026-01-18"])

	// 5 present-days over 7 days x 2 users.
	assert.Equal(t, "35.71", byMetric["TOO %"]["2026-01-11"])
	assert.Equal(t, "35.71", byMetric["TOO %"]["2026-01-18"])
}

func TestGetTooWeekly_EmptyDenominatorYieldsZero(t *testing.T) {
	t.Parallel()

	svc, campaignRepo, _, _, _ := newTestService()
	campaignRepo.campaigns = []campaign.Campaign{{ID: "c1", Name: "Sales"}}

	table, err := svc.GetTooWeekly(context.Background(), report.RangeReportRequest{
		From: "2026-01-05", To: "2026-01-11",
	})
	require.NoError(t, err)

	for _, row := range table.Rows {
		switch row.Metric {
		case "FRL %", "AL %", "TOO %":
			assert.Equal(t, "0.00", row.Values["2026-01-11"], row.Metric)
		}
	}
}
