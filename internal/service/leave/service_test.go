package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/notification"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
)

type fakeTxm struct{}

func (fakeTxm) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	f.types[lt.ID] = lt
	return lt, nil
}
func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}
func (f *fakeLeaveTypeRepo) Update(ctx context.Context, lt leave.LeaveType) error { return nil }
func (f *fakeLeaveTypeRepo) Delete(ctx context.Context, id string) error          { return nil }
func (f *fakeLeaveTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error)  { return nil, nil }

type fakeLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func (f *fakeLeaveRequestRepo) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	lr.ID = string(rune('0' + f.nextID))
	f.requests[lr.ID] = lr
	return lr, nil
}
func (f *fakeLeaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	lr, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, nil
}
func (f *fakeLeaveRequestRepo) Update(ctx context.Context, lr leave.LeaveRequest) error {
	f.requests[lr.ID] = lr
	return nil
}
func (f *fakeLeaveRequestRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, lr := range f.requests {
		if lr.UserID == userID {
			out = append(out, lr)
		}
	}
	return out, nil
}
func (f *fakeLeaveRequestRepo) ListByStatus(ctx context.Context, status leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, lr := range f.requests {
		if lr.Status == status {
			out = append(out, lr)
		}
	}
	return out, nil
}
func (f *fakeLeaveRequestRepo) CheckOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	for _, lr := range f.requests {
		if lr.UserID != userID {
			continue
		}
		if lr.Status != leave.LeaveRequestStatusPending && lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if !lr.StartDate.After(end) && !lr.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeLeaveRequestRepo) ListApprovedOverlapping(ctx context.Context, userIDs []string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return nil, nil
}

type balanceKey struct {
	userID, leaveTypeID string
	year                int
}

type fakeLeaveBalanceRepo struct {
	balances map[balanceKey]leave.LeaveBalance
}

func (f *fakeLeaveBalanceRepo) Upsert(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	f.balances[balanceKey{b.UserID, b.LeaveTypeID, b.Year}] = b
	return b, nil
}
func (f *fakeLeaveBalanceRepo) GetForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	return f.Get(ctx, userID, leaveTypeID, year)
}
func (f *fakeLeaveBalanceRepo) Get(ctx context.Context, userID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	b, ok := f.balances[balanceKey{userID, leaveTypeID, year}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	return b, nil
}
func (f *fakeLeaveBalanceRepo) Update(ctx context.Context, b leave.LeaveBalance) error {
	f.balances[balanceKey{b.UserID, b.LeaveTypeID, b.Year}] = b
	return nil
}
func (f *fakeLeaveBalanceRepo) ListByUser(ctx context.Context, userID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for key, b := range f.balances {
		if key.userID == userID && key.year == year {
			out = append(out, b)
		}
	}
	return out, nil
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

// syncSender records sends under a lock; notifications fire from
// goroutines.
type syncSender struct {
	mu   sync.Mutex
	sent []notification.Kind
}

func (s *syncSender) Send(ctx context.Context, kind notification.Kind, payload notification.Payload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, kind)
	return true
}

type leaveFixture struct {
	svc      *Service
	types    *fakeLeaveTypeRepo
	requests *fakeLeaveRequestRepo
	balances *fakeLeaveBalanceRepo
	users    *fakeUserRepo
}

func newLeaveFixture() *leaveFixture {
	types := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"annual": {ID: "annual", Name: "Annual Leave", IsPaid: true, AllowFullDay: true, AllowHalfDay: true},
		"sick":   {ID: "sick", Name: "Sick Leave", IsPaid: true, AllowFullDay: true},
	}}
	requests := &fakeLeaveRequestRepo{requests: make(map[string]leave.LeaveRequest)}
	balances := &fakeLeaveBalanceRepo{balances: make(map[balanceKey]leave.LeaveBalance)}
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Email: "ada@example.com", FullName: "Ada"},
	}}
	campaigns := &fakeCampaignRepo{campaigns: make(map[string]campaign.Campaign)}

	svc := NewService(fakeTxm{}, types, requests, balances, users, campaigns, &syncSender{})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	return &leaveFixture{svc: svc, types: types, requests: requests, balances: balances, users: users}
}

func (f *leaveFixture) setBalance(userID, typeID string, entitled, used, pending string) {
	e, _ := decimal.NewFromString(entitled)
	u, _ := decimal.NewFromString(used)
	p, _ := decimal.NewFromString(pending)
	f.balances.balances[balanceKey{userID, typeID, 2026}] = leave.LeaveBalance{
		UserID: userID, LeaveTypeID: typeID, Year: 2026,
		EntitledDays: e, UsedDays: u, PendingDays: p,
	}
}

func TestDayCount(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	assert.True(t, DayCount(day(2), day(2), leave.DurationFullDay).Equal(decimal.NewFromInt(1)))
	assert.True(t, DayCount(day(2), day(6), leave.DurationFullDay).Equal(decimal.NewFromInt(5)))
	assert.True(t, DayCount(day(2), day(2), leave.DurationHalfDay).Equal(decimal.NewFromFloat(0.5)))
}

func TestCreateRequest_ReservesPendingDays(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()
	f.setBalance("u1", "annual", "15.0", "0.0", "0.0")

	created, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-04",
		DurationType: "full_day", Reason: "family visit",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.True(t, created.Days.Equal(decimal.NewFromInt(3)))

	balance, err := f.balances.Get(context.Background(), "u1", "annual", 2026)
	require.NoError(t, err)
	assert.True(t, balance.PendingDays.Equal(decimal.NewFromInt(3)))
	assert.True(t, balance.UsedDays.IsZero())
}

func TestCreateRequest_InsufficientBalance(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()
	f.setBalance("u1", "annual", "15.0", "12.0", "2.0")

	// 15 entitled - 12 used - 2 pending leaves 1 available day.
	_, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-03",
		DurationType: "full_day",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Empty(t, f.requests.requests)
}

func TestCreateRequest_NoBalanceRowIsUncapped(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "sick",
		StartDate: "2026-03-02", EndDate: "2026-03-10",
		DurationType: "full_day",
	})
	assert.NoError(t, err)
}

func TestCreateRequest_RejectsOverlap(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()
	f.setBalance("u1", "annual", "15.0", "0.0", "0.0")

	first := leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-04",
		DurationType: "full_day",
	}
	_, err := f.svc.CreateRequest(context.Background(), first)
	require.NoError(t, err)

	second := leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-04", EndDate: "2026-03-06",
		DurationType: "full_day",
	}
	_, err = f.svc.CreateRequest(context.Background(), second)
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestCreateRequest_HalfDayRules(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()
	f.setBalance("u1", "annual", "15.0", "0.0", "0.0")

	// Half-day across multiple days is invalid.
	_, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-03",
		DurationType: "half_day",
	})
	assert.ErrorIs(t, err, leave.ErrHalfDayNotAllowed)

	// Sick leave does not allow half days at all.
	_, err = f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "sick",
		StartDate: "2026-03-02", EndDate: "2026-03-02",
		DurationType: "half_day",
	})
	assert.ErrorIs(t, err, leave.ErrHalfDayNotAllowed)

	// Single-day half-day on annual leave reserves 0.5.
	created, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-02",
		DurationType: "half_day",
	})
	require.NoError(t, err)
	assert.Equal(t, "0.5", created.Days.StringFixed(1))
}

func TestApprove_MovesPendingToUsed(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()
	f.setBalance("u1", "annual", "15.0", "0.0", "0.0")

	created, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-04",
		DurationType: "full_day",
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(context.Background(), created.ID, "mgr1")
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "mgr1", *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	balance, _ := f.balances.Get(context.Background(), "u1", "annual", 2026)
	assert.True(t, balance.PendingDays.IsZero())
	assert.True(t, balance.UsedDays.Equal(decimal.NewFromInt(3)))

	// A second decision on the same request is rejected.
	_, err = f.svc.Approve(context.Background(), created.ID, "mgr1")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	_, err = f.svc.Reject(context.Background(), created.ID, "mgr1")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestReject_ReleasesPendingDays(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()
	f.setBalance("u1", "annual", "15.0", "0.0", "0.0")

	created, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-04",
		DurationType: "full_day",
	})
	require.NoError(t, err)

	rejected, err := f.svc.Reject(context.Background(), created.ID, "mgr1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)

	balance, _ := f.balances.Get(context.Background(), "u1", "annual", 2026)
	assert.True(t, balance.PendingDays.IsZero())
	assert.True(t, balance.UsedDays.IsZero())
}

func TestCancel_OnlyOwnerAndOnlyPending(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()
	f.setBalance("u1", "annual", "15.0", "0.0", "0.0")

	created, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		UserID: "u1", LeaveTypeID: "annual",
		StartDate: "2026-03-02", EndDate: "2026-03-02",
		DurationType: "full_day",
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), created.ID, "someone-else")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	canceled, err := f.svc.Cancel(context.Background(), created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusCanceled, canceled.Status)

	balance, _ := f.balances.Get(context.Background(), "u1", "annual", 2026)
	assert.True(t, balance.PendingDays.IsZero())

	_, err = f.svc.Cancel(context.Background(), created.ID, "u1")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestSetBalance_RejectsNegativeEntitlement(t *testing.T) {
	t.Parallel()

	f := newLeaveFixture()

	_, err := f.svc.SetBalance(context.Background(), leave.SetBalanceRequest{
		UserID: "u1", LeaveTypeID: "annual", Year: 2026, EntitledDays: "-1.0",
	})
	assert.Error(t, err)

	balance, err := f.svc.SetBalance(context.Background(), leave.SetBalanceRequest{
		UserID: "u1", LeaveTypeID: "annual", Year: 2026, EntitledDays: "15.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "15.0", balance.EntitledDays.StringFixed(1))
}
