package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/notification"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
)

// TransactionManager runs fn inside one storage transaction; repository
// calls made with the ctx passed to fn join it.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	txm              TransactionManager
	leaveTypeRepo    leave.LeaveTypeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	leaveBalanceRepo leave.LeaveBalanceRepository
	userRepo         user.UserRepository
	campaignRepo     campaign.CampaignRepository
	sender           notification.Sender

	now func() time.Time
}

func NewService(
	txm TransactionManager,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	userRepo user.UserRepository,
	campaignRepo campaign.CampaignRepository,
	sender notification.Sender,
) *Service {
	return &Service{
		txm:              txm,
		leaveTypeRepo:    leaveTypeRepo,
		leaveRequestRepo: leaveRequestRepo,
		leaveBalanceRepo: leaveBalanceRepo,
		userRepo:         userRepo,
		campaignRepo:     campaignRepo,
		sender:           sender,
		now:              time.Now,
	}
}

// DayCount computes the day quantity of a request: inclusive calendar
// days for full-day requests, 0.5 for a single-day half-day request.
func DayCount(start, end time.Time, duration leave.DurationType) decimal.Decimal {
	if duration == leave.DurationHalfDay {
		return decimal.NewFromFloat(0.5)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(int64(days))
}

// CreateRequest validates and stores a new PENDING request, reserving
// the day count against the user's balance when one exists.
func (s *Service) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	duration := leave.DurationType(req.DurationType)

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	if duration == leave.DurationHalfDay {
		if !leaveType.AllowHalfDay {
			return leave.LeaveRequest{}, leave.ErrHalfDayNotAllowed
		}
		if !start.Equal(end) {
			return leave.LeaveRequest{}, leave.ErrHalfDayNotAllowed
		}
	}
	if duration == leave.DurationFullDay && !leaveType.AllowFullDay {
		return leave.LeaveRequest{}, leave.ErrFullDayNotAllowed
	}

	requester, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get requester: %w", err)
	}

	hasOverlap, err := s.leaveRequestRepo.CheckOverlapping(ctx, req.UserID, start, end)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if hasOverlap {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeave
	}

	days := DayCount(start, end, duration)

	request := leave.LeaveRequest{
		UserID:       req.UserID,
		CampaignID:   requester.CampaignID,
		LeaveTypeID:  req.LeaveTypeID,
		StartDate:    start,
		EndDate:      end,
		DurationType: duration,
		Days:         days,
		Reason:       req.Reason,
		Status:       leave.LeaveRequestStatusPending,
	}

	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reserveDays(ctx, req.UserID, req.LeaveTypeID, start.Year(), days); err != nil {
			return err
		}
		request, err = s.leaveRequestRepo.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	go s.notifyCreated(context.WithoutCancel(ctx), requester, leaveType, request)

	return request, nil
}

// Approve moves a PENDING request to APPROVED and shifts its day count
// from pending to used within one transaction.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (leave.LeaveRequest, error) {
	return s.decide(ctx, requestID, approverID, leave.LeaveRequestStatusApproved)
}

// Reject moves a PENDING request to REJECTED and releases its pending
// day count.
func (s *Service) Reject(ctx context.Context, requestID, approverID string) (leave.LeaveRequest, error) {
	return s.decide(ctx, requestID, approverID, leave.LeaveRequestStatusRejected)
}

// Cancel lets the requester withdraw their own PENDING request.
func (s *Service) Cancel(ctx context.Context, requestID, userID string) (leave.LeaveRequest, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if request.UserID != userID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessed
	}

	request.Status = leave.LeaveRequestStatusCanceled

	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.releaseDays(ctx, request, false); err != nil {
			return err
		}
		if err := s.leaveRequestRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (s *Service) decide(ctx context.Context, requestID, approverID string, status leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessed
	}

	decidedAt := s.now()
	request.Status = status
	request.ApprovedBy = &approverID
	request.ApprovedAt = &decidedAt

	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		consume := status == leave.LeaveRequestStatusApproved
		if err := s.releaseDays(ctx, request, consume); err != nil {
			return err
		}
		if err := s.leaveRequestRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	go s.notifyDecided(context.WithoutCancel(ctx), request)

	return request, nil
}

// reserveDays adds days to the pending column of the matching balance
// row. Users without a balance row for the leave type are not capped.
func (s *Service) reserveDays(ctx context.Context, userID, leaveTypeID string, year int, days decimal.Decimal) error {
	balance, err := s.leaveBalanceRepo.GetForUpdate(ctx, userID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveBalanceNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get leave balance: %w", err)
	}

	available := balance.RemainingDays().Sub(balance.PendingDays)
	if days.GreaterThan(available) {
		return leave.ErrInsufficientBalance
	}

	balance.PendingDays = balance.PendingDays.Add(days)
	if err := s.leaveBalanceRepo.Update(ctx, balance); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	return nil
}

// releaseDays removes the request's day count from pending, moving it
// to used when consume is set.
func (s *Service) releaseDays(ctx context.Context, request leave.LeaveRequest, consume bool) error {
	balance, err := s.leaveBalanceRepo.GetForUpdate(ctx, request.UserID, request.LeaveTypeID, request.StartDate.Year())
	if err != nil {
		if errors.Is(err, leave.ErrLeaveBalanceNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get leave balance: %w", err)
	}

	balance.PendingDays = balance.PendingDays.Sub(request.Days)
	if balance.PendingDays.IsNegative() {
		balance.PendingDays = decimal.Zero
	}
	if consume {
		balance.UsedDays = balance.UsedDays.Add(request.Days)
	}
	if err := s.leaveBalanceRepo.Update(ctx, balance); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	return nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	requests, err := s.leaveRequestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

func (s *Service) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	requests, err := s.leaveRequestRepo.ListByStatus(ctx, leave.LeaveRequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return requests, nil
}

// SetBalance creates or replaces the entitlement row for one
// (user, leave type, year) triple.
func (s *Service) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalance{}, err
	}

	entitled, err := decimal.NewFromString(req.EntitledDays)
	if err != nil || entitled.IsNegative() {
		return leave.LeaveBalance{}, fmt.Errorf("invalid entitled_days %q", req.EntitledDays)
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to get user: %w", err)
	}
	if _, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	balance, err := s.leaveBalanceRepo.Upsert(ctx, leave.LeaveBalance{
		UserID:       req.UserID,
		LeaveTypeID:  req.LeaveTypeID,
		Year:         req.Year,
		EntitledDays: entitled,
	})
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}
	return balance, nil
}

func (s *Service) ListBalances(ctx context.Context, userID string, year int) ([]leave.LeaveBalance, error) {
	balances, err := s.leaveBalanceRepo.ListByUser(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	return balances, nil
}

// notifyCreated mails the campaign's leave approver and confirms
// receipt to the requester. Failures are logged and swallowed.
func (s *Service) notifyCreated(ctx context.Context, requester user.User, leaveType leave.LeaveType, request leave.LeaveRequest) {
	data := map[string]string{
		"AgentName": requester.FullName,
		"LeaveType": leaveType.Name,
		"StartDate": request.StartDate.Format("2006-01-02"),
		"EndDate":   request.EndDate.Format("2006-01-02"),
		"Days":      request.Days.StringFixed(1),
		"Reason":    request.Reason,
	}

	if requester.CampaignID != nil {
		c, err := s.campaignRepo.GetByID(ctx, *requester.CampaignID)
		if err != nil {
			slog.Error("Failed to resolve campaign for leave notification",
				"campaign_id", *requester.CampaignID, "error", err)
		} else if c.LeaveApproverEmail != nil && *c.LeaveApproverEmail != "" {
			s.sender.Send(ctx, notification.KindLeaveRequestNotify, notification.Payload{
				To:      []string{*c.LeaveApproverEmail},
				Subject: fmt.Sprintf("Leave request from %s", requester.FullName),
				Data:    data,
			})
		}
	}

	s.sender.Send(ctx, notification.KindLeaveRequestConfirm, notification.Payload{
		To:      []string{requester.Email},
		Subject: "Your leave request was submitted",
		Data:    data,
	})
}

func (s *Service) notifyDecided(ctx context.Context, request leave.LeaveRequest) {
	requester, err := s.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		slog.Error("Failed to resolve requester for leave notification",
			"user_id", request.UserID, "error", err)
		return
	}

	s.sender.Send(ctx, notification.KindLeaveRequestConfirm, notification.Payload{
		To:      []string{requester.Email},
		Subject: fmt.Sprintf("Your leave request was %s", request.Status),
		Data: map[string]string{
			"AgentName": requester.FullName,
			"StartDate": request.StartDate.Format("2006-01-02"),
			"EndDate":   request.EndDate.Format("2006-01-02"),
			"Days":      request.Days.StringFixed(1),
			"Status":    string(request.Status),
		},
	})
}
