package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shiftpoint/attendance-backend-go/internal/config"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/notification"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/settings"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
)

// trackKey identifies one user's lateness tracking for one local
// calendar day.
type trackKey struct {
	UserID string
	Date   string
}

type trackEntry struct {
	noticed bool
}

// LateArrivalJob watches every campaign with a configured work-day start
// and raises two alerts per late user: a team-lead notice once the user
// is 15 minutes late, and a one-time escalation at 30 minutes. The
// notice state lives in memory and may repeat after a restart; the
// escalation is deduplicated through the persisted settings record and
// must never repeat for the same user and date.
type LateArrivalJob struct {
	cfg           config.MonitorConfig
	campaignRepo  campaign.CampaignRepository
	userRepo      user.UserRepository
	timeEventRepo timeevent.TimeEventRepository
	settingsRepo  settings.SettingsRepository
	sender        notification.Sender

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time

	mu      sync.Mutex
	tracked map[trackKey]*trackEntry
}

func NewLateArrivalJob(
	cfg config.MonitorConfig,
	campaignRepo campaign.CampaignRepository,
	userRepo user.UserRepository,
	timeEventRepo timeevent.TimeEventRepository,
	settingsRepo settings.SettingsRepository,
	sender notification.Sender,
) *LateArrivalJob {
	return &LateArrivalJob{
		cfg:           cfg,
		campaignRepo:  campaignRepo,
		userRepo:      userRepo,
		timeEventRepo: timeEventRepo,
		settingsRepo:  settingsRepo,
		sender:        sender,
		now:           time.Now,
		tracked:       make(map[trackKey]*trackEntry),
	}
}

func (j *LateArrivalJob) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"late_arrival_monitor",
		time.Duration(j.cfg.TickIntervalSeconds)*time.Second,
		j.Run,
	)
}

// Run evaluates every scheduled campaign once. Errors inside one
// campaign or one user are logged and never abort the remaining
// iterations; only failures that would break the escalation dedup
// guarantee abort the tick.
func (j *LateArrivalJob) Run(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()

	campaigns, err := j.campaignRepo.ListScheduled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list scheduled campaigns: %w", err)
	}
	if len(campaigns) == 0 {
		return nil
	}

	// Without the dedup record an escalation could repeat, so a read
	// failure aborts the whole tick.
	raw, err := j.settingsRepo.Get(ctx, settings.KeyLateEscalations)
	if err != nil {
		return fmt.Errorf("failed to load escalation record: %w", err)
	}
	escalations, err := settings.ParseEscalationLog(raw)
	if err != nil {
		return fmt.Errorf("failed to parse escalation record: %w", err)
	}

	dirty := false
	for _, c := range campaigns {
		if changed := j.evaluateCampaign(ctx, c, now, escalations); changed {
			dirty = true
		}
	}

	j.dropStaleEntries(now)

	if dirty {
		escalations.Prune(now, j.cfg.DedupRetentionDays)
		value, err := escalations.MarshalValue()
		if err != nil {
			return fmt.Errorf("failed to encode escalation record: %w", err)
		}
		if err := j.settingsRepo.Upsert(ctx, settings.KeyLateEscalations, value); err != nil {
			return fmt.Errorf("failed to persist escalation record: %w", err)
		}
	}

	return nil
}

// evaluateCampaign checks every member of one campaign and reports
// whether the escalation record changed.
func (j *LateArrivalJob) evaluateCampaign(ctx context.Context, c campaign.Campaign, now time.Time, escalations settings.EscalationLog) bool {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		loc = time.UTC
	}

	workStart, ok := c.WorkStartToday(now, loc)
	if !ok {
		return false
	}

	lateMinutes := int(now.Sub(workStart).Minutes())
	if lateMinutes < j.cfg.NoticeAfterMinutes {
		return false
	}

	members, err := j.userRepo.ListByCampaigns(ctx, []string{c.ID})
	if err != nil {
		slog.Error("Cron: Failed to list campaign members",
			"campaign_id", c.ID, "error", err)
		return false
	}

	localNow := now.In(loc)
	date := localNow.Format("2006-01-02")
	dayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	changed := false
	for _, member := range members {
		if j.evaluateUser(ctx, c, member, date, dayStart, dayEnd, lateMinutes, escalations) {
			changed = true
		}
	}
	return changed
}

func (j *LateArrivalJob) evaluateUser(
	ctx context.Context,
	c campaign.Campaign,
	member user.User,
	date string,
	dayStart, dayEnd time.Time,
	lateMinutes int,
	escalations settings.EscalationLog,
) bool {
	key := trackKey{UserID: member.ID, Date: date}

	clockedIn, err := j.timeEventRepo.HasWorkStart(ctx, member.ID, dayStart, dayEnd)
	if err != nil {
		slog.Error("Cron: Failed to check clock-in",
			"user_id", member.ID, "campaign_id", c.ID, "error", err)
		return false
	}
	if clockedIn {
		delete(j.tracked, key)
		return false
	}

	entry := j.tracked[key]
	if entry == nil {
		entry = &trackEntry{}
		j.tracked[key] = entry
	}

	if !entry.noticed {
		j.sendNotice(ctx, c, member, date, lateMinutes)
		entry.noticed = true
	}

	if lateMinutes >= j.cfg.EscalateAfterMinutes && !escalations.Contains(date, member.ID) {
		j.sendEscalation(ctx, c, member, date, lateMinutes)
		// Recorded regardless of send outcome: at most one escalation
		// per user per day.
		escalations.Record(date, member.ID)
		return true
	}

	return false
}

// sendNotice mails the campaign's team leaders, resolved from the
// team-leader back-references of the campaign's members.
func (j *LateArrivalJob) sendNotice(ctx context.Context, c campaign.Campaign, member user.User, date string, lateMinutes int) {
	leaders, err := j.userRepo.ListTeamLeaders(ctx, c.ID)
	if err != nil {
		slog.Error("Cron: Failed to list team leaders",
			"campaign_id", c.ID, "error", err)
		return
	}

	var recipients []string
	for _, leader := range leaders {
		if leader.ID == member.ID {
			continue
		}
		recipients = append(recipients, leader.Email)
	}
	if len(recipients) == 0 {
		slog.Warn("Cron: No team leaders to notify",
			"campaign_id", c.ID, "user_id", member.ID)
		return
	}

	j.sender.Send(ctx, notification.KindLateArrival, notification.Payload{
		To:      recipients,
		Subject: fmt.Sprintf("Late arrival: %s", member.FullName),
		Data: map[string]string{
			"AgentName":   member.FullName,
			"Campaign":    c.Name,
			"Date":        date,
			"LateMinutes": fmt.Sprintf("%d", lateMinutes),
		},
	})
}

// sendEscalation mails the configured escalation address plus the
// campaign's managers and every admin, skipping whichever of those
// matches the escalation address.
func (j *LateArrivalJob) sendEscalation(ctx context.Context, c campaign.Campaign, member user.User, date string, lateMinutes int) {
	var escalationEmail string
	if c.EscalationEmail != nil {
		escalationEmail = strings.TrimSpace(*c.EscalationEmail)
	}

	seen := make(map[string]bool)
	var recipients []string
	add := func(email string) {
		email = strings.TrimSpace(email)
		if email == "" {
			return
		}
		lower := strings.ToLower(email)
		if seen[lower] {
			return
		}
		seen[lower] = true
		recipients = append(recipients, email)
	}

	add(escalationEmail)

	members, err := j.userRepo.ListByCampaigns(ctx, []string{c.ID})
	if err != nil {
		slog.Error("Cron: Failed to list campaign members for escalation",
			"campaign_id", c.ID, "error", err)
	} else {
		for _, m := range members {
			if m.Role == user.RoleManager && !strings.EqualFold(m.Email, escalationEmail) {
				add(m.Email)
			}
		}
	}

	admins, err := j.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		slog.Error("Cron: Failed to list admins for escalation", "error", err)
	} else {
		for _, a := range admins {
			if !strings.EqualFold(a.Email, escalationEmail) {
				add(a.Email)
			}
		}
	}

	if len(recipients) == 0 {
		slog.Warn("Cron: No escalation recipients",
			"campaign_id", c.ID, "user_id", member.ID)
		return
	}

	j.sender.Send(ctx, notification.KindLateArrivalEscalated, notification.Payload{
		To:      recipients,
		Subject: fmt.Sprintf("Escalated late arrival: %s", member.FullName),
		Data: map[string]string{
			"AgentName":   member.FullName,
			"Campaign":    c.Name,
			"Date":        date,
			"LateMinutes": fmt.Sprintf("%d", lateMinutes),
		},
	})
}

// dropStaleEntries removes tracking entries left over from earlier
// calendar days.
func (j *LateArrivalJob) dropStaleEntries(now time.Time) {
	cutoff := now.UTC().AddDate(0, 0, -1).Format("2006-01-02")
	for key := range j.tracked {
		if key.Date < cutoff {
			delete(j.tracked, key)
		}
	}
}
