package notification

import "context"

// Kind identifies a notification template.
type Kind string

const (
	KindLeaveRequestNotify   Kind = "leave-request-notify"
	KindLeaveRequestConfirm  Kind = "leave-request-confirm"
	KindCampaignAssignment   Kind = "campaign-assignment"
	KindLateArrival          Kind = "late-arrival"
	KindLateArrivalEscalated Kind = "late-arrival-escalated"
	KindTeamAssignment       Kind = "team-assignment"
	KindTeamLeaderPromotion  Kind = "team-leader-promotion"
)

// Payload carries the recipient list and template data for one send.
type Payload struct {
	To      []string
	Subject string
	Data    map[string]string
}

// Sender delivers a notification. Implementations never panic or return
// an error to the caller: internal failures are logged and reported as
// false. Sends are best effort; callers must not block primary state
// changes on the result.
type Sender interface {
	Send(ctx context.Context, kind Kind, payload Payload) bool
}
