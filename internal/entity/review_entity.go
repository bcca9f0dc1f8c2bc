package entity

import "time"

// ReviewAction is the human decision taken on a classified ticket.
type ReviewAction string

const (
	ActionApprove ReviewAction = "APPROVE"
	ActionReject  ReviewAction = "REJECT"
)

// DefaultApprover is used when the front end does not pass a reviewer name.
const DefaultApprover = "HITL_User"

// ReviewDecision is emitted on the in-process event bus whenever a reviewer
// approves or rejects a prediction. Audit-only, never persisted.
type ReviewDecision struct {
	TicketId  string       `json:"ticket_id"`
	Action    ReviewAction `json:"action"`
	Bot       string       `json:"bot"`
	Category  string       `json:"category,omitempty"`
	DecidedBy string       `json:"decided_by"`
	DecidedAt time.Time    `json:"decided_at"`
}
