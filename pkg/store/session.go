package store

import "ticket-intel-be/internal/entity"

// ReviewSession is the per-reviewer in-memory state: one job handle, the
// upload flag and at most one derived batch. A classify run overwrites Rows
// wholesale; no history is kept. Nothing here survives session eviction.
type ReviewSession struct {
	ID       string                  `json:"id"`
	JobID    string                  `json:"job_id"`
	Uploaded bool                    `json:"uploaded"`
	Rows     []entity.ReviewedTicket `json:"rows"`
}

func NewReviewSession(id string) *ReviewSession {
	return &ReviewSession{ID: id}
}

// HasResults reports whether a classify run produced a batch this session.
func (s *ReviewSession) HasResults() bool {
	return len(s.Rows) > 0
}
