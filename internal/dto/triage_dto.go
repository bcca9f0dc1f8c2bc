package dto

import "ticket-intel-be/internal/entity"

// UploadTicketsResponse is returned after the spreadsheet is handed to the
// upload endpoint and a classification job is created for it.
type UploadTicketsResponse struct {
	JobId string `json:"job_id"`
}

// ReviewedTicketDTO is one derived row as rendered by the dashboard.
type ReviewedTicketDTO struct {
	TicketId          string                `json:"ticket_id"`
	PredictedCategory string                `json:"predicted_category"`
	Reasoning         string                `json:"reasoning"`
	Bot               string                `json:"bot"`
	Confidence        int                   `json:"confidence"`
	ConfidenceBand    entity.ConfidenceBand `json:"confidence_band"`
}

// ClassificationResultResponse carries the full review view: rows, KPIs and
// chart distributions. Empty batches never produce this response (the
// controller returns a warning instead), so Stats is always defined.
type ClassificationResultResponse struct {
	JobId         string                 `json:"job_id"`
	Rows          []ReviewedTicketDTO    `json:"rows"`
	Stats         *BatchStatsDTO         `json:"stats"`
	Distributions *BatchDistributionsDTO `json:"distributions"`
}

type BatchStatsDTO struct {
	Total             int `json:"total"`
	HighConfidence    int `json:"high_confidence"`
	AutomationPercent int `json:"automation_percent"`
	ManualReviewCount int `json:"manual_review_count"`
}

type BatchDistributionsDTO struct {
	ByBot      map[string]int       `json:"by_bot"`
	ByBand     map[string]int       `json:"by_band"`
	Confidence []ConfidencePointDTO `json:"confidence_series"`
}

type ConfidencePointDTO struct {
	Index      int    `json:"index"`
	Confidence int    `json:"confidence"`
	Bot        string `json:"bot"`
}

// ApproveTicketRequest triggers the automation bot for one reviewed ticket.
// ApprovedBy is optional; the service falls back to the default HITL user.
type ApproveTicketRequest struct {
	BotName    string `json:"bot_name" validate:"required"`
	ApprovedBy string `json:"approved_by,omitempty"`
}

// RejectTicketRequest submits a correction to the feedback endpoint. The
// keyword list sent upstream is derived from CorrectCategory, never supplied
// by the client.
type RejectTicketRequest struct {
	CorrectCategory string `json:"correct_category" validate:"required"`
	BotName         string `json:"bot_name" validate:"required"`
}
