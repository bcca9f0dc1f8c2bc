package entity

// ConfidenceBand buckets a 0-100 confidence score into four levels.
type ConfidenceBand string

const (
	BandLow      ConfidenceBand = "LOW"
	BandMedium   ConfidenceBand = "MEDIUM"
	BandHigh     ConfidenceBand = "HIGH"
	BandVeryHigh ConfidenceBand = "VERY_HIGH"
)

// Canonical bot names. ManualReview is the sentinel for "no automation".
const (
	BotCancelGWSS   = "CancelGWSSCases"
	BotMendixRMS    = "RMS_India_Mendix"
	BotManualReview = "ManualReview"
)

// TicketRecord is one raw row as returned by the classification service.
// Optional upstream fields are pointers; nil means the field was absent and
// a default must be applied during derivation.
type TicketRecord struct {
	TicketId          *string
	PredictedCategory string
	Reasoning         string
	Bot               *string
	Confidence        *int
}

// ReviewedTicket is a TicketRecord after derivation: every field resolved,
// band computed, bot canonicalized. This is what the dashboard renders and
// what the KPI aggregator consumes.
type ReviewedTicket struct {
	TicketId          string
	PredictedCategory string
	Reasoning         string
	Bot               string
	Confidence        int
	ConfidenceBand    ConfidenceBand
}

// RequiresManualReview reports whether no automation bot applies to this row.
func (t *ReviewedTicket) RequiresManualReview() bool {
	return t.Bot == BotManualReview
}
