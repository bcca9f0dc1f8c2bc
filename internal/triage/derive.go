package triage

import (
	"fmt"
	"strings"

	"ticket-intel-be/internal/entity"
)

// Defaults applied when the classification service omits optional fields.
const (
	DefaultConfidence = 80
	ticketIdPrefix    = "TKT-"
)

// botAliases maps the raw names some upstream engines emit to the canonical
// queue names the downstream automation expects.
var botAliases = map[string]string{
	"Pega Bot":   entity.BotCancelGWSS,
	"Mendix Bot": entity.BotMendixRMS,
}

// BandFor buckets a confidence score. Total over all ints: anything below 70
// is LOW, anything at or above 95 is VERY_HIGH, so out-of-range scores still
// band deterministically.
func BandFor(confidence int) entity.ConfidenceBand {
	switch {
	case confidence < 70:
		return entity.BandLow
	case confidence < 85:
		return entity.BandMedium
	case confidence < 95:
		return entity.BandHigh
	default:
		return entity.BandVeryHigh
	}
}

// CanonicalBot rewrites known raw aliases to their canonical names and passes
// everything else through unchanged. Idempotent: canonical names are never
// alias keys.
func CanonicalBot(bot string) string {
	if canonical, ok := botAliases[bot]; ok {
		return canonical
	}
	return bot
}

// DeriveBatch turns raw classification output into reviewable rows. Pure and
// deterministic; output has the same length and order as the input. Missing
// optionals resolve to: confidence 80, bot ManualReview, ticket id "TKT-<n>"
// by 1-based position.
func DeriveBatch(records []entity.TicketRecord) []entity.ReviewedTicket {
	rows := make([]entity.ReviewedTicket, len(records))

	for i, rec := range records {
		confidence := DefaultConfidence
		if rec.Confidence != nil {
			confidence = *rec.Confidence
		}

		bot := entity.BotManualReview
		if rec.Bot != nil {
			bot = CanonicalBot(*rec.Bot)
		}

		ticketId := fmt.Sprintf("%s%d", ticketIdPrefix, i+1)
		if rec.TicketId != nil && *rec.TicketId != "" {
			ticketId = *rec.TicketId
		}

		rows[i] = entity.ReviewedTicket{
			TicketId:          ticketId,
			PredictedCategory: rec.PredictedCategory,
			Reasoning:         rec.Reasoning,
			Bot:               bot,
			Confidence:        confidence,
			ConfidenceBand:    BandFor(confidence),
		}
	}

	return rows
}

// SplitKeywords derives feedback keywords from a corrected category:
// whitespace-split, order preserved, no empty tokens.
func SplitKeywords(category string) []string {
	return strings.Fields(category)
}
