package triage

import "ticket-intel-be/internal/entity"

// HighConfidenceThreshold marks rows the executive KPI counts as "high".
const HighConfidenceThreshold = 90

// BatchStats are the executive KPIs over one derived batch.
type BatchStats struct {
	Total             int `json:"total"`
	HighConfidence    int `json:"high_confidence"`
	AutomationPercent int `json:"automation_percent"`
	ManualReviewCount int `json:"manual_review_count"`
}

// Aggregate computes batch KPIs. Precondition: rows must be non-empty; the
// automation percentage is undefined on an empty batch, so callers guard
// before aggregating.
func Aggregate(rows []entity.ReviewedTicket) BatchStats {
	stats := BatchStats{Total: len(rows)}

	automated := 0
	for i := range rows {
		if rows[i].Confidence >= HighConfidenceThreshold {
			stats.HighConfidence++
		}
		if rows[i].RequiresManualReview() {
			stats.ManualReviewCount++
		} else {
			automated++
		}
	}

	stats.AutomationPercent = automated * 100 / stats.Total
	return stats
}

// Distributions feed the dashboard charts: how many rows landed on each bot
// and in each confidence band, plus the per-row confidence series in batch
// order for the trend line.
type Distributions struct {
	ByBot      map[string]int                `json:"by_bot"`
	ByBand     map[entity.ConfidenceBand]int `json:"by_band"`
	Confidence []ConfidencePoint             `json:"confidence_series"`
}

// ConfidencePoint is one sample of the confidence trend line.
type ConfidencePoint struct {
	Index      int    `json:"index"`
	Confidence int    `json:"confidence"`
	Bot        string `json:"bot"`
}

// Distribute computes chart distributions for a derived batch.
func Distribute(rows []entity.ReviewedTicket) Distributions {
	dist := Distributions{
		ByBot:      make(map[string]int),
		ByBand:     make(map[entity.ConfidenceBand]int),
		Confidence: make([]ConfidencePoint, len(rows)),
	}

	for i := range rows {
		dist.ByBot[rows[i].Bot]++
		dist.ByBand[rows[i].ConfidenceBand]++
		dist.Confidence[i] = ConfidencePoint{
			Index:      i,
			Confidence: rows[i].Confidence,
			Bot:        rows[i].Bot,
		}
	}

	return dist
}
