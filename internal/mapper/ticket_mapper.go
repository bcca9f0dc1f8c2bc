package mapper

import (
	"ticket-intel-be/internal/dto"
	"ticket-intel-be/internal/entity"
	"ticket-intel-be/internal/triage"
	"ticket-intel-be/pkg/gateway"
)

type TicketMapper struct{}

func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

// ToRecord lifts one raw classify payload row into the typed boundary.
// Absent upstream fields stay nil here; defaults are applied by the
// derivation step, not by the mapper.
func (m *TicketMapper) ToRecord(r gateway.RawTicket) entity.TicketRecord {
	rec := entity.TicketRecord{
		PredictedCategory: r.PredictedCategory,
		Reasoning:         r.Reasoning,
		TicketId:          r.TicketId,
		Bot:               r.Bot,
	}
	if r.Confidence != nil {
		c := int(*r.Confidence)
		rec.Confidence = &c
	}
	return rec
}

func (m *TicketMapper) ToRecords(raw []gateway.RawTicket) []entity.TicketRecord {
	records := make([]entity.TicketRecord, len(raw))
	for i, r := range raw {
		records[i] = m.ToRecord(r)
	}
	return records
}

func (m *TicketMapper) ToRowDTO(t *entity.ReviewedTicket) dto.ReviewedTicketDTO {
	return dto.ReviewedTicketDTO{
		TicketId:          t.TicketId,
		PredictedCategory: t.PredictedCategory,
		Reasoning:         t.Reasoning,
		Bot:               t.Bot,
		Confidence:        t.Confidence,
		ConfidenceBand:    t.ConfidenceBand,
	}
}

func (m *TicketMapper) ToRowDTOs(rows []entity.ReviewedTicket) []dto.ReviewedTicketDTO {
	dtos := make([]dto.ReviewedTicketDTO, len(rows))
	for i := range rows {
		dtos[i] = m.ToRowDTO(&rows[i])
	}
	return dtos
}

func (m *TicketMapper) ToStatsDTO(s triage.BatchStats) *dto.BatchStatsDTO {
	return &dto.BatchStatsDTO{
		Total:             s.Total,
		HighConfidence:    s.HighConfidence,
		AutomationPercent: s.AutomationPercent,
		ManualReviewCount: s.ManualReviewCount,
	}
}

func (m *TicketMapper) ToDistributionsDTO(d triage.Distributions) *dto.BatchDistributionsDTO {
	byBand := make(map[string]int, len(d.ByBand))
	for band, n := range d.ByBand {
		byBand[string(band)] = n
	}

	series := make([]dto.ConfidencePointDTO, len(d.Confidence))
	for i, p := range d.Confidence {
		series[i] = dto.ConfidencePointDTO{Index: p.Index, Confidence: p.Confidence, Bot: p.Bot}
	}

	return &dto.BatchDistributionsDTO{
		ByBot:      d.ByBot,
		ByBand:     byBand,
		Confidence: series,
	}
}
