package triage

import (
	"testing"

	"ticket-intel-be/internal/entity"
)

func batchOf(bots []string, confidences []int) []entity.ReviewedTicket {
	rows := make([]entity.ReviewedTicket, len(bots))
	for i := range bots {
		rows[i] = entity.ReviewedTicket{
			TicketId:       "TKT-1",
			Bot:            bots[i],
			Confidence:     confidences[i],
			ConfidenceBand: BandFor(confidences[i]),
		}
	}
	return rows
}

func TestAggregate(t *testing.T) {
	// 10 rows, 3 manual: automation % must floor(100*7/10) = 70.
	bots := []string{
		entity.BotCancelGWSS, entity.BotCancelGWSS, entity.BotCancelGWSS,
		entity.BotMendixRMS, entity.BotMendixRMS, entity.BotMendixRMS, entity.BotMendixRMS,
		entity.BotManualReview, entity.BotManualReview, entity.BotManualReview,
	}
	confidences := []int{96, 92, 90, 89, 88, 75, 60, 91, 50, 80}

	stats := Aggregate(batchOf(bots, confidences))

	if stats.Total != 10 {
		t.Errorf("Total = %d, want 10", stats.Total)
	}
	if stats.HighConfidence != 4 {
		t.Errorf("HighConfidence = %d, want 4 (>= 90)", stats.HighConfidence)
	}
	if stats.AutomationPercent != 70 {
		t.Errorf("AutomationPercent = %d, want 70", stats.AutomationPercent)
	}
	if stats.ManualReviewCount != 3 {
		t.Errorf("ManualReviewCount = %d, want 3", stats.ManualReviewCount)
	}
}

func TestAggregateFloorsAutomationPercent(t *testing.T) {
	// 2 automated out of 3 -> 66.66..%, must floor to 66.
	bots := []string{entity.BotCancelGWSS, entity.BotMendixRMS, entity.BotManualReview}
	stats := Aggregate(batchOf(bots, []int{90, 90, 90}))

	if stats.AutomationPercent != 66 {
		t.Errorf("AutomationPercent = %d, want 66 (floored)", stats.AutomationPercent)
	}
}

func TestDistribute(t *testing.T) {
	bots := []string{entity.BotCancelGWSS, entity.BotCancelGWSS, entity.BotManualReview}
	confidences := []int{96, 72, 50}

	dist := Distribute(batchOf(bots, confidences))

	if dist.ByBot[entity.BotCancelGWSS] != 2 || dist.ByBot[entity.BotManualReview] != 1 {
		t.Errorf("ByBot = %v, want CancelGWSSCases:2 ManualReview:1", dist.ByBot)
	}
	if dist.ByBand[entity.BandVeryHigh] != 1 || dist.ByBand[entity.BandMedium] != 1 || dist.ByBand[entity.BandLow] != 1 {
		t.Errorf("ByBand = %v, want one of each VERY_HIGH/MEDIUM/LOW", dist.ByBand)
	}

	if len(dist.Confidence) != 3 {
		t.Fatalf("len(Confidence) = %d, want 3", len(dist.Confidence))
	}
	for i, p := range dist.Confidence {
		if p.Index != i {
			t.Errorf("series[%d].Index = %d, want %d", i, p.Index, i)
		}
		if p.Confidence != confidences[i] {
			t.Errorf("series[%d].Confidence = %d, want %d", i, p.Confidence, confidences[i])
		}
	}
}
