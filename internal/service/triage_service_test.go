package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"ticket-intel-be/internal/dto"
	"ticket-intel-be/internal/entity"
	"ticket-intel-be/internal/repository/memory"
	"ticket-intel-be/pkg/gateway"
	"ticket-intel-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records calls and plays back canned responses.
type fakeGateway struct {
	jobId       string
	uploadErr   error
	results     []gateway.RawTicket
	classifyErr error

	approved []gateway.ApproveRequest
	feedback []gateway.FeedbackRequest
}

func (f *fakeGateway) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.jobId, nil
}

func (f *fakeGateway) Classify(ctx context.Context, jobId string) ([]gateway.RawTicket, error) {
	if f.classifyErr != nil {
		return nil, f.classifyErr
	}
	return f.results, nil
}

func (f *fakeGateway) Approve(ctx context.Context, req gateway.ApproveRequest) error {
	f.approved = append(f.approved, req)
	return nil
}

func (f *fakeGateway) SubmitFeedback(ctx context.Context, req gateway.FeedbackRequest) error {
	f.feedback = append(f.feedback, req)
	return nil
}

type fakePublisher struct {
	decisions []entity.ReviewDecision
}

func (f *fakePublisher) PublishDecision(d entity.ReviewDecision) error {
	f.decisions = append(f.decisions, d)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestService(gw gateway.IGatewayClient, pub IPublisherService) (ITriageService, *memory.SessionRepository) {
	sessions := memory.NewSessionRepository(time.Hour)
	return NewTriageService(gw, sessions, pub, nopLogger{}), sessions
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestUploadBindsJobToSession(t *testing.T) {
	gw := &fakeGateway{jobId: "job-42"}
	svc, sessions := newTestService(gw, &fakePublisher{})

	session := store.NewReviewSession("s1")
	sessions.Save(session)

	res, err := svc.Upload(context.Background(), session, "tickets.xlsx", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "job-42", res.JobId)
	assert.True(t, session.Uploaded)
	assert.Equal(t, "job-42", session.JobID)
}

func TestUploadDiscardsPreviousBatch(t *testing.T) {
	gw := &fakeGateway{jobId: "job-2"}
	svc, sessions := newTestService(gw, &fakePublisher{})

	session := store.NewReviewSession("s1")
	session.Rows = []entity.ReviewedTicket{{TicketId: "TKT-1"}}
	sessions.Save(session)

	_, err := svc.Upload(context.Background(), session, "tickets.xlsx", strings.NewReader("data"))
	require.NoError(t, err)
	assert.False(t, session.HasResults())
}

func TestClassifyWithoutJob(t *testing.T) {
	svc, sessions := newTestService(&fakeGateway{}, &fakePublisher{})
	session := store.NewReviewSession("s1")
	sessions.Save(session)

	_, err := svc.Classify(context.Background(), session)
	assert.ErrorIs(t, err, ErrNoJob)
}

func TestClassifyStoresDerivedBatch(t *testing.T) {
	gw := &fakeGateway{
		jobId: "job-1",
		results: []gateway.RawTicket{
			{PredictedCategory: "Cancellation", Reasoning: "cancel intent", Bot: strPtr("Pega Bot"), Confidence: floatPtr(96)},
			{PredictedCategory: "Unknown"},
		},
	}
	svc, sessions := newTestService(gw, &fakePublisher{})

	session := store.NewReviewSession("s1")
	session.JobID = "job-1"
	session.Uploaded = true
	sessions.Save(session)

	res, err := svc.Classify(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	// End-to-end derivation: alias rewritten, band computed, id synthesized.
	assert.Equal(t, "TKT-1", res.Rows[0].TicketId)
	assert.Equal(t, entity.BotCancelGWSS, res.Rows[0].Bot)
	assert.Equal(t, entity.BandVeryHigh, res.Rows[0].ConfidenceBand)

	// Second row got all defaults.
	assert.Equal(t, "TKT-2", res.Rows[1].TicketId)
	assert.Equal(t, entity.BotManualReview, res.Rows[1].Bot)
	assert.Equal(t, 80, res.Rows[1].Confidence)
	assert.Equal(t, entity.BandMedium, res.Rows[1].ConfidenceBand)

	require.NotNil(t, res.Stats)
	assert.Equal(t, 2, res.Stats.Total)
	assert.Equal(t, 1, res.Stats.HighConfidence)
	assert.Equal(t, 50, res.Stats.AutomationPercent)
	assert.Equal(t, 1, res.Stats.ManualReviewCount)

	// Batch stored in session state.
	assert.True(t, session.HasResults())
}

func TestClassifyEmptyResultsStoresNothing(t *testing.T) {
	gw := &fakeGateway{jobId: "job-1", results: []gateway.RawTicket{}}
	svc, sessions := newTestService(gw, &fakePublisher{})

	session := store.NewReviewSession("s1")
	session.JobID = "job-1"
	session.Uploaded = true
	sessions.Save(session)

	_, err := svc.Classify(context.Background(), session)
	assert.ErrorIs(t, err, ErrNoResults)
	assert.False(t, session.HasResults())
}

func TestClassifyOverwritesPreviousBatch(t *testing.T) {
	gw := &fakeGateway{
		jobId:   "job-1",
		results: []gateway.RawTicket{{PredictedCategory: "Refund"}},
	}
	svc, sessions := newTestService(gw, &fakePublisher{})

	session := store.NewReviewSession("s1")
	session.JobID = "job-1"
	session.Uploaded = true
	session.Rows = []entity.ReviewedTicket{{TicketId: "OLD-1"}, {TicketId: "OLD-2"}}
	sessions.Save(session)

	res, err := svc.Classify(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "TKT-1", res.Rows[0].TicketId)
	assert.Len(t, session.Rows, 1)
}

func TestResultsWithoutBatch(t *testing.T) {
	svc, sessions := newTestService(&fakeGateway{}, &fakePublisher{})
	session := store.NewReviewSession("s1")
	sessions.Save(session)

	_, err := svc.Results(session)
	assert.ErrorIs(t, err, ErrNoBatch)
}

func classifiedSession(t *testing.T, svc ITriageService, sessions *memory.SessionRepository) *store.ReviewSession {
	t.Helper()
	session := store.NewReviewSession("s1")
	session.JobID = "job-1"
	session.Uploaded = true
	sessions.Save(session)

	_, err := svc.Classify(context.Background(), session)
	require.NoError(t, err)
	return session
}

func TestApproveForwardsAndPublishes(t *testing.T) {
	gw := &fakeGateway{
		jobId:   "job-1",
		results: []gateway.RawTicket{{PredictedCategory: "Cancellation", Bot: strPtr("Pega Bot"), Confidence: floatPtr(96)}},
	}
	pub := &fakePublisher{}
	svc, sessions := newTestService(gw, pub)
	session := classifiedSession(t, svc, sessions)

	err := svc.Approve(context.Background(), session, "TKT-1", dto.ApproveTicketRequest{BotName: entity.BotCancelGWSS})
	require.NoError(t, err)

	require.Len(t, gw.approved, 1)
	assert.Equal(t, "TKT-1", gw.approved[0].TicketId)
	assert.Equal(t, entity.BotCancelGWSS, gw.approved[0].BotName)
	assert.Equal(t, entity.DefaultApprover, gw.approved[0].ApprovedBy)

	require.Len(t, pub.decisions, 1)
	assert.Equal(t, entity.ActionApprove, pub.decisions[0].Action)
}

func TestApproveUnknownTicket(t *testing.T) {
	gw := &fakeGateway{jobId: "job-1", results: []gateway.RawTicket{{PredictedCategory: "X"}}}
	svc, sessions := newTestService(gw, &fakePublisher{})
	session := classifiedSession(t, svc, sessions)

	err := svc.Approve(context.Background(), session, "TKT-99", dto.ApproveTicketRequest{BotName: "AnyBot"})
	assert.ErrorIs(t, err, ErrUnknownTicket)
	assert.Empty(t, gw.approved)
}

func TestRejectDerivesKeywords(t *testing.T) {
	gw := &fakeGateway{jobId: "job-1", results: []gateway.RawTicket{{PredictedCategory: "Refund"}}}
	pub := &fakePublisher{}
	svc, sessions := newTestService(gw, pub)
	session := classifiedSession(t, svc, sessions)

	err := svc.Reject(context.Background(), session, "TKT-1", dto.RejectTicketRequest{
		CorrectCategory: "Billing Issue",
		BotName:         entity.BotMendixRMS,
	})
	require.NoError(t, err)

	require.Len(t, gw.feedback, 1)
	assert.Equal(t, "TKT-1", gw.feedback[0].TicketId)
	assert.Equal(t, "Billing Issue", gw.feedback[0].CorrectCategory)
	assert.Equal(t, []string{"Billing", "Issue"}, gw.feedback[0].Keywords)
	assert.Equal(t, entity.BotMendixRMS, gw.feedback[0].BotName)

	require.Len(t, pub.decisions, 1)
	assert.Equal(t, entity.ActionReject, pub.decisions[0].Action)
	assert.Equal(t, "Billing Issue", pub.decisions[0].Category)
}

func TestGatewayFailurePropagates(t *testing.T) {
	gw := &fakeGateway{uploadErr: errors.New("connection refused")}
	svc, sessions := newTestService(gw, &fakePublisher{})
	session := store.NewReviewSession("s1")
	sessions.Save(session)

	_, err := svc.Upload(context.Background(), session, "tickets.xlsx", strings.NewReader("x"))
	assert.Error(t, err)
	assert.False(t, session.Uploaded)
}
