package service

import (
	"context"
	"errors"
	"io"
	"time"

	"ticket-intel-be/internal/dto"
	"ticket-intel-be/internal/entity"
	"ticket-intel-be/internal/mapper"
	"ticket-intel-be/internal/pkg/logger"
	"ticket-intel-be/internal/repository/memory"
	"ticket-intel-be/internal/triage"
	"ticket-intel-be/pkg/gateway"
	"ticket-intel-be/pkg/store"
)

var (
	// ErrNoJob: classify requested before any spreadsheet was uploaded.
	ErrNoJob = errors.New("no classification job: upload a spreadsheet first")
	// ErrNoResults: the classifier returned an empty batch; nothing stored.
	ErrNoResults = errors.New("no results returned from classification service")
	// ErrNoBatch: results or a review action requested before a classify run.
	ErrNoBatch = errors.New("no classified batch in this session")
	// ErrUnknownTicket: review action on a ticket id not in the current batch.
	ErrUnknownTicket = errors.New("ticket not found in current batch")
)

type ITriageService interface {
	Upload(ctx context.Context, session *store.ReviewSession, filename string, file io.Reader) (*dto.UploadTicketsResponse, error)
	Classify(ctx context.Context, session *store.ReviewSession) (*dto.ClassificationResultResponse, error)
	Results(session *store.ReviewSession) (*dto.ClassificationResultResponse, error)
	Approve(ctx context.Context, session *store.ReviewSession, ticketId string, req dto.ApproveTicketRequest) error
	Reject(ctx context.Context, session *store.ReviewSession, ticketId string, req dto.RejectTicketRequest) error
}

type triageService struct {
	gateway   gateway.IGatewayClient
	sessions  *memory.SessionRepository
	publisher IPublisherService
	mapper    *mapper.TicketMapper
	logger    logger.ILogger
}

func NewTriageService(
	gatewayClient gateway.IGatewayClient,
	sessions *memory.SessionRepository,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) ITriageService {
	return &triageService{
		gateway:   gatewayClient,
		sessions:  sessions,
		publisher: publisher,
		mapper:    mapper.NewTicketMapper(),
		logger:    sysLogger,
	}
}

// Upload forwards the spreadsheet to the upload endpoint and binds the
// returned job to this session. A re-upload replaces the job and discards any
// previous batch.
func (s *triageService) Upload(ctx context.Context, session *store.ReviewSession, filename string, file io.Reader) (*dto.UploadTicketsResponse, error) {
	jobId, err := s.gateway.Upload(ctx, filename, file)
	if err != nil {
		s.logger.Error("triage", "upload failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	session.JobID = jobId
	session.Uploaded = true
	session.Rows = nil
	s.sessions.Save(session)

	s.logger.Info("triage", "job created", map[string]interface{}{"job_id": jobId})
	return &dto.UploadTicketsResponse{JobId: jobId}, nil
}

// Classify runs the external engine on the session's job, derives the rows
// and overwrites the session batch. An empty result is a warning condition:
// nothing is stored and ErrNoResults is returned.
func (s *triageService) Classify(ctx context.Context, session *store.ReviewSession) (*dto.ClassificationResultResponse, error) {
	if !session.Uploaded || session.JobID == "" {
		return nil, ErrNoJob
	}

	raw, err := s.gateway.Classify(ctx, session.JobID)
	if err != nil {
		s.logger.Error("triage", "classification failed", map[string]interface{}{
			"job_id": session.JobID,
			"error":  err.Error(),
		})
		return nil, err
	}

	if len(raw) == 0 {
		s.logger.Warn("triage", "classification returned no results", map[string]interface{}{
			"job_id": session.JobID,
		})
		return nil, ErrNoResults
	}

	rows := triage.DeriveBatch(s.mapper.ToRecords(raw))
	session.Rows = rows
	s.sessions.Save(session)

	s.logger.Info("triage", "batch classified", map[string]interface{}{
		"job_id": session.JobID,
		"rows":   len(rows),
	})

	return s.buildResultResponse(session), nil
}

// Results re-reads the stored batch without touching the external engine.
func (s *triageService) Results(session *store.ReviewSession) (*dto.ClassificationResultResponse, error) {
	if !session.HasResults() {
		return nil, ErrNoBatch
	}
	return s.buildResultResponse(session), nil
}

func (s *triageService) buildResultResponse(session *store.ReviewSession) *dto.ClassificationResultResponse {
	// Guarded by callers: Aggregate requires a non-empty batch.
	stats := triage.Aggregate(session.Rows)
	dist := triage.Distribute(session.Rows)

	return &dto.ClassificationResultResponse{
		JobId:         session.JobID,
		Rows:          s.mapper.ToRowDTOs(session.Rows),
		Stats:         s.mapper.ToStatsDTO(stats),
		Distributions: s.mapper.ToDistributionsDTO(dist),
	}
}

// Approve triggers the automation bot for one reviewed ticket, then emits an
// audit decision. No local state changes.
func (s *triageService) Approve(ctx context.Context, session *store.ReviewSession, ticketId string, req dto.ApproveTicketRequest) error {
	if _, err := s.findRow(session, ticketId); err != nil {
		return err
	}

	approver := req.ApprovedBy
	if approver == "" {
		approver = entity.DefaultApprover
	}

	err := s.gateway.Approve(ctx, gateway.ApproveRequest{
		TicketId:   ticketId,
		BotName:    req.BotName,
		ApprovedBy: approver,
	})
	if err != nil {
		s.logger.Error("triage", "bot trigger failed", map[string]interface{}{
			"ticket_id": ticketId,
			"error":     err.Error(),
		})
		return err
	}

	s.publishDecision(entity.ReviewDecision{
		TicketId:  ticketId,
		Action:    entity.ActionApprove,
		Bot:       req.BotName,
		DecidedBy: approver,
		DecidedAt: time.Now().UTC(),
	})

	s.logger.Info("triage", "bot triggered", map[string]interface{}{
		"ticket_id": ticketId,
		"bot":       req.BotName,
	})
	return nil
}

// Reject submits the correction to the feedback endpoint. Keywords are the
// whitespace split of the corrected category, order preserved. Fire and
// forget: we never observe whether the remote model actually changed.
func (s *triageService) Reject(ctx context.Context, session *store.ReviewSession, ticketId string, req dto.RejectTicketRequest) error {
	if _, err := s.findRow(session, ticketId); err != nil {
		return err
	}

	err := s.gateway.SubmitFeedback(ctx, gateway.FeedbackRequest{
		TicketId:        ticketId,
		CorrectCategory: req.CorrectCategory,
		Keywords:        triage.SplitKeywords(req.CorrectCategory),
		BotName:         req.BotName,
	})
	if err != nil {
		s.logger.Error("triage", "feedback submission failed", map[string]interface{}{
			"ticket_id": ticketId,
			"error":     err.Error(),
		})
		return err
	}

	s.publishDecision(entity.ReviewDecision{
		TicketId:  ticketId,
		Action:    entity.ActionReject,
		Bot:       req.BotName,
		Category:  req.CorrectCategory,
		DecidedBy: entity.DefaultApprover,
		DecidedAt: time.Now().UTC(),
	})

	s.logger.Info("triage", "feedback submitted", map[string]interface{}{
		"ticket_id": ticketId,
		"category":  req.CorrectCategory,
	})
	return nil
}

func (s *triageService) findRow(session *store.ReviewSession, ticketId string) (*entity.ReviewedTicket, error) {
	if !session.HasResults() {
		return nil, ErrNoBatch
	}
	for i := range session.Rows {
		if session.Rows[i].TicketId == ticketId {
			return &session.Rows[i], nil
		}
	}
	return nil, ErrUnknownTicket
}

func (s *triageService) publishDecision(decision entity.ReviewDecision) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishDecision(decision); err != nil {
		s.logger.Warn("triage", "failed to publish review decision", map[string]interface{}{
			"ticket_id": decision.TicketId,
			"error":     err.Error(),
		})
	}
}
