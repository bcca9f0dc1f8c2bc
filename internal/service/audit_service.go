package service

import (
	"context"
	"encoding/json"

	"ticket-intel-be/internal/entity"
	"ticket-intel-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService drains the review-decision topic and writes each decision to
// the isolated audit log. In-memory only; the trail lives and dies with the
// process.
type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	auditLog  logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, auditLog logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		auditLog:  auditLog,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(msg *message.Message) {
	var decision entity.ReviewDecision
	if err := json.Unmarshal(msg.Payload, &decision); err != nil {
		as.auditLog.Error("audit", "failed to unmarshal decision", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	as.auditLog.Info("audit", "review decision", map[string]interface{}{
		"ticket_id":  decision.TicketId,
		"action":     string(decision.Action),
		"bot":        decision.Bot,
		"category":   decision.Category,
		"decided_by": decision.DecidedBy,
		"decided_at": decision.DecidedAt,
	})
	msg.Ack()
}
