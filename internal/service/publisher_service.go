package service

import (
	"encoding/json"

	"ticket-intel-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishDecision(decision entity.ReviewDecision) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// PublishDecision puts a review decision on the in-process bus. Errors are
// returned but callers treat publishing as best-effort: a failed audit event
// never fails the review action itself.
func (ps *publisherService) PublishDecision(decision entity.ReviewDecision) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
