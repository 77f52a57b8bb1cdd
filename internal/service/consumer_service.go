package service

import (
	"context"
	"encoding/json"
	"time"

	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/pkg/whatsapp"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const forwardTimeout = 30 * time.Second

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the forward queue into the WhatsApp gateway.
// Every message is acked: delivery is best effort and never retried.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	forwarder whatsapp.Forwarder
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	forwarder whatsapp.Forwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		forwarder: forwarder,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishForwardReplyMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("WhatsAppForwarder", "Failed to unmarshal forward request", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cfg := whatsapp.Config{
		Enabled:     true,
		PhoneNumber: payload.PhoneNumber,
		APIKey:      payload.ApiKey,
		DeviceToken: payload.DeviceToken,
	}
	details := map[string]interface{}{
		"chat_session_id": payload.ChatSessionId,
		"target":          maskPhone(payload.PhoneNumber),
	}

	if err := cfg.Validate(); err != nil {
		details["error"] = err.Error()
		cs.logger.Warn("WhatsAppForwarder", "Skipping forward with invalid settings", details)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, forwardTimeout)
	defer cancel()

	text := whatsapp.FormatReply(payload.Question, payload.Answer)
	if err := cs.forwarder.Send(sendCtx, cfg, text); err != nil {
		details["error"] = err.Error()
		cs.logger.Error("WhatsAppForwarder", "Failed to forward reply", details)
		return
	}

	details["recipe_layout"] = whatsapp.IsRecipeQuery(payload.Question)
	cs.logger.Info("WhatsAppForwarder", "Reply forwarded", details)
}

// maskPhone keeps only the last four digits for the logs.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "****" + phone[len(phone)-4:]
}
