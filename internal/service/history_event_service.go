package service

import (
	"context"

	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/internal/repository/memory"
	"nutrilokal-be/pkg/events"
	pktNats "nutrilokal-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	historySubject = "chat.>"
	historyDurable = "history-relay"
)

// HistoryDelivery pushes history changes to connected browsers.
// Implemented by the websocket Hub.
type HistoryDelivery interface {
	Broadcast(event dto.HistoryEventMessage)
}

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// HistoryEventService relays session store events to websocket clients and
// keeps conversation cursors from pointing at sessions that no longer exist.
type HistoryEventService struct {
	subscriber EventSubscriber
	delivery   HistoryDelivery
	cursors    *memory.CursorRepository
	logger     logger.ILogger
}

func NewHistoryEventService(sub EventSubscriber, delivery HistoryDelivery, cursors *memory.CursorRepository, log logger.ILogger) *HistoryEventService {
	return &HistoryEventService{
		subscriber: sub,
		delivery:   delivery,
		cursors:    cursors,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *HistoryEventService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, historySubject, historyDurable, s.handleEvent); err != nil {
		s.logger.Error("HistoryEventService", "Failed to start history subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("HistoryEventService", "History relay started", map[string]interface{}{"subject": historySubject})
	return nil
}

func (s *HistoryEventService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	switch event.EventType() {
	case events.ChatSessionDeleted:
		if raw, ok := payload["chat_session_id"].(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				s.cursors.Forget(id)
			}
		}
	case events.ChatHistoryCleared:
		s.cursors.Flush()
	case events.ChatSessionCreated, events.ChatSessionUpdated:
	default:
		s.logger.Debug("HistoryEventService", "Ignoring unknown event", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	if s.delivery != nil {
		s.delivery.Broadcast(dto.HistoryEventMessage{
			Type:       event.EventType(),
			Data:       payload,
			OccurredAt: event.Timestamp(),
		})
	}
	return nil
}
