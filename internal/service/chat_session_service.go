package service

import (
	"context"
	"fmt"
	"time"

	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/entity"
	"nutrilokal-be/internal/mapper"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/internal/repository/specification"
	"nutrilokal-be/internal/repository/unitofwork"
	"nutrilokal-be/pkg/events"

	"github.com/google/uuid"
)

const (
	titleMaxRunes = 20
	titleEllipsis = "..."
)

type IChatSessionService interface {
	ListSessions(ctx context.Context) ([]*dto.ChatSessionResponse, error)
	CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error)
	GetSession(ctx context.Context, id uuid.UUID) (*dto.ChatSessionResponse, error)
	GetMessages(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	AppendMessage(ctx context.Context, sessionId uuid.UUID, req *dto.AppendMessageRequest) (*dto.ChatMessageResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) (bool, error)
	ClearSessions(ctx context.Context) error
}

type chatSessionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher // optional
	logger     logger.ILogger
	location   *time.Location
	mapper     *mapper.ChatMapper
	now        func() time.Time
}

// NewChatSessionService wires the session store. publisher may be nil when
// the event bus is unavailable; location decides the calendar date used in
// default titles.
func NewChatSessionService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	log logger.ILogger,
	location *time.Location,
) IChatSessionService {
	if location == nil {
		location = time.UTC
	}
	return &chatSessionService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
		location:   location,
		mapper:     mapper.NewChatMapper(),
		now:        time.Now,
	}
}

// clock returns the current instant in UTC at microsecond precision, the
// finest resolution postgres keeps.
func (s *chatSessionService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *chatSessionService) ListSessions(ctx context.Context) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specification.MostRecentlyUpdated{})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	result := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, s.mapper.ChatSessionToResponse(session))
	}
	return result, nil
}

func (s *chatSessionService) CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := s.clock()
	session := entity.ChatSession{
		Id:        uuid.New(),
		Title:     defaultSessionTitle(now, s.location),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		s.logger.Error("ChatSessionService", "Failed to create session", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Storage(err)
	}

	s.publish(events.NewChatSessionEvent(events.ChatSessionCreated, session.Id, session.Title, session.UpdatedAt))

	return s.mapper.ChatSessionToResponse(&session), nil
}

// GetSession returns (nil, nil) when the session does not exist.
func (s *chatSessionService) GetSession(ctx context.Context, id uuid.UUID) (*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if session == nil {
		return nil, nil
	}

	return s.mapper.ChatSessionToResponse(session), nil
}

func (s *chatSessionService) GetMessages(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.ConversationOrder{},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return s.mapper.ChatMessagesToResponses(messages), nil
}

func (s *chatSessionService) AppendMessage(ctx context.Context, sessionId uuid.UUID, req *dto.AppendMessageRequest) (*dto.ChatMessageResponse, error) {
	if !req.IsUser && req.ImageUrl != nil {
		return nil, apperror.Validation("image_url is only allowed on user messages")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage(err)
	}
	defer uow.Rollback()

	sessionRepo := uow.ChatSessionRepository()
	messageRepo := uow.ChatMessageRepository()

	session, err := sessionRepo.FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}

	// Never stamp a message earlier than the session's last activity, so
	// updated_at stays the maximum message timestamp even if the clock steps back.
	timestamp := s.clock()
	if session.UpdatedAt.After(timestamp) {
		timestamp = session.UpdatedAt
	}

	sessionFilter := specification.ByChatSessionID{ChatSessionID: sessionId}
	total, err := messageRepo.Count(ctx, sessionFilter)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	isFirstUserMessage := false
	if req.IsUser {
		userCount, err := messageRepo.Count(ctx, sessionFilter, specification.UserAuthored{})
		if err != nil {
			return nil, apperror.Storage(err)
		}
		isFirstUserMessage = userCount == 0
	}

	message := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Content:       req.Content,
		IsUser:        req.IsUser,
		Timestamp:     timestamp,
		Sequence:      total + 1,
		ImageUrl:      req.ImageUrl,
	}
	if err := messageRepo.Create(ctx, &message); err != nil {
		return nil, apperror.Storage(err)
	}

	if isFirstUserMessage {
		session.Title = titleFromContent(req.Content)
	}
	session.UpdatedAt = timestamp
	if err := sessionRepo.Update(ctx, session); err != nil {
		return nil, apperror.Storage(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage(err)
	}

	s.publish(events.NewChatSessionEvent(events.ChatSessionUpdated, session.Id, session.Title, session.UpdatedAt))

	return s.mapper.ChatMessageToResponse(&message), nil
}

// DeleteSession removes the session and its messages in one transaction.
// Unknown ids are not an error; the flag reports whether anything was removed.
func (s *chatSessionService) DeleteSession(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, apperror.Storage(err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, id); err != nil {
		return false, apperror.Storage(err)
	}

	deleted, err := uow.ChatSessionRepository().Delete(ctx, id)
	if err != nil {
		return false, apperror.Storage(err)
	}

	if err := uow.Commit(); err != nil {
		return false, apperror.Storage(err)
	}

	if deleted {
		s.publish(events.NewChatSessionEvent(events.ChatSessionDeleted, id, "", time.Time{}))
	}
	return deleted, nil
}

func (s *chatSessionService) ClearSessions(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Storage(err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAll(ctx); err != nil {
		return apperror.Storage(err)
	}
	if err := uow.ChatSessionRepository().DeleteAll(ctx); err != nil {
		return apperror.Storage(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.Storage(err)
	}

	s.logger.Info("ChatSessionService", "Chat history cleared", nil)
	s.publish(events.NewChatHistoryClearedEvent())
	return nil
}

// publish is fire-and-forget: history listeners are a convenience and a slow
// or missing bus must not hold up the request.
func (s *chatSessionService) publish(evt events.BaseEvent) {
	if s.publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ChatSessionService", "Failed to publish event", map[string]interface{}{
				"type":  evt.EventType(),
				"error": err.Error(),
			})
		}
	}()
}

// defaultSessionTitle renders the short Indonesian date, e.g. "Chat 2/3/2025".
func defaultSessionTitle(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	return fmt.Sprintf("Chat %d/%d/%d", local.Day(), int(local.Month()), local.Year())
}

// titleFromContent keeps the first 20 characters, adding an ellipsis only
// when something was cut.
func titleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxRunes {
		return content
	}
	return string(runes[:titleMaxRunes]) + titleEllipsis
}
