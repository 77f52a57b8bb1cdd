package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"nutrilokal-be/internal/constant"
	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/internal/pkg/upload"
	"nutrilokal-be/internal/repository/memory"
	"nutrilokal-be/pkg/llm"

	"github.com/google/uuid"
)

// IChatbotService drives one conversation turn at a time for a client. The
// client id scopes the "current conversation" cursor, like a browser tab.
type IChatbotService interface {
	Welcome(ctx context.Context, clientId string) (*dto.WelcomeResponse, error)
	OpenConversation(ctx context.Context, clientId string, sessionId uuid.UUID) (*dto.ConversationResponse, error)
	SendChat(ctx context.Context, clientId string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	SendImage(ctx context.Context, clientId string, request *dto.SendImageRequest) (*dto.SendChatResponse, error)
}

type chatbotService struct {
	sessions         IChatSessionService
	llmProvider      llm.LLMProvider
	cursors          *memory.CursorRepository
	images           upload.ImageStore
	publisherService IPublisherService
	logger           logger.ILogger
	now              func() time.Time
}

func NewChatbotService(
	sessions IChatSessionService,
	llmProvider llm.LLMProvider,
	cursors *memory.CursorRepository,
	images upload.ImageStore,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		sessions:         sessions,
		llmProvider:      llmProvider,
		cursors:          cursors,
		images:           images,
		publisherService: publisherService,
		logger:           log,
		now:              time.Now,
	}
}

// Welcome is the landing view. It always starts over: the client's current
// conversation is dropped and nothing is written until the first message.
func (cs *chatbotService) Welcome(ctx context.Context, clientId string) (*dto.WelcomeResponse, error) {
	cs.cursors.Delete(clientId)

	return &dto.WelcomeResponse{
		Greeting:  constant.WelcomeMessage,
		Timestamp: cs.now().UTC(),
	}, nil
}

func (cs *chatbotService) OpenConversation(ctx context.Context, clientId string, sessionId uuid.UUID) (*dto.ConversationResponse, error) {
	session, err := cs.sessions.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}

	messages, err := cs.sessions.GetMessages(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	cs.cursors.Save(clientId, sessionId)

	return &dto.ConversationResponse{
		Session:  session,
		Messages: messages,
	}, nil
}

func (cs *chatbotService) SendChat(ctx context.Context, clientId string, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	question := strings.TrimSpace(request.Chat)
	if question == "" {
		return nil, apperror.Validation("chat must not be empty")
	}

	sessionId, err := cs.resolveSession(ctx, clientId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	// The user's own message is stored before the assistant is asked, so it
	// survives an assistant failure.
	sent, err := cs.sessions.AppendMessage(ctx, sessionId, &dto.AppendMessageRequest{
		Content: question,
		IsUser:  true,
	})
	if err != nil {
		return nil, err
	}

	history, err := cs.sessions.GetMessages(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	reply, err := cs.llmProvider.Chat(ctx, buildChatHistory(history), llm.WithTemperature(constant.ChatTemperature))
	if err != nil {
		cs.logger.Error("ChatbotService", "Assistant request failed", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
		return nil, apperror.Upstream(err)
	}

	return cs.finishTurn(ctx, sessionId, sent, question, reply, request.WhatsApp)
}

// SendImage stores a food photo, records it as a user message and asks the
// assistant for a nutritional analysis.
func (cs *chatbotService) SendImage(ctx context.Context, clientId string, request *dto.SendImageRequest) (*dto.SendChatResponse, error) {
	img, err := cs.images.Save(request.Image)
	if err != nil {
		return nil, cs.imageError(err)
	}

	sessionId, err := cs.resolveSession(ctx, clientId, request.ChatSessionId)
	if err != nil {
		cs.discardImage(img)
		return nil, err
	}

	imageUrl := img.URL
	sent, err := cs.sessions.AppendMessage(ctx, sessionId, &dto.AppendMessageRequest{
		Content:  constant.ImagePlaceholderContent,
		IsUser:   true,
		ImageUrl: &imageUrl,
	})
	if err != nil {
		cs.discardImage(img)
		return nil, err
	}

	prompt := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.ImageSystemPromptV1},
		{
			Role:    llm.RoleUser,
			Content: constant.ImageAnalysisRequest,
			Images:  []llm.InlineImage{{MimeType: img.MimeType, Data: img.Base64}},
		},
	}

	reply, err := cs.llmProvider.Chat(ctx, prompt, llm.WithTemperature(constant.ImageTemperature))
	if err != nil {
		cs.logger.Error("ChatbotService", "Image analysis failed", map[string]interface{}{
			"chat_session_id": sessionId,
			"image_url":       imageUrl,
			"error":           err.Error(),
		})
		return nil, apperror.Upstream(err)
	}

	return cs.finishTurn(ctx, sessionId, sent, constant.ImagePlaceholderContent, reply, request.WhatsApp)
}

// imageError separates bad uploads from disk failures; only the former are
// the caller's fault.
func (cs *chatbotService) imageError(err error) error {
	if errors.Is(err, upload.ErrInvalidImage) || errors.Is(err, upload.ErrImageTooLarge) {
		return apperror.Validation(err.Error())
	}
	cs.logger.Error("ChatbotService", "Failed to store image", map[string]interface{}{"error": err.Error()})
	return apperror.Storage(err)
}

// discardImage removes an upload that never got a message pointing at it.
func (cs *chatbotService) discardImage(img *upload.StoredImage) {
	if err := cs.images.Remove(img.URL); err != nil {
		cs.logger.Warn("ChatbotService", "Failed to remove orphaned image", map[string]interface{}{
			"image_url": img.URL,
			"error":     err.Error(),
		})
	}
}

func (cs *chatbotService) finishTurn(
	ctx context.Context,
	sessionId uuid.UUID,
	sent *dto.ChatMessageResponse,
	question, reply string,
	settings *dto.WhatsAppSettingsRequest,
) (*dto.SendChatResponse, error) {
	replyMsg, err := cs.sessions.AppendMessage(ctx, sessionId, &dto.AppendMessageRequest{
		Content: reply,
		IsUser:  false,
	})
	if err != nil {
		return nil, err
	}

	forwarded := cs.forwardReply(ctx, sessionId, question, reply, settings)

	title := ""
	session, err := cs.sessions.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session != nil {
		title = session.Title
	}

	return &dto.SendChatResponse{
		ChatSessionId:    sessionId,
		ChatSessionTitle: title,
		Sent:             sent,
		Reply:            replyMsg,
		Forwarded:        forwarded,
	}, nil
}

// resolveSession picks the conversation for this turn: an explicit id, then
// the client's cursor, and otherwise a brand new session whose first message
// is the welcome greeting.
func (cs *chatbotService) resolveSession(ctx context.Context, clientId string, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil {
		session, err := cs.sessions.GetSession(ctx, *explicit)
		if err != nil {
			return uuid.Nil, err
		}
		if session == nil {
			return uuid.Nil, apperror.ErrSessionNotFound
		}
		cs.cursors.Save(clientId, session.Id)
		return session.Id, nil
	}

	if current, ok := cs.cursors.Get(clientId); ok {
		session, err := cs.sessions.GetSession(ctx, current)
		if err != nil {
			return uuid.Nil, err
		}
		if session != nil {
			return session.Id, nil
		}
		// Deleted from another tab; start a fresh one.
		cs.cursors.Delete(clientId)
	}

	session, err := cs.sessions.CreateSession(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := cs.sessions.AppendMessage(ctx, session.Id, &dto.AppendMessageRequest{
		Content: constant.WelcomeMessage,
		IsUser:  false,
	}); err != nil {
		return uuid.Nil, err
	}

	cs.cursors.Save(clientId, session.Id)
	cs.logger.Info("ChatbotService", "Session started", map[string]interface{}{"chat_session_id": session.Id})

	return session.Id, nil
}

// forwardReply queues the exchange for WhatsApp delivery. It reports whether
// a forward was queued; delivery itself happens later and may still fail.
func (cs *chatbotService) forwardReply(ctx context.Context, sessionId uuid.UUID, question, answer string, settings *dto.WhatsAppSettingsRequest) bool {
	if settings == nil || cs.publisherService == nil {
		return false
	}

	cfg := settings.ToConfig()
	if !cfg.Enabled {
		return false
	}
	if err := cfg.Validate(); err != nil {
		cs.logger.Warn("ChatbotService", "WhatsApp settings rejected, reply not forwarded", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
		return false
	}

	payload, err := json.Marshal(dto.PublishForwardReplyMessage{
		ChatSessionId: sessionId,
		Question:      question,
		Answer:        answer,
		PhoneNumber:   cfg.PhoneNumber,
		ApiKey:        cfg.APIKey,
		DeviceToken:   cfg.DeviceToken,
	})
	if err != nil {
		return false
	}

	if err := cs.publisherService.Publish(context.WithoutCancel(ctx), payload); err != nil {
		cs.logger.Error("ChatbotService", "Failed to queue WhatsApp forward", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
		return false
	}
	return true
}

// buildChatHistory prefixes the stored conversation with the system prompt.
// Image turns are sent as their placeholder text.
func buildChatHistory(messages []*dto.ChatMessageResponse) []llm.Message {
	history := make([]llm.Message, 0, len(messages)+1)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: constant.NutritionSystemPromptV1})

	for _, m := range messages {
		role := llm.RoleAssistant
		if m.IsUser {
			role = llm.RoleUser
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}
	return history
}
