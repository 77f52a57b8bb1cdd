package mapper

import (
	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/entity"
	"nutrilokal-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToResponse(s *entity.ChatSession) *dto.ChatSessionResponse {
	if s == nil {
		return nil
	}

	return &dto.ChatSessionResponse{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Content:       msg.Content,
		IsUser:        msg.IsUser,
		Timestamp:     msg.Timestamp,
		Sequence:      msg.Sequence,
		ImageUrl:      msg.ImageUrl,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Content:       msg.Content,
		IsUser:        msg.IsUser,
		Timestamp:     msg.Timestamp,
		Sequence:      msg.Sequence,
		ImageUrl:      msg.ImageUrl,
	}
}

func (m *ChatMapper) ChatMessageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}

	return &dto.ChatMessageResponse{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Content:       msg.Content,
		IsUser:        msg.IsUser,
		Timestamp:     msg.Timestamp,
		ImageUrl:      msg.ImageUrl,
	}
}

func (m *ChatMapper) ChatMessagesToResponses(msgs []*entity.ChatMessage) []*dto.ChatMessageResponse {
	res := make([]*dto.ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		res = append(res, m.ChatMessageToResponse(msg))
	}
	return res
}
