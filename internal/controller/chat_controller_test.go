package controller

import (
	"net/http"
	"testing"

	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionEndpoints(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/chat/v1/sessions", nil, "")
	require.Equal(t, http.StatusOK, code)
	var session dto.ChatSessionResponse
	decodeData(t, env, &session)
	assert.Contains(t, session.Title, "Chat ")

	code, env = ts.do(t, http.MethodPost, "/api/chat/v1/sessions/"+session.Id.String()+"/messages",
		dto.AppendMessageRequest{Content: "Berapa kalori nasi uduk?", IsUser: true}, "")
	require.Equal(t, http.StatusOK, code)

	code, env = ts.do(t, http.MethodGet, "/api/chat/v1/sessions/"+session.Id.String(), nil, "")
	require.Equal(t, http.StatusOK, code)
	decodeData(t, env, &session)
	assert.Equal(t, "Berapa kalori nasi u...", session.Title)

	code, env = ts.do(t, http.MethodGet, "/api/chat/v1/sessions/"+session.Id.String()+"/messages", nil, "")
	require.Equal(t, http.StatusOK, code)
	var messages []dto.ChatMessageResponse
	decodeData(t, env, &messages)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].IsUser)

	code, env = ts.do(t, http.MethodGet, "/api/chat/v1/sessions", nil, "")
	require.Equal(t, http.StatusOK, code)
	var list []dto.ChatSessionResponse
	decodeData(t, env, &list)
	assert.Len(t, list, 1)

	code, env = ts.do(t, http.MethodDelete, "/api/chat/v1/sessions/"+session.Id.String(), nil, "")
	require.Equal(t, http.StatusOK, code)
	var deleted dto.DeleteSessionResponse
	decodeData(t, env, &deleted)
	assert.True(t, deleted.Deleted)

	code, env = ts.do(t, http.MethodDelete, "/api/chat/v1/sessions/"+session.Id.String(), nil, "")
	require.Equal(t, http.StatusOK, code)
	decodeData(t, env, &deleted)
	assert.False(t, deleted.Deleted)
}

func TestGetMissingSessionIs404(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/chat/v1/sessions/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)

	code, _ = ts.do(t, http.MethodGet, "/api/chat/v1/conversation/"+uuid.NewString(), nil, "tab-1")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ts.do(t, http.MethodGet, "/api/chat/v1/sessions/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMessagesForUnknownSessionAreEmpty(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages", nil, "")
	require.Equal(t, http.StatusOK, code)
	var messages []dto.ChatMessageResponse
	decodeData(t, env, &messages)
	assert.Empty(t, messages)
}

func TestAppendRequiresContent(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodPost, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages",
		dto.AppendMessageRequest{Content: "", IsUser: true}, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ts.do(t, http.MethodPost, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages",
		dto.AppendMessageRequest{Content: "halo", IsUser: true}, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSendChatFlow(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/chat/v1/welcome", nil, "tab-1")
	require.Equal(t, http.StatusOK, code)
	var welcome dto.WelcomeResponse
	decodeData(t, env, &welcome)
	assert.NotEmpty(t, welcome.Greeting)

	// Nothing is stored until the first message.
	code, env = ts.do(t, http.MethodGet, "/api/chat/v1/sessions", nil, "")
	require.Equal(t, http.StatusOK, code)
	var list []dto.ChatSessionResponse
	decodeData(t, env, &list)
	assert.Empty(t, list)

	code, env = ts.do(t, http.MethodPost, "/api/chat/v1/send", dto.SendChatRequest{Chat: "Apa itu gado-gado?"}, "tab-1")
	require.Equal(t, http.StatusOK, code)
	var first dto.SendChatResponse
	decodeData(t, env, &first)
	assert.Equal(t, "Gado-gado kaya serat.", first.Reply.Content)
	assert.Equal(t, "Apa itu gado-gado?", first.ChatSessionTitle)
	assert.False(t, first.Forwarded)

	// Same tab continues the same conversation.
	code, env = ts.do(t, http.MethodPost, "/api/chat/v1/send", dto.SendChatRequest{Chat: "Resepnya?"}, "tab-1")
	require.Equal(t, http.StatusOK, code)
	var second dto.SendChatResponse
	decodeData(t, env, &second)
	assert.Equal(t, first.ChatSessionId, second.ChatSessionId)

	code, env = ts.do(t, http.MethodGet, "/api/chat/v1/conversation/"+first.ChatSessionId.String(), nil, "tab-2")
	require.Equal(t, http.StatusOK, code)
	var conv dto.ConversationResponse
	decodeData(t, env, &conv)
	assert.Len(t, conv.Messages, 5)
}

func TestSendChatValidationAndUpstreamFailure(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodPost, "/api/chat/v1/send", dto.SendChatRequest{Chat: ""}, "tab-1")
	assert.Equal(t, http.StatusBadRequest, code)

	ts.llm.err = apperror.ErrUpstreamFailure
	code, env := ts.do(t, http.MethodPost, "/api/chat/v1/send", dto.SendChatRequest{Chat: "Halo"}, "tab-1")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "Gagal mendapatkan respons. Silakan coba lagi.", env.Message)
}

func TestClearSessions(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 3; i++ {
		code, _ := ts.do(t, http.MethodPost, "/api/chat/v1/sessions", nil, "")
		require.Equal(t, http.StatusOK, code)
	}

	code, env := ts.do(t, http.MethodDelete, "/api/chat/v1/sessions", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	_, env = ts.do(t, http.MethodGet, "/api/chat/v1/sessions", nil, "")
	var list []dto.ChatSessionResponse
	decodeData(t, env, &list)
	assert.Empty(t, list)
}
