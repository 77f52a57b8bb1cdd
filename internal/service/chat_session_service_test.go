package service

import (
	"context"
	"testing"
	"time"

	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/internal/repository/unitofwork"
	"nutrilokal-be/internal/testutil"
	"nutrilokal-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func newTestSessionService(t *testing.T) (*chatSessionService, *stepClock, *recordingPublisher) {
	t.Helper()
	db := testutil.NewTestDB(t)
	pub := &recordingPublisher{}
	clock := newStepClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))

	svc := NewChatSessionService(unitofwork.NewRepositoryFactory(db), pub, logger.NewNopLogger(), wib).(*chatSessionService)
	svc.now = clock.Now
	return svc, clock, pub
}

func userMsg(content string) *dto.AppendMessageRequest {
	return &dto.AppendMessageRequest{Content: content, IsUser: true}
}

func botMsg(content string) *dto.AppendMessageRequest {
	return &dto.AppendMessageRequest{Content: content, IsUser: false}
}

func TestListSessionsEmpty(t *testing.T) {
	svc, _, _ := newTestSessionService(t)

	sessions, err := svc.ListSessions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestCreateSessionUsesLocalDateTitle(t *testing.T) {
	svc, clock, pub := newTestSessionService(t)
	// 20:00 UTC is already the next day in Jakarta.
	clock.Set(time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC))

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, session.Id)
	assert.Equal(t, "Chat 2/3/2025", session.Title)
	assert.True(t, session.CreatedAt.Equal(session.UpdatedAt))
	assert.Eventually(t, func() bool { return pub.has(events.ChatSessionCreated) }, time.Second, 10*time.Millisecond)
}

func TestGetSessionMissingIsNotAnError(t *testing.T) {
	svc, _, _ := newTestSessionService(t)

	session, err := svc.GetSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGetMessagesForUnknownSession(t *testing.T) {
	svc, _, _ := newTestSessionService(t)

	messages, err := svc.GetMessages(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestAppendMessageUnknownSession(t *testing.T) {
	svc, _, _ := newTestSessionService(t)

	_, err := svc.AppendMessage(context.Background(), uuid.New(), userMsg("halo"))
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestTitleSetByFirstUserMessageOnly(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	defaultTitle := session.Title

	_, err = svc.AppendMessage(ctx, session.Id, botMsg("Selamat datang di NutriLokal!"))
	require.NoError(t, err)

	got, err := svc.GetSession(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, defaultTitle, got.Title, "assistant messages never set the title")

	_, err = svc.AppendMessage(ctx, session.Id, userMsg("Apa manfaat tempe?"))
	require.NoError(t, err)

	got, err = svc.GetSession(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, "Apa manfaat tempe?", got.Title)

	_, err = svc.AppendMessage(ctx, session.Id, userMsg("Bagaimana dengan kangkung dan bayam untuk anemia?"))
	require.NoError(t, err)

	got, err = svc.GetSession(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, "Apa manfaat tempe?", got.Title)
}

func TestTitleTruncation(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.AppendMessage(ctx, session.Id, userMsg("Bagaimana dengan kangkung dan bayam untuk anemia?"))
	require.NoError(t, err)

	got, err := svc.GetSession(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, "Bagaimana dengan kan...", got.Title)
}

func TestTitleFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short", "Apa manfaat tempe?", "Apa manfaat tempe?"},
		{"exactly twenty", "12345678901234567890", "12345678901234567890"},
		{"twenty one", "123456789012345678901", "12345678901234567890..."},
		{"counts characters not bytes", "ééééééééééééééééééééé", "éééééééééééééééééééé..."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titleFromContent(tt.content))
		})
	}
}

func TestUpdatedAtTracksLatestMessage(t *testing.T) {
	svc, clock, _ := newTestSessionService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	first, err := svc.AppendMessage(ctx, session.Id, userMsg("pertama"))
	require.NoError(t, err)

	// Clock steps backwards: the message must not predate the session's activity.
	clock.Set(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	second, err := svc.AppendMessage(ctx, session.Id, botMsg("kedua"))
	require.NoError(t, err)
	assert.True(t, second.Timestamp.Equal(first.Timestamp))

	got, err := svc.GetSession(ctx, session.Id)
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx, session.Id)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Equal timestamps fall back to append order.
	assert.Equal(t, first.Id, messages[0].Id)
	assert.Equal(t, second.Id, messages[1].Id)

	for _, m := range messages {
		assert.False(t, m.Timestamp.After(got.UpdatedAt))
	}
	assert.True(t, got.UpdatedAt.Equal(messages[1].Timestamp))
}

func TestMessagesAscendingByTimestamp(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	contents := []string{"satu", "dua", "tiga", "empat"}
	for i, c := range contents {
		_, err := svc.AppendMessage(ctx, session.Id, &dto.AppendMessageRequest{Content: c, IsUser: i%2 == 0})
		require.NoError(t, err)
	}

	messages, err := svc.GetMessages(ctx, session.Id)
	require.NoError(t, err)
	require.Len(t, messages, len(contents))
	for i, m := range messages {
		assert.Equal(t, contents[i], m.Content)
		assert.Equal(t, session.Id, m.ChatSessionId)
		if i > 0 {
			assert.True(t, m.Timestamp.After(messages[i-1].Timestamp))
		}
	}
}

func TestImageReferenceIsStored(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	url := "/uploads/images/abc.jpg"
	msg, err := svc.AppendMessage(ctx, session.Id, &dto.AppendMessageRequest{Content: "[Gambar makanan]", IsUser: true, ImageUrl: &url})
	require.NoError(t, err)
	require.NotNil(t, msg.ImageUrl)

	messages, err := svc.GetMessages(ctx, session.Id)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].ImageUrl)
	assert.Equal(t, url, *messages[0].ImageUrl)
}

func TestImageReferenceOnlyOnUserMessages(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	url := "/uploads/images/soto.png"
	_, err = svc.AppendMessage(ctx, session.Id, &dto.AppendMessageRequest{Content: "Ini soto.", IsUser: false, ImageUrl: &url})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	messages, err := svc.GetMessages(ctx, session.Id)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestListSessionsMostRecentlyUpdatedFirst(t *testing.T) {
	svc, _, pub := newTestSessionService(t)
	ctx := context.Background()

	a, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	b, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	c, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, []uuid.UUID{c.Id, b.Id, a.Id}, ids(sessions))

	_, err = svc.AppendMessage(ctx, a.Id, userMsg("Apa manfaat tempe?"))
	require.NoError(t, err)

	sessions, err = svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.Id, c.Id, b.Id}, ids(sessions))
	assert.Eventually(t, func() bool { return pub.has(events.ChatSessionUpdated) }, time.Second, 10*time.Millisecond)
}

func TestDeleteSessionCascades(t *testing.T) {
	svc, _, pub := newTestSessionService(t)
	ctx := context.Background()

	keep, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, keep.Id, userMsg("tetap"))
	require.NoError(t, err)

	doomed, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, doomed.Id, userMsg("hapus"))
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, doomed.Id, botMsg("oke"))
	require.NoError(t, err)

	deleted, err := svc.DeleteSession(ctx, doomed.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	messages, err := svc.GetMessages(ctx, doomed.Id)
	require.NoError(t, err)
	assert.Empty(t, messages)

	session, err := svc.GetSession(ctx, doomed.Id)
	require.NoError(t, err)
	assert.Nil(t, session)

	remaining, err := svc.GetMessages(ctx, keep.Id)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	// Idempotent.
	deleted, err = svc.DeleteSession(ctx, doomed.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Eventually(t, func() bool { return pub.has(events.ChatSessionDeleted) }, time.Second, 10*time.Millisecond)
}

func TestClearSessions(t *testing.T) {
	svc, _, pub := newTestSessionService(t)
	ctx := context.Background()

	var created []uuid.UUID
	for i := 0; i < 3; i++ {
		s, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		_, err = svc.AppendMessage(ctx, s.Id, userMsg("pesan"))
		require.NoError(t, err)
		created = append(created, s.Id)
	}

	require.NoError(t, svc.ClearSessions(ctx))

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	for _, id := range created {
		messages, err := svc.GetMessages(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, messages)
	}

	assert.Eventually(t, func() bool { return pub.has(events.ChatHistoryCleared) }, time.Second, 10*time.Millisecond)
}

func TestStorageFailureIsWrapped(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewChatSessionService(unitofwork.NewRepositoryFactory(db), nil, logger.NewNopLogger(), wib)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.CreateSession(context.Background())
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)

	_, err = svc.ListSessions(context.Background())
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
}

func ids(sessions []*dto.ChatSessionResponse) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Id)
	}
	return out
}
