package implementation

import (
	"context"
	"testing"
	"time"

	"nutrilokal-be/internal/entity"
	"nutrilokal-be/internal/repository/specification"
	"nutrilokal-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, ctx context.Context, repo interface {
	Create(context.Context, *entity.ChatSession) error
}, updatedAt time.Time) *entity.ChatSession {
	t.Helper()
	s := &entity.ChatSession{Id: uuid.New(), Title: "Chat 1/3/2025", CreatedAt: updatedAt, UpdatedAt: updatedAt}
	require.NoError(t, repo.Create(ctx, s))
	return s
}

func TestChatSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewChatSessionRepository(db)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	older := seedSession(t, ctx, repo, base)
	newer := seedSession(t, ctx, repo, base.Add(time.Minute))

	t.Run("FindAll orders by latest activity", func(t *testing.T) {
		all, err := repo.FindAll(ctx, specification.MostRecentlyUpdated{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, newer.Id, all[0].Id)
	})

	t.Run("Update keeps caller's updated_at", func(t *testing.T) {
		older.Title = "Apa itu rendang?"
		older.UpdatedAt = base.Add(time.Hour)
		require.NoError(t, repo.Update(ctx, older))

		got, err := repo.FindOne(ctx, specification.ByID{ID: older.Id})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Apa itu rendang?", got.Title)
		assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))
	})

	t.Run("FindOne returns nil for unknown id", func(t *testing.T) {
		got, err := repo.FindOne(ctx, specification.ByID{ID: uuid.New()})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete reports whether a row went away", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, newer.Id)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, newer.Id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestChatMessageRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	sessions := NewChatSessionRepository(db)
	messages := NewChatMessageRepository(db)

	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	session := seedSession(t, ctx, sessions, at)
	other := seedSession(t, ctx, sessions, at)

	// Same timestamp: sequence decides the order.
	for i, content := range []string{"halo", "Selamat datang", "resep soto?"} {
		require.NoError(t, messages.Create(ctx, &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			Content:       content,
			IsUser:        i != 1,
			Timestamp:     at,
			Sequence:      int64(i + 1),
		}))
	}
	require.NoError(t, messages.Create(ctx, &entity.ChatMessage{
		Id: uuid.New(), ChatSessionId: other.Id, Content: "lain", IsUser: true, Timestamp: at, Sequence: 1,
	}))

	filter := specification.ByChatSessionID{ChatSessionID: session.Id}

	all, err := messages.FindAll(ctx, filter, specification.ConversationOrder{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "halo", all[0].Content)
	assert.Equal(t, "resep soto?", all[2].Content)

	userCount, err := messages.Count(ctx, filter, specification.UserAuthored{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, userCount)

	require.NoError(t, messages.DeleteByChatSessionId(ctx, session.Id))
	remaining, err := messages.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, remaining)

	require.NoError(t, messages.DeleteAll(ctx))
	remaining, err = messages.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}
