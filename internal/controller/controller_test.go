package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/internal/pkg/serverutils"
	"nutrilokal-be/internal/pkg/upload"
	"nutrilokal-be/internal/repository/memory"
	"nutrilokal-be/internal/repository/unitofwork"
	"nutrilokal-be/internal/service"
	"nutrilokal-be/internal/testutil"
	"nutrilokal-be/pkg/llm"
	"nutrilokal-be/pkg/whatsapp"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

type stubForwarder struct {
	err error
}

func (s *stubForwarder) Send(ctx context.Context, cfg whatsapp.Config, message string) error {
	return s.err
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app *fiber.App
	llm *stubLLM
	fwd *stubForwarder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := logger.NewNopLogger()

	ts := &testServer{
		llm: &stubLLM{reply: "Gado-gado kaya serat."},
		fwd: &stubForwarder{},
	}

	sessions := service.NewChatSessionService(unitofwork.NewRepositoryFactory(db), nil, log, time.UTC)
	chatbot := service.NewChatbotService(
		sessions,
		ts.llm,
		memory.NewCursorRepository(),
		upload.NewLocalImageStore(t.TempDir(), "/uploads/images"),
		nil,
		log,
	)
	forwardLog := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "forward.log"))

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.FiberErrorHandler})
	api := app.Group("/api")
	NewChatController(sessions, chatbot).RegisterRoutes(api)
	NewWhatsAppController(service.NewWhatsAppService(ts.fwd, forwardLog)).RegisterRoutes(api)
	NewNutritionController(service.NewNutritionService()).RegisterRoutes(api)

	ts.app = app
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, clientId string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if clientId != "" {
		req.Header.Set(serverutils.ClientIdHeader, clientId)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

var errGatewayDown = errors.New("gateway down")
