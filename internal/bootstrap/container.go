package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"nutrilokal-be/internal/config"
	"nutrilokal-be/internal/controller"
	"nutrilokal-be/internal/handler"
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/internal/pkg/upload"
	"nutrilokal-be/internal/repository/memory"
	"nutrilokal-be/internal/repository/unitofwork"
	"nutrilokal-be/internal/service"
	"nutrilokal-be/internal/websocket"
	"nutrilokal-be/pkg/events"
	"nutrilokal-be/pkg/llm/factory"
	pktNats "nutrilokal-be/pkg/nats"
	"nutrilokal-be/pkg/whatsapp"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	WhatsAppController  controller.IWhatsAppController
	NutritionController controller.INutritionController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	HistoryEventService *service.HistoryEventService // nil without NATS

	// WebSockets
	HistoryHandler *handler.HistoryHandler
	WebSocketHub   *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	forwardLogger := logger.NewIsolatedLogger(cfg.App.ForwardLogFilePath)

	location, err := time.LoadLocation(cfg.App.TimeZone)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Unknown time zone, falling back to UTC", map[string]interface{}{"time_zone": cfg.App.TimeZone})
		location = time.UTC
	}

	c := &Container{Logger: sysLogger}

	// 2. Forward queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure, all optional
	// A nil *Publisher must not end up inside the events.Publisher interface.
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("Bootstrap", "NATS publisher unavailable, history events disabled", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("Bootstrap", "NATS subscriber unavailable", map[string]interface{}{"error": err.Error()})
		natsSub = nil
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}

	rdb := connectRedis(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// 4. Providers
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		GeminiBaseURL: cfg.Ai.GeminiBaseURL,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		MaxTokens:     cfg.Ai.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{"provider": cfg.Ai.LLMProvider, "model": cfg.Ai.LLMModel})

	fonnte := whatsapp.NewFonnteClient(cfg.WhatsApp.FonnteBaseURL)
	imageStore := upload.NewLocalImageStore(filepath.Join(cfg.App.UploadDir, "images"), "/uploads/images")
	cursors := memory.NewCursorRepository()

	// 5. Services
	sessionService := service.NewChatSessionService(uowFactory, eventPublisher, sysLogger, location)
	publisherService := service.NewPublisherService(cfg.Keys.ForwardTopic, pubSub)
	chatbotService := service.NewChatbotService(
		sessionService,
		llmProvider,
		cursors,
		imageStore,
		publisherService,
		sysLogger,
	)
	whatsAppService := service.NewWhatsAppService(fonnte, forwardLogger)
	nutritionService := service.NewNutritionService()

	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Keys.ForwardTopic, fonnte, forwardLogger)

	// 6. History relay
	c.WebSocketHub = websocket.NewHub(rdb, sysLogger)
	if natsSub != nil {
		c.HistoryEventService = service.NewHistoryEventService(natsSub, c.WebSocketHub, cursors, sysLogger)
	}
	c.HistoryHandler = handler.NewHistoryHandler(c.WebSocketHub, sysLogger)

	// 7. Controllers
	c.ChatController = controller.NewChatController(sessionService, chatbotService)
	c.WhatsAppController = controller.NewWhatsAppController(whatsAppService)
	c.NutritionController = controller.NewNutritionController(nutritionService)

	return c, nil
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) {
	go c.WebSocketHub.Run(ctx)

	go func() {
		if err := c.ConsumerService.Consume(ctx); err != nil {
			c.Logger.Error("Bootstrap", "Forward consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	if c.HistoryEventService != nil {
		if err := c.HistoryEventService.Start(ctx); err != nil {
			c.Logger.Warn("Bootstrap", "History relay not started", map[string]interface{}{"error": err.Error()})
		}
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using it as an address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Redis unavailable, history events stay on this instance", map[string]interface{}{"error": err.Error()})
		rdb.Close()
		return nil
	}
	return rdb
}
