package bootstrap

import (
	"context"

	"rich-notes-be/internal/config"
	"rich-notes-be/internal/controller"
	"rich-notes-be/internal/handler"
	"rich-notes-be/internal/pkg/logger"
	"rich-notes-be/internal/pkg/serverutils"
	"rich-notes-be/internal/repository/memory"
	"rich-notes-be/internal/repository/unitofwork"
	"rich-notes-be/internal/service"
	"rich-notes-be/internal/websocket"

	pktNats "rich-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	NoteController     controller.INoteController
	NotesSocketHandler *handler.NotesSocketHandler

	// Background services, started by Start
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func() error
}

// NewContainer wires the application. A nil db selects the in-memory store.
// NATS and Redis are optional; when unset or unreachable the server runs
// without them.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Storage
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		uowFactory = unitofwork.NewMemoryRepositoryFactory(memory.NewNoteRepository())
		sysLogger.Info("Bootstrap", "Using in-memory note store", nil)
	}

	// 2. In-process event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	// 3. Cross-service infrastructure
	var eventPublisher service.EventPublisher
	if cfg.Messaging.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Messaging.NatsURL, sysLogger.Zap())
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	rdb := connectRedis(cfg.Messaging.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, rdb.Close)
	}

	// 4. Live updates
	wsLogger := sysLogger
	if cfg.App.SocketLogFilePath != "" {
		wsLogger = logger.NewIsolatedLogger(cfg.App.SocketLogFilePath)
	}
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	publisherService := service.NewPublisherService(cfg.Messaging.NoteChangedTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Messaging.NoteChangedTopic, c.WebSocketHub, wsLogger)

	// 5. Use cases and transport
	noteService := service.NewNoteService(uowFactory, publisherService, eventPublisher, sysLogger)

	c.NoteController = controller.NewNoteController(noteService, serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret))
	c.NotesSocketHandler = handler.NewNotesSocketHandler(c.WebSocketHub, cfg.Auth.JwtSecret, wsLogger)

	return c
}

// Start runs the hub and the change consumer until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("Bootstrap", "Close failed", map[string]interface{}{"error": err})
		}
	}
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using it as an address", map[string]interface{}{"error": err})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, running single instance", map[string]interface{}{"error": err})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
