package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"contract-assistant-be/internal/config"
	"contract-assistant-be/internal/controller"
	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/internal/repository/contract"
	"contract-assistant-be/internal/repository/memory"
	redisrepo "contract-assistant-be/internal/repository/redis"
	"contract-assistant-be/internal/service"
	"contract-assistant-be/pkg/assistant/dispatch"
	"contract-assistant-be/pkg/assistant/intent"
	"contract-assistant-be/pkg/assistant/prompt"
	"contract-assistant-be/pkg/assistant/relevance"
	"contract-assistant-be/pkg/assistant/rules"
	"contract-assistant-be/pkg/assistant/session"
	"contract-assistant-be/pkg/llm/factory"

	pktNats "contract-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ContractController controller.IContractController
	SessionController  controller.ISessionController
	InfoController     controller.IInfoController

	// Services (the MCP surface calls these directly)
	ContractService service.IContractService
	SessionService  service.ISessionService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func() error
}

// Option customises the container before it is built.
type Option func(*options)

type options struct {
	logger logger.ILogger
}

// WithLogger replaces the default console+file logger, e.g. for stdio tools that own stdout.
func WithLogger(l logger.ILogger) Option {
	return func(o *options) { o.logger = l }
}

func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Core Facades
	var sysLogger logger.ILogger = o.logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	}
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, sysLogger.Sync, auditLogger.Sync)

	ruleSet := rules.Default()
	if cfg.Assistant.RulesFilePath != "" {
		loaded, err := rules.LoadFile(cfg.Assistant.RulesFilePath)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		ruleSet = loaded
		log.Printf("[INFO] Using rule set from %s", cfg.Assistant.RulesFilePath)
	}
	prompts := prompt.NewBuilder(cfg.Assistant.MaxDocumentChars, cfg.Assistant.Jurisdiction)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, pubSub.Close)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(ctx, factory.Settings{
		Provider:           cfg.Ai.LLMProvider,
		Model:              cfg.Ai.LLMModel,
		GeminiAPIKey:       cfg.Keys.GoogleGemini,
		OllamaBaseURL:      cfg.Ai.OllamaBaseURL,
		HuggingFaceAPIKey:  cfg.Keys.HuggingFace,
		HuggingFaceBaseURL: cfg.Ai.HuggingFaceBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Storage
	sessionRepo, err := c.newSessionRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// 5. Infrastructure
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.App.NatsStream, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	// 6. Services
	sessions := session.NewManager(sessionRepo)
	relevanceFilter := relevance.NewFilter(ruleSet, prompts, llmProvider, sysLogger)
	classifier := intent.NewGuarded(intent.NewLLMClassifier(llmProvider, prompts), ruleSet, sysLogger)
	dispatcher := dispatch.NewDispatcher(sessions, llmProvider, prompts, ruleSet, cfg.Assistant.MaxLineLength, sysLogger)

	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.EventTopic, auditLogger, forwarder, sysLogger)

	c.ContractService = service.NewContractService(
		sessions,
		relevanceFilter,
		classifier,
		dispatcher,
		publisherService,
		cfg.Assistant.MaxUploadBytes,
		sysLogger,
	)
	c.SessionService = service.NewSessionService(sessions, publisherService, sysLogger)

	// 7. Controllers
	c.ContractController = controller.NewContractController(c.ContractService, sysLogger)
	c.SessionController = controller.NewSessionController(c.SessionService)
	c.InfoController = controller.NewInfoController(c.SessionService, cfg.Ai.LLMProvider, cfg.Assistant.Jurisdiction)

	return c, nil
}

func (c *Container) newSessionRepository(ctx context.Context, cfg *config.Config) (contract.ISessionRepository, error) {
	switch cfg.Session.Backend {
	case "memory", "":
		log.Printf("[INFO] Using Session Backend: MEMORY (ttl %s)", cfg.Session.TTL)
		return memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval), nil
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.closers = append(c.closers, rdb.Close)
		log.Printf("[INFO] Using Session Backend: REDIS (ttl %s)", cfg.Session.TTL)
		return redisrepo.NewSessionRepository(rdb, cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.Session.Backend)
	}
}

// Close releases infrastructure in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		// Sync on stdout/stderr reports EINVAL on some platforms; nothing to do about it.
		_ = c.closers[i]()
	}
}
