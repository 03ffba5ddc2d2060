package main

import (
	"context"
	"fmt"
	"time"

	"github.com/studio101-core/server/internal/agent/graph"
	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/chatlog"
	"github.com/studio101-core/server/internal/httpapi"
	"github.com/studio101-core/server/internal/order"
	"github.com/studio101-core/server/internal/payment"
	"github.com/studio101-core/server/internal/storage/postgres"
	logx "github.com/studio101-core/server/pkg/logger"
	pkgredis "github.com/studio101-core/server/pkg/redis"
	"github.com/studio101-core/server/pkg/retry"
)

// AppConfig defines all configurable parameters of the server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	HTTP     httpapi.ServerConfig
	Redis    pkgredis.Config
	Postgres postgres.Config

	// AutoMigrate applies pending migrations on startup.
	AutoMigrate bool `envconfig:"DATABASE_AUTO_MIGRATE" default:"false"`

	// LLM provider. Without a key general chat answers with the error message.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	ResponseModel  model.ResponseModelConfig
	ResponsePrompt model.ResponsePromptConfig
	Conversation   model.ConversationConfig

	Sessions       assistant.RegistryConfig
	VocabularyFile string `envconfig:"ASSISTANT_VOCABULARY_FILE"`
	Orders         order.Config
	Toss           payment.TossConfig

	ChatlogMaxAttempts    int `envconfig:"CHATLOG_MAX_ATTEMPTS" default:"3"`
	CompletionMaxAttempts int `envconfig:"COMPLETION_MAX_ATTEMPTS" default:"2"`
}

type app struct {
	catalog  *catalog.Catalog
	sessions *assistant.Registry
	router   *assistant.Router
	orders   *order.Service
	ledger   order.Ledger
	now      func() time.Time
	closers  []func() error
}

func newApp(ctx context.Context, cfg AppConfig) (_ *app, err error) {
	a := &app{catalog: catalog.Default(), now: time.Now}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	vocabCfg, err := assistant.LoadVocabularyConfig(cfg.VocabularyFile)
	if err != nil {
		return nil, err
	}
	vocab, err := assistant.NewVocabulary(vocabCfg, a.catalog.All())
	if err != nil {
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}

	rdb, err := cfg.Redis.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialise redis: %w", err)
	}
	a.closers = append(a.closers, rdb.Close)
	logx.Info().Msg("connected to redis")

	history := chatlog.NewRedisRepository(rdb, cfg.Conversation.TTL)
	sinks := []chatlog.Sink{history}

	if cfg.Postgres.Enabled() {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if cfg.AutoMigrate {
			if err := postgres.Migrate(db); err != nil {
				return nil, err
			}
		}
		store := postgres.NewStore(db)
		a.ledger = store
		sinks = append(sinks, store)
	} else {
		logx.Warn().Msg("DATABASE_URL not set, payments are kept in memory")
		a.ledger = order.NewMemoryLedger()
	}

	deps := order.Deps{
		Pending:  order.NewRedisPendingStore(rdb),
		Payments: a.ledger,
		Stock:    a.ledger,
	}
	if cfg.Toss.SecretKey != "" {
		toss, err := payment.NewTossClient(cfg.Toss)
		if err != nil {
			return nil, err
		}
		deps.Initiator = toss
		deps.Confirmer = toss
	} else {
		logx.Warn().Str("success_url", cfg.Toss.SuccessURL).Msg("TOSS_SECRET_KEY not set, using local checkout")
		deps.Initiator = payment.NewLocalCheckout(cfg.Toss.SuccessURL)
	}
	a.orders, err = order.NewService(cfg.Orders, deps)
	if err != nil {
		return nil, err
	}

	routerDeps := assistant.Deps{
		Catalog:         a.catalog,
		Vocabulary:      vocab,
		Orders:          a.orders,
		Recorder:        chatlog.NewRecorder(retry.Config{MaxAttempts: cfg.ChatlogMaxAttempts}, sinks...),
		CompletionRetry: retry.Config{MaxAttempts: cfg.CompletionMaxAttempts},
	}
	if cfg.APIKey != "" {
		runner, err := graph.BuildResponseGraph(ctx, graph.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			ResponseModel:  cfg.ResponseModel,
			ResponsePrompt: cfg.ResponsePrompt,
			Conversation:   cfg.Conversation,
			History:        history,
			Catalog:        a.catalog,
		})
		if err != nil {
			return nil, fmt.Errorf("build response graph: %w", err)
		}
		routerDeps.Completer = runner
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set, general chat is disabled")
	}

	a.router, err = assistant.NewRouter(routerDeps)
	if err != nil {
		return nil, err
	}
	a.sessions = assistant.NewRegistry(cfg.Sessions.IdleTTL)
	return a, nil
}

// Close releases connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logx.Warn().Err(err).Msg("close failed")
		}
	}
	a.closers = nil
}
