package protocal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"storefront/configs"
	httpAdapter "storefront/internal/adapters/input/http"
	"storefront/internal/adapters/output/assistant"
	"storefront/internal/adapters/output/audio"
	"storefront/internal/adapters/output/speech"
	"storefront/internal/application"
	"storefront/pkg/log"
	"storefront/pkg/validator"
)

// ServeHTTP func
func ServeHTTP(opts Options) error {
	cfg, closeLog, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	deps, err := connectStorage(cfg)
	if err != nil {
		return err
	}
	defer deps.close()
	if err := deps.migrate(); err != nil {
		return err
	}
	deps.connectConversations(ctx, cfg)
	deps.connectEmbedder(ctx, cfg)

	services, err := newServices(cfg, deps)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:     "Storefront",
		BodyLimit:   10 * 1024 * 1024,
		Immutable:   true,
		JSONEncoder: jsoniter.Marshal,
		JSONDecoder: jsoniter.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: log.RequestIDKey}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowHeaders:     "Origin, Content-Type, Accept,Authorization",
		AllowCredentials: true,
	}))

	hdl := httpAdapter.New(services, deps.ping)
	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)
	hdl.Register(app, httpAdapter.RouteConfig{
		CookieName: cfg.Session.Cookie,
		MaxAgeDays: cfg.Session.MaxAge,
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logrus.Info("Gracefull shut down ...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.Errorf("Error when shutdown server: %v", err)
		}
	}()

	logrus.Infof("Listening on port: %s", cfg.App.Port)
	return app.Listen(":" + cfg.App.Port)
}

// newServices wires the application layer to the selected adapters
func newServices(cfg *configs.Config, deps *dependencies) (httpAdapter.Services, error) {
	client, err := assistant.NewClientAdapter(cfg.Assistant)
	if err != nil {
		return httpAdapter.Services{}, err
	}

	assistantSrv := application.NewAssistantService(
		deps.conversations,
		deps.products,
		client,
		audio.NewBufferRecorder(0),
		speech.NewClientPlayback(cfg.Speech),
		application.AssistantConfig{
			SessionTimeout: time.Duration(cfg.Session.Timeout) * time.Minute,
			MaxTurns:       cfg.Session.MaxTurns,
			CaptureCeiling: time.Duration(cfg.Assistant.CaptureCeiling) * time.Second,
			ContextTurns:   cfg.Assistant.ContextTurns,
			MinAudioBytes:  cfg.Assistant.MinAudioBytes,
		},
	)

	return httpAdapter.Services{
		Catalog:         application.NewCatalogService(deps.products),
		Recommendations: newRecommendationService(cfg, deps),
		Cart:            application.NewCartService(deps.carts, deps.products),
		Checkout:        application.NewCheckoutService(validator.New(), time.Duration(cfg.Checkout.ProcessingDelay)*time.Millisecond),
		Assistant:       assistantSrv,
		Dashboard:       application.NewDashboardService(deps.metrics, assistantSrv),
	}, nil
}

func newRecommendationService(cfg *configs.Config, deps *dependencies) *application.RecommendationService {
	return application.NewRecommendationService(deps.products, deps.embedder, application.RecommendationConfig{
		MatchThreshold: cfg.Recommendation.MatchThreshold,
		MatchCount:     cfg.Recommendation.MatchCount,
		BackfillBatch:  cfg.Recommendation.BackfillBatch,
	})
}
