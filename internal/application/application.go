package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/areeshaabbas/inquiry-service/internal/config"
	"github.com/areeshaabbas/inquiry-service/internal/database"
	"github.com/areeshaabbas/inquiry-service/internal/email"
	"github.com/areeshaabbas/inquiry-service/internal/handler"
	"github.com/areeshaabbas/inquiry-service/internal/kafka"
	"github.com/areeshaabbas/inquiry-service/internal/notify"
	"github.com/areeshaabbas/inquiry-service/internal/ratelimit"
	"github.com/areeshaabbas/inquiry-service/internal/router"
	"github.com/areeshaabbas/inquiry-service/internal/service"
)

// API — приложение режима api: HTTP-сервер плюс фоновый диспетчер уведомлений.
type API struct {
	cfg        *config.Config
	httpSrv    *http.Server
	dispatcher *notify.Dispatcher
	producer   *kafka.Producer
}

// NewAPI собирает приложение: миграции, база, сервис, лимитер, почта, роутер.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	svc := service.NewInquiryService(db)
	mailer := email.NewClient(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.EmailFrom)
	dispatcher := notify.New(svc, mailer, cfg.OwnerEmail)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicInquiry)

	limiter, err := buildLimiter(cfg)
	if err != nil {
		return nil, err
	}

	mux := router.New(router.Deps{
		Inquiry:   handler.NewInquiryHandler(svc, dispatcher, producer),
		Admin:     handler.NewAdminHandler(svc, producer),
		Limiter:   limiter,
		JWTSecret: cfg.JWTSecret,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:        cfg,
		httpSrv:    httpSrv,
		dispatcher: dispatcher,
		producer:   producer,
	}, nil
}

// buildLimiter выбирает реализацию лимитера: Redis, если задан REDIS_URL
// (общий счётчик для нескольких инстансов), иначе память процесса.
func buildLimiter(cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.RedisURL == "" {
		return ratelimit.NewMemory(cfg.TrackRateLimit, cfg.TrackRateWindow), nil
	}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return ratelimit.NewRedis(redis.NewClient(opt), cfg.TrackRateLimit, cfg.TrackRateWindow), nil
}

// Run запускает HTTP-сервер и диспетчер, блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.httpSrv.Addr)
	log.Printf("  Swagger UI:    %s/swagger", base)
	log.Printf("  Swagger spec:  %s/swagger/openapi.json", base)
	log.Printf("  Health:        %s/health", base)
	log.Printf("  Ready:         %s/ready", base)
	log.Printf("  Metrics:       %s/metrics", base)
	log.Printf("  API v1:        %s/api/v1/", base)

	a.dispatcher.Start(ctx)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		log.Printf("kafka: close: %v", err)
	}
	return nil
}
