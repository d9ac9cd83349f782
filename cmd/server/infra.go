package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"voltid/internal/media/objectstore"
	"voltid/internal/media/vision"
	"voltid/internal/notification"
	"voltid/internal/platform/config"
	"voltid/internal/platform/database"
	redisplatform "voltid/internal/platform/redis"
	"voltid/pkg/platform/audit/kafka"
	"voltid/pkg/platform/circuit"
	"voltid/pkg/platform/tx"
)

// infra holds the external systems the services run on. Every optional
// backend falls back to an in-process stand-in when it is not configured,
// which only Validate-approved development settings allow.
type infra struct {
	db     *sqlx.DB
	redis  *redisplatform.Client
	runner tx.Runner
	// otpRunner begins READ COMMITTED transactions for the verification engine.
	otpRunner tx.Runner
	objects   objectstore.Store
	vision    vision.Model
	sms       notification.SMSSender
	email     notification.EmailSender
	producer  *kafka.Producer
	registry  *prometheus.Registry

	closers []func() error
}

func buildInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	in := &infra{registry: prometheus.NewRegistry()}
	in.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	steps := []func(context.Context, config.Config, *slog.Logger) error{
		in.openDatabase,
		in.openRedis,
		in.openObjectStore,
		in.openVision,
		in.openNotifications,
		in.openAuditProducer,
	}
	for _, step := range steps {
		if err := step(ctx, cfg, log); err != nil {
			in.Close()
			return nil, err
		}
	}
	return in, nil
}

func (in *infra) openDatabase(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		in.runner = tx.NewInMemory()
		in.otpRunner = in.runner
		return nil
	}
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	in.closers = append(in.closers, db.Close)
	if cfg.Database.BootstrapSchema {
		if err := database.Bootstrap(ctx, db); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
		log.Info("database schema bootstrapped")
	}
	in.db = db
	manager := tx.NewManager(db, tx.WithLogger(log))
	in.runner = manager
	in.otpRunner = manager.WithIsolation(sql.LevelReadCommitted)
	return nil
}

func (in *infra) openRedis(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	client, err := redisplatform.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		log.Warn("REDIS_URL not set, rate limits are per process")
		return nil
	}
	in.closers = append(in.closers, client.Close)
	in.redis = client
	return nil
}

func (in *infra) openObjectStore(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.Storage.Endpoint == "" {
		log.Warn("MINIO_URL not set, uploads are held in memory")
		in.objects = objectstore.NewInMemory(cfg.Storage.Bucket)
		return nil
	}
	store, err := objectstore.NewMinIO(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("connect object storage: %w", err)
	}
	in.objects = store
	return nil
}

var errVisionNotConfigured = errors.New("vision model not configured")

const (
	visionFailureThreshold = 5
	visionCooldown         = 30 * time.Second
)

func (in *infra) openVision(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.Vision.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, document and photo checks will fail")
		in.vision = &vision.Static{Err: errVisionNotConfigured}
		return nil
	}
	model, err := vision.NewGemini(ctx, cfg.Vision.GeminiAPIKey, cfg.Vision.Model, in.objects, log)
	if err != nil {
		return fmt.Errorf("init vision model: %w", err)
	}
	in.closers = append(in.closers, model.Close)
	in.vision = vision.NewGuarded(model, circuit.New("gemini",
		circuit.WithFailureThreshold(visionFailureThreshold),
		circuit.WithCooldown(visionCooldown),
	), log)
	return nil
}

func (in *infra) openNotifications(_ context.Context, cfg config.Config, log *slog.Logger) error {
	fallback := notification.LogSender{Logger: log}
	in.sms, in.email = fallback, fallback

	if cfg.Notification.RabbitMQURL != "" {
		sms, err := notification.NewRabbitSMS(cfg.Notification.RabbitMQURL, cfg.Notification.SMSQueue, log)
		if err != nil {
			return fmt.Errorf("connect sms queue: %w", err)
		}
		in.closers = append(in.closers, sms.Close)
		in.sms = sms
	}
	if cfg.Notification.SendGridAPIKey != "" {
		in.email = notification.NewSendGrid(
			cfg.Notification.SendGridAPIKey,
			cfg.Notification.FromEmail,
			cfg.Notification.FromName,
		)
	}
	return nil
}

func (in *infra) openAuditProducer(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if len(cfg.Audit.KafkaBrokers) == 0 {
		log.Warn("KAFKA_BROKERS not set, audit events stay in the outbox")
		return nil
	}
	producer, err := kafka.NewProducer(cfg.Audit.KafkaBrokers, cfg.Audit.Topic)
	if err != nil {
		return fmt.Errorf("init audit producer: %w", err)
	}
	in.closers = append(in.closers, func() error {
		producer.Close()
		return nil
	})

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := producer.EnsureTopic(ctx, 1, 1); err != nil {
		return fmt.Errorf("ensure audit topic: %w", err)
	}
	in.producer = producer
	return nil
}

// Health reports the first unreachable backend.
func (in *infra) Health(ctx context.Context) error {
	if in.db != nil {
		if err := in.db.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if in.redis != nil {
		if err := in.redis.Health(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if in.producer != nil {
		if err := in.producer.Ping(ctx); err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
	}
	return nil
}

// Close releases backends in reverse order of opening.
func (in *infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil {
			slog.Warn("closing backend failed", "error", err)
		}
	}
}
