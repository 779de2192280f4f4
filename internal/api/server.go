package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"parkify/internal/cache"
	"parkify/internal/config"
	"parkify/internal/database"
	"parkify/internal/handlers"
	"parkify/internal/jobs"
	"parkify/internal/messaging"
	"parkify/internal/metrics"
	"parkify/internal/middleware"
	"parkify/internal/pricing"
	"parkify/internal/repository"
	"parkify/internal/search"
	"parkify/internal/service"
	"parkify/internal/store"

	"github.com/gin-gonic/gin"
)

// Server представляет HTTP сервер API
type Server struct {
	router *gin.Engine
	config *config.Config
	kv     store.KV
	// closeStore is nil when the store is owned by the caller
	closeStore func() error
	nats       *messaging.NATSClient
	search     *search.ElasticsearchClient
	metrics    *metrics.Metrics
	statsJob   *jobs.StatsRefreshJob
	services   *service.Services
	repos      *repository.Repositories
}

// NewServer создает сервер и подключает хранилище, выбранное в конфигурации
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{config: cfg}

	kv, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	s.closeStore = closeStore

	if err := s.init(kv); err != nil {
		s.Cleanup()
		return nil, err
	}
	return s, nil
}

// NewServerWithStore создает сервер поверх готового хранилища
func NewServerWithStore(cfg *config.Config, kv store.KV) (*Server, error) {
	s := &Server{config: cfg}
	if err := s.init(kv); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenStore открывает хранилище ключ-значение, выбранное в конфигурации.
// Возвращаемая функция закрывает соединение.
func OpenStore(cfg *config.Config) (store.KV, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case "", "memory":
		slog.Info("Using in-memory storage")
		return store.NewMemory(), noop, nil

	case "postgres":
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return database.NewKVStore(db), db.Close, nil

	case "redis", "valkey":
		v, err := cache.NewValkeyStore(cfg.Cache)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to valkey: %w", err)
		}
		return v, v.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (s *Server) init(kv store.KV) error {
	cfg := s.config
	s.kv = kv

	// Устанавливаем режим Gin
	gin.SetMode(cfg.GinMode)
	if err := handlers.ConfigureBinding(); err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	// Загружаем данные из хранилища
	repos, err := repository.NewRepositories(context.Background(), kv)
	if err != nil {
		return fmt.Errorf("failed to load repositories: %w", err)
	}
	s.repos = repos

	opts := service.Options{
		Pricing: pricing.NewCalculator(pricing.ParseMode(cfg.PricingMode)),
		Auth: service.AuthOptions{
			Secret:     []byte(cfg.Auth.JWTSecret),
			SessionTTL: cfg.Auth.SessionTTL,
		},
		Location: loc,
	}

	if cfg.MetricsEnabled {
		s.metrics = metrics.New()
		opts.Metrics = s.metrics
	}

	// Подключаемся к NATS
	if cfg.NATS.Enabled {
		natsClient, err := messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		s.nats = natsClient
		opts.Publisher = natsClient
	}

	var searcher handlers.Searcher
	if cfg.SearchEnabled {
		esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			return fmt.Errorf("failed to create Elasticsearch client: %w", err)
		}
		s.search = esClient
		searcher = esClient
	}

	services, err := service.NewServices(repos, opts)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}
	s.services = services

	// Создаем роутер
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	if s.metrics != nil {
		router.Use(middleware.Metrics(s.metrics))
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	s.router = router

	h := handlers.NewHandlers(services, searcher, s.metrics)
	h.RegisterRoutes(router, services.Auth)
	router.GET("/health", s.healthCheck)

	return nil
}

// StartJobs запускает фоновые задачи сервера
func (s *Server) StartJobs() error {
	if s.metrics == nil || s.config.StatsRefreshSeconds <= 0 {
		return nil
	}

	loc, err := time.LoadLocation(s.config.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.config.Timezone, err)
	}

	job := jobs.NewStatsRefreshJob(s.services.Statistics, s.metrics,
		time.Duration(s.config.StatsRefreshSeconds)*time.Second, loc)
	if err := job.Start(); err != nil {
		return err
	}
	s.statsJob = job
	return nil
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	code, status, storage := http.StatusOK, "ok", "ok"
	if p, ok := s.kv.(store.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			slog.Error("Storage health check failed", "error", err)
			code, status, storage = http.StatusServiceUnavailable, "degraded", "unavailable"
		}
	}

	body := gin.H{
		"status":  status,
		"service": "parkify-api",
		"storage": storage,
		"backend": s.config.StorageBackend,
	}

	// Поиск не влияет на код ответа, API работает и без него
	if s.search != nil {
		body["search"] = "ok"
		if err := s.search.HealthCheck(ctx); err != nil {
			slog.Warn("Search health check failed", "error", err)
			body["search"] = "unavailable"
		}
	}

	c.JSON(code, body)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Services возвращает сервисы приложения
func (s *Server) Services() *service.Services {
	return s.services
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if s.statsJob != nil {
		if err := s.statsJob.Stop(); err != nil {
			slog.Error("Error stopping stats job", "error", err)
			keep(err)
		}
	}

	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			keep(err)
		}
	}

	if s.closeStore != nil {
		if err := s.closeStore(); err != nil {
			slog.Error("Error closing storage connection", "error", err)
			keep(err)
		}
	}

	return firstErr
}
