package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/ashirarif0999-sketch/blueember/internal/application"
	"github.com/ashirarif0999-sketch/blueember/internal/chatbot"
	"github.com/ashirarif0999-sketch/blueember/internal/config"
	"github.com/ashirarif0999-sketch/blueember/internal/kafka"
	"github.com/ashirarif0999-sketch/blueember/internal/logger"
	"github.com/ashirarif0999-sketch/blueember/internal/migrate"
	"github.com/ashirarif0999-sketch/blueember/internal/notify"
	"github.com/ashirarif0999-sketch/blueember/internal/presentation"
	"github.com/ashirarif0999-sketch/blueember/internal/repository"
)

func main() {
	logger.Init()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage: Postgres when configured, in-memory otherwise.
	var blob repository.BlobStore
	if cfg.DB_STRING != "" {
		pool, err := pgxpool.New(ctx, cfg.DB_STRING)
		if err != nil {
			logger.Warn("pgxpool new failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Warn("db ping failed", "err", err)
			os.Exit(1)
		}
		if err := migrate.Up(cfg.DB_STRING); err != nil {
			logger.Warn("migrations failed", "err", err)
			os.Exit(1)
		}
		logger.Info("db connected")
		blob = repository.NewPostgresStore(pool)
	} else {
		logger.Warn("DB_STRING not set, using in-memory storage")
		blob = repository.NewMemoryStore()
	}

	orderStore := repository.NewOrderStore(blob)
	cartStore := repository.NewCartStore(blob)
	notifier := notify.NewFanout(notify.NewLogSink())

	// Kafka is optional: no brokers, no events.
	var events application.EventPublisher
	if cfg.KAFKA_BROKERS != "" {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		events = prod
	}

	// Wiring
	engine := application.NewOrderEngine(orderStore, notifier, events)
	cartSvc := application.NewCartService(cartStore, notifier)
	checkoutSvc := application.NewCheckoutService(cartSvc, engine)
	bot := chatbot.New(cfg.CHAT_API_URL)

	if cfg.KAFKA_BROKERS != "" {
		_, _ = kafka.StartConsumer(ctx, engine, kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		})
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h := presentation.NewHandler(engine, cartSvc, checkoutSvc, bot)
	h.Register(r)

	addr := ":" + cfg.HTTP_PORT
	srv := &http.Server{Addr: addr, Handler: r}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return application.RunStatusWorker(ctx, engine, cfg.SweepInterval)
	})

	g.Go(func() error {
		logger.Info("starting http", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Warn("server exited", "err", err)
		os.Exit(1)
	}
}
