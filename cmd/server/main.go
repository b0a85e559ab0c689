package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"article_board/internal/config"
	"article_board/internal/domain"
	"article_board/internal/publisher"
	"article_board/internal/server"
	"article_board/internal/service"
	"article_board/internal/storage/memory"
	"article_board/internal/storage/postgres"
	"article_board/internal/transport/rest"
	"article_board/internal/transport/web"
	"article_board/migrations"
)

type store interface {
	service.ArticleStore
	server.Pinger
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	routes := flag.Bool("routes", false, "print router documentation and exit")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		articles  store
		txManager service.TransactionManager
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		articles = memory.NewArticleStore()
		txManager = memory.NewTransactionManager()
		logger.Info("using in-memory storage")
	default:
		db, err := connectDatabase(cfg, logger)
		if err != nil {
			logger.Error("failed to set up database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		articles = postgres.NewArticleStore(db)
		txManager = postgres.NewTransactionManager(db)
	}

	// a nil *RabbitMQ must not reach the service as a non-nil interface
	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	articleService := service.NewArticleService(articles, txManager, events, logger)

	if n, err := articleService.Seed(ctx, seedForms(cfg.Seed)); err != nil {
		logger.Error("failed to seed articles", "error", err, "created", n)
		os.Exit(1)
	}

	pages, err := web.NewHandler(articleService, logger)
	if err != nil {
		logger.Error("failed to load page templates", "error", err)
		os.Exit(1)
	}

	router := server.NewRouter(rest.NewHandler(articleService, logger), pages, logger)

	if *routes {
		fmt.Println(server.RoutesDoc(router))
		return
	}

	srv := server.New(cfg.HTTP, router, server.NewDiagRouter(articles), logger)

	logger.Info("starting article board",
		"addr", cfg.HTTP.Addr,
		"diag_addr", cfg.HTTP.DiagAddr,
		"storage", cfg.Storage.Driver,
		"events", cfg.RabbitMQ.Enabled,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}

func connectDatabase(cfg *config.Config, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)

	if cfg.Storage.ShouldMigrate() {
		if err := postgres.Migrate(db.DB, migrations.FS, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

func seedForms(seed []config.SeedArticle) []domain.ArticleForm {
	forms := make([]domain.ArticleForm, 0, len(seed))
	for _, s := range seed {
		forms = append(forms, domain.ArticleForm{Title: s.Title, Content: s.Content})
	}
	return forms
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
