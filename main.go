package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"porthmadog-rfc/internal/clock"
	"porthmadog-rfc/internal/session"
	"porthmadog-rfc/internal/store"
	"porthmadog-rfc/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

//go:embed templates/* templates/partials/* static/css/*
var content embed.FS

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	runningInLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	if !runningInLambda {
		_ = godotenv.Load(".env", ".env.local")
	}

	templates, err := web.NewTemplates(content)
	if err != nil {
		logger.Error("template parse failed", "error", err)
		os.Exit(1)
	}

	appStore := openStore(logger)

	timeout := session.DefaultTimeout
	if raw := strings.TrimSpace(os.Getenv("SESSION_TIMEOUT_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	clk := clock.New()
	sessionStore := openSessionStore(logger, timeout)
	sessions := session.NewManager(sessionStore, clk, timeout)

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	server := web.NewServer(web.Options{
		Store:     appStore,
		Sessions:  sessions,
		Templates: templates,
		UploadDir: uploadDir,
		Clock:     clk,
		Logger:    logger,
	})

	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		logger.Error("static fs", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	r.Mount("/", server.Routes())

	if runningInLambda {
		logger.Info("starting in lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openStore(logger *slog.Logger) store.Store {
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		pgStore, err := store.NewPostgresStore(dsn, store.PostgresOptions{
			MigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
		})
		if err != nil {
			logger.Error("postgres store", "error", err)
			os.Exit(1)
		}
		return pgStore
	}
	if dbPath := strings.TrimSpace(os.Getenv("DB_PATH")); dbPath != "" {
		sqliteStore, err := store.NewSQLiteStore(dbPath, store.SQLiteOptions{
			MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
		})
		if err != nil {
			logger.Error("sqlite store", "error", err)
			os.Exit(1)
		}
		return sqliteStore
	}
	logger.Warn("no database configured, using in-memory store")
	return store.NewMemoryStore()
}

func openSessionStore(logger *slog.Logger, timeout time.Duration) session.Store {
	if url := strings.TrimSpace(os.Getenv("REDIS_URL")); url != "" {
		redisStore, err := session.NewRedisStore(url, timeout)
		if err != nil {
			logger.Error("redis session store", "error", err)
			os.Exit(1)
		}
		return redisStore
	}
	return session.NewMemoryStore()
}
