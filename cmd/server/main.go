package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/Hosi121/Bansho-sub000/internal/auth"
	"github.com/Hosi121/Bansho-sub000/internal/cache"
	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/export"
	"github.com/Hosi121/Bansho-sub000/internal/handler"
	"github.com/Hosi121/Bansho-sub000/internal/mailer"
	"github.com/Hosi121/Bansho-sub000/internal/middleware"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
	postgresDocsys "github.com/Hosi121/Bansho-sub000/internal/repository/postgres/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/service/ai"
	serviceAuth "github.com/Hosi121/Bansho-sub000/internal/service/auth"
	serviceDocsys "github.com/Hosi121/Bansho-sub000/internal/service/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/service/docsystem/converter"
	"github.com/Hosi121/Bansho-sub000/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Log to stdout, and to a rotating file when LOG_DIR is set
	var logOut io.Writer
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}
	logger := config.NewLogger(cfg.Environment, logOut)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		logger.Info("schema ready")
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	resetRepo := postgres.NewPasswordResetRepository(repoConfig)
	docRepo := postgresDocsys.NewDocumentRepository(repoConfig)
	folderRepo := postgresDocsys.NewFolderRepository(repoConfig)
	tagRepo := postgresDocsys.NewTagRepository(repoConfig)
	shareRepo := postgresDocsys.NewShareRepository(repoConfig)
	versionRepo := postgresDocsys.NewVersionRepository(repoConfig)
	imageRepo := postgresDocsys.NewImageRepository(repoConfig)
	edgeRepo := postgresDocsys.NewEdgeRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Infrastructure
	var relationCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		relationCache = redisCache
		logger.Info("redis cache enabled", "addr", cfg.RedisAddr)
	}

	var blobs storage.BlobStore
	var uploads http.Handler
	switch cfg.StorageBackend {
	case "gcs":
		gcs, err := storage.NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			log.Fatalf("Failed to create GCS client: %v", err)
		}
		defer gcs.Close()
		blobs = gcs
	case "local":
		local, err := storage.NewLocal(cfg.UploadDir, cfg.UploadBaseURL)
		if err != nil {
			log.Fatalf("Failed to create upload directory: %v", err)
		}
		blobs = local
		uploads = http.StripPrefix("/uploads/", local.Handler())
	default:
		log.Fatalf("Unknown STORAGE_BACKEND %q (use local or gcs)", cfg.StorageBackend)
	}
	logger.Info("blob storage ready", "backend", cfg.StorageBackend)

	var mail mailer.Mailer = mailer.NewLogMailer(logger)
	if cfg.ResendAPIKey != "" {
		mail = mailer.NewResend(cfg.ResendAPIKey, cfg.FromEmail)
	} else {
		logger.Warn("RESEND_API_KEY not set, password reset mails are only logged")
	}

	prompts, err := config.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		log.Fatalf("Failed to load prompts: %v", err)
	}
	var completer ai.ChatCompleter
	if cfg.AIEnabled() {
		completer = ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		logger.Info("AI enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Warn("OPENAI_API_KEY not set, AI endpoints run in fallback mode")
	}

	// Services
	authorizer := serviceAuth.NewShareAuthorizer(docRepo, shareRepo)
	validator := serviceDocsys.NewResourceValidator(folderRepo)
	contentAnalyzer := serviceDocsys.NewContentAnalyzer()

	authService := serviceAuth.NewAuthService(userRepo, resetRepo, txManager, tokens, mail, cfg.AppURL, logger)
	userService := serviceAuth.NewUserService(userRepo, blobs, logger)
	docService := serviceDocsys.NewDocumentService(docRepo, tagRepo, edgeRepo, txManager, contentAnalyzer, authorizer, validator, logger)
	folderService := serviceDocsys.NewFolderService(folderRepo, docRepo, validator, logger)
	treeService := serviceDocsys.NewTreeService(folderRepo, docRepo, logger)
	tagService := serviceDocsys.NewTagService(tagRepo, txManager, logger)
	trashService := serviceDocsys.NewTrashService(docRepo, shareRepo, versionRepo, imageRepo, edgeRepo, txManager, blobs, logger)
	shareService := serviceDocsys.NewShareService(shareRepo, userRepo, authorizer, logger)
	versionService := serviceDocsys.NewVersionService(versionRepo, docRepo, txManager, contentAnalyzer, authorizer, logger)
	imageService := serviceDocsys.NewImageService(imageRepo, blobs, authorizer, logger)
	linkService := serviceDocsys.NewLinkService(docRepo, authorizer, logger)
	searchService := serviceDocsys.NewSearchService(docRepo, logger)
	importService := serviceDocsys.NewImportService(docService, converter.NewRegistry(), validator, logger)
	exportService := serviceDocsys.NewExportService(authorizer, export.PDFRenderer{FontFile: cfg.PDFFontFile}, logger)
	graphService := serviceDocsys.NewGraphService(docRepo, edgeRepo, logger)
	relationService := ai.NewRelationService(docRepo, edgeRepo, completer, relationCache, prompts, cfg.OpenAIModel, logger)
	askService := ai.NewAskService(docRepo, completer, prompts, cfg.OpenAIModel, logger)

	logger.Info("services initialized")

	handlers := &handler.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Users:    handler.NewUserHandler(userService, logger),
		Docs:     handler.NewDocumentHandler(docService, logger),
		Trash:    handler.NewTrashHandler(trashService, logger),
		Search:   handler.NewSearchHandler(searchService, logger),
		Import:   handler.NewImportHandler(importService, exportService, logger),
		Images:   handler.NewImageHandler(imageService, logger),
		Shares:   handler.NewShareHandler(shareService, logger),
		Versions: handler.NewVersionHandler(versionService, logger),
		Folders:  handler.NewFolderHandler(folderService, logger),
		Tree:     handler.NewTreeHandler(treeService, logger),
		Tags:     handler.NewTagHandler(tagService, logger),
		Links:    handler.NewLinkHandler(linkService, logger),
		Graph:    handler.NewGraphHandler(graphService, relationService, askService, logger),
	}

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	if uploads != nil {
		mux.Handle("GET /uploads/", uploads)
	}
	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRateLimit, int(cfg.AuthRateLimit*2))
	handlers.Register(mux, authLimiter.Limit)

	// Build middleware chain
	// Order: CORS → Recovery → Observe → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(tokens, middleware.PublicPaths)(h)
	h = middleware.Observe(logger, mux)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
