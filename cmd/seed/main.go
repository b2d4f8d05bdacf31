package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Hosi121/Bansho-sub000/internal/auth"
	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
	postgresDocsys "github.com/Hosi121/Bansho-sub000/internal/repository/postgres/docsystem"
	serviceAuth "github.com/Hosi121/Bansho-sub000/internal/service/auth"
	serviceDocsys "github.com/Hosi121/Bansho-sub000/internal/service/docsystem"
)

type env struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

func connect(ctx context.Context) (*env, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := config.NewLogger(cfg.Environment, nil)

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &env{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		tables: postgres.NewTableNames(cfg.TablePrefix),
	}, nil
}

func main() {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Manage the Bansho database schema and demo data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(schemaCmd(), dropCmd(), demoCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create tables and indexes if they are missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := connect(ctx)
			if err != nil {
				return err
			}
			defer e.pool.Close()

			if err := postgres.EnsureSchema(ctx, e.pool, e.tables, e.cfg.TablePrefix); err != nil {
				return err
			}
			e.logger.Info("schema ready", "prefix", e.cfg.TablePrefix)
			return nil
		},
	}
}

func dropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop",
		Short: "Drop every table (refused in prod)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := connect(ctx)
			if err != nil {
				return err
			}
			defer e.pool.Close()

			if e.cfg.Environment == "prod" {
				return errors.New("refusing to drop tables in the prod environment")
			}
			if err := postgres.DropSchema(ctx, e.pool, e.tables); err != nil {
				return err
			}
			e.logger.Warn("tables dropped", "prefix", e.cfg.TablePrefix)
			return nil
		},
	}
}

func demoCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Create a demo user with a small linked notebook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := connect(ctx)
			if err != nil {
				return err
			}
			defer e.pool.Close()

			if err := postgres.EnsureSchema(ctx, e.pool, e.tables, e.cfg.TablePrefix); err != nil {
				return err
			}
			return seedDemo(ctx, e, email, password, name)
		},
	}
	cmd.Flags().StringVar(&email, "email", "demo@example.com", "demo account e-mail")
	cmd.Flags().StringVar(&password, "password", "demo-password", "demo account password")
	cmd.Flags().StringVar(&name, "name", "Demo", "demo account display name")
	return cmd
}

func seedDemo(ctx context.Context, e *env, email, password, name string) error {
	repoConfig := &postgres.RepositoryConfig{Pool: e.pool, Tables: e.tables, Logger: e.logger}
	userRepo := postgres.NewUserRepository(repoConfig)
	docRepo := postgresDocsys.NewDocumentRepository(repoConfig)
	folderRepo := postgresDocsys.NewFolderRepository(repoConfig)
	shareRepo := postgresDocsys.NewShareRepository(repoConfig)
	txManager := postgres.NewTransactionManager(e.pool, e.logger)

	validator := serviceDocsys.NewResourceValidator(folderRepo)
	authorizer := serviceAuth.NewShareAuthorizer(docRepo, shareRepo)
	folderService := serviceDocsys.NewFolderService(folderRepo, docRepo, validator, e.logger)
	docService := serviceDocsys.NewDocumentService(
		docRepo,
		postgresDocsys.NewTagRepository(repoConfig),
		postgresDocsys.NewEdgeRepository(repoConfig),
		txManager,
		serviceDocsys.NewContentAnalyzer(),
		authorizer,
		validator,
		e.logger,
	)

	user, err := userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		hash, hashErr := auth.HashPassword(password)
		if hashErr != nil {
			return hashErr
		}
		user = &models.User{Email: email, Name: name, PasswordHash: hash}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create demo user: %w", err)
		}
		e.logger.Info("demo user created", "email", email)
	} else if err != nil {
		return fmt.Errorf("look up demo user: %w", err)
	}

	folder, err := folderService.CreateFolder(ctx, user.ID, &docsysSvc.CreateFolderRequest{Name: "Getting started"})
	if err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("create demo folder: %w", err)
		}
		e.logger.Info("demo data already present, nothing to do")
		return nil
	}

	for _, d := range demoDocuments() {
		req := d
		req.FolderID = &folder.ID
		doc, err := docService.CreateDocument(ctx, user.ID, &req)
		if err != nil {
			e.logger.Error("failed to create demo document", "title", d.Title, "error", err)
			continue
		}
		e.logger.Info("demo document created", "title", doc.Title, "id", doc.ID)
	}

	e.logger.Info("seeding complete", "email", email)
	return nil
}

func demoDocuments() []docsysSvc.CreateDocumentRequest {
	return []docsysSvc.CreateDocumentRequest{
		{
			Title: "Welcome",
			Content: "# Welcome to Bansho\n\n" +
				"Notes are plain markdown. Link them with double brackets, like [[Wiki links]] or [[Tags]].\n\n" +
				"Open the graph view to see how your notes relate.",
			Tags: []string{"guide"},
		},
		{
			Title: "Wiki links",
			Content: "# Wiki links\n\n" +
				"Type `[[` in the editor to get title suggestions. " +
				"A link to a note that does not exist yet is shown as missing.\n\n" +
				"Back to [[Welcome]].",
			Tags: []string{"guide", "links"},
		},
		{
			Title: "Tags",
			Content: "# Tags\n\n" +
				"Tags group notes across folders. Renaming a tag updates every note carrying it.\n\n" +
				"See also [[Wiki links]].",
			Tags: []string{"guide"},
		},
	}
}
