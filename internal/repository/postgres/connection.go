package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users               string
	PasswordResetTokens string
	Folders             string
	Documents           string
	Tags                string
	DocumentTags        string
	DocumentShares      string
	DocumentVersions    string
	DocumentImages      string
	Edges               string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:               prefix + "users",
		PasswordResetTokens: prefix + "password_reset_tokens",
		Folders:             prefix + "folders",
		Documents:           prefix + "documents",
		Tags:                prefix + "tags",
		DocumentTags:        prefix + "document_tags",
		DocumentShares:      prefix + "document_shares",
		DocumentVersions:    prefix + "document_versions",
		DocumentImages:      prefix + "document_images",
		Edges:               prefix + "edges",
	}
}

// All returns every table in dependency order (parents first)
func (t *TableNames) All() []string {
	return []string{
		t.Users,
		t.PasswordResetTokens,
		t.Folders,
		t.Documents,
		t.Tags,
		t.DocumentTags,
		t.DocumentShares,
		t.DocumentVersions,
		t.DocumentImages,
		t.Edges,
	}
}

// CreateConnectionPool creates a pgx connection pool.
//
// Port 6543 is the usual PgBouncer transaction pooler port, which does not
// support prepared statements; for it the pool switches to
// QueryExecModeCacheDescribe unless the connection string already picked a
// mode with default_query_exec_mode.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when there is none.
// Repositories call it for every query so they join an ambient transaction.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
