package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates every table and index if missing. Safe to run on each boot.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, t *TableNames, prefix string) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS ` + t.Users + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			avatar TEXT,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + prefix + `users_email ON ` + t.Users + ` (LOWER(email))`,

		`CREATE TABLE IF NOT EXISTS ` + t.PasswordResetTokens + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES ` + t.Users + `(id) ON DELETE CASCADE,
			token TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMPTZ NOT NULL,
			used_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `reset_tokens_user ON ` + t.PasswordResetTokens + ` (user_id)`,

		`CREATE TABLE IF NOT EXISTS ` + t.Folders + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES ` + t.Users + `(id) ON DELETE CASCADE,
			parent_id UUID REFERENCES ` + t.Folders + `(id) ON DELETE SET NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `folders_user_parent ON ` + t.Folders + ` (user_id, parent_id)`,

		`CREATE TABLE IF NOT EXISTS ` + t.Documents + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES ` + t.Users + `(id) ON DELETE CASCADE,
			folder_id UUID REFERENCES ` + t.Folders + `(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			word_count INTEGER NOT NULL DEFAULT 0,
			is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `documents_user_updated ON ` + t.Documents + ` (user_id, updated_at DESC) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `documents_folder ON ` + t.Documents + ` (folder_id)`,

		`CREATE TABLE IF NOT EXISTS ` + t.Tags + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES ` + t.Users + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (user_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + t.DocumentTags + ` (
			document_id UUID NOT NULL REFERENCES ` + t.Documents + `(id) ON DELETE CASCADE,
			tag_id UUID NOT NULL REFERENCES ` + t.Tags + `(id) ON DELETE CASCADE,
			PRIMARY KEY (document_id, tag_id)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + t.DocumentShares + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			document_id UUID NOT NULL REFERENCES ` + t.Documents + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + t.Users + `(id) ON DELETE CASCADE,
			permission TEXT NOT NULL DEFAULT 'view' CHECK (permission IN ('view', 'edit')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (document_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `shares_user ON ` + t.DocumentShares + ` (user_id)`,

		`CREATE TABLE IF NOT EXISTS ` + t.DocumentVersions + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			document_id UUID NOT NULL REFERENCES ` + t.Documents + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + t.Users + `(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (document_id, version)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + t.DocumentImages + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			document_id UUID NOT NULL REFERENCES ` + t.Documents + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + t.Users + `(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			pathname TEXT NOT NULL,
			filename TEXT NOT NULL,
			size BIGINT NOT NULL,
			mime_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `images_document ON ` + t.DocumentImages + ` (document_id)`,

		`CREATE TABLE IF NOT EXISTS ` + t.Edges + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			from_document_id UUID NOT NULL REFERENCES ` + t.Documents + `(id) ON DELETE CASCADE,
			to_document_id UUID NOT NULL REFERENCES ` + t.Documents + `(id) ON DELETE CASCADE,
			weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (from_document_id, to_document_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every table, children first
func DropSchema(ctx context.Context, pool *pgxpool.Pool, t *TableNames) error {
	all := t.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+all[i]+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", all[i], err)
		}
	}
	return nil
}
