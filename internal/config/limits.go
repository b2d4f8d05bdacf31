package config

import "time"

const (
	// MinPasswordLength and MaxPasswordLength bound every password a user can set.
	MinPasswordLength = 8
	MaxPasswordLength = 100

	// MaxUserNameLength is the maximum display name length.
	MaxUserNameLength = 100

	// MaxDocumentTitleLength is the maximum length for document titles.
	MaxDocumentTitleLength = 200

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 100

	// MaxTagNameLength is the maximum length for tag names.
	MaxTagNameLength = 50

	// MaxSearchQueryLength is the maximum length of a search query.
	MaxSearchQueryLength = 200

	// MaxQuestionLength is the maximum length of an ask question.
	MaxQuestionLength = 1000
)

const (
	// SearchResultLimit caps full search results.
	SearchResultLimit = 50

	// TitleSearchLimit caps autocomplete results.
	TitleSearchLimit = 10

	// ExcerptLength is the number of runes kept in search and trash excerpts.
	ExcerptLength = 200

	// AskContextDocuments is how many recent documents feed an ask request
	// when the caller does not pick any.
	AskContextDocuments = 10

	// MaxFolderDepth bounds the parent walk used for cycle detection.
	MaxFolderDepth = 100
)

const (
	// MaxImportFiles is the maximum number of files per import request.
	MaxImportFiles = 50

	// MaxImportFileSize is the per-file import limit (1MB).
	MaxImportFileSize = 1 << 20

	// MaxImageSize applies to document images and avatars (5MB).
	MaxImageSize = 5 << 20

	// MaxExportFilenameLength is the maximum export filename length in runes.
	MaxExportFilenameLength = 100
)

const (
	// PasswordResetTokenTTL is how long a reset link stays valid.
	PasswordResetTokenTTL = time.Hour

	// PasswordResetTokenBytes is the entropy of a reset token before hex encoding.
	PasswordResetTokenBytes = 32
)
