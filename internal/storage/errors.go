package storage

import "codeberg.org/mutker/bodymind/internal/errors"

const (
	// Configuration Errors
	ErrInvalidPath    = errors.ErrorCode("storage_invalid_path")
	ErrInvalidBackend = errors.ErrInvalidBackend

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("storage_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("storage_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("storage_schema_migration_failed")
	ErrTransactionFailed      = errors.ErrorCode("storage_transaction_failed")

	// Lifecycle Errors
	ErrStorageInit  = errors.ErrInitFailed
	ErrStorageClose = errors.ErrShutdownFailed

	// Access Errors
	ErrRead   = errors.ErrorCode("storage_read_failed")
	ErrWrite  = errors.ErrorCode("storage_write_failed")
	ErrEncode = errors.ErrorCode("storage_encode_failed")
	ErrClosed = errors.ErrorCode("storage_closed")
)
