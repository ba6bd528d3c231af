package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
)

const legacyTable = "kv_legacy"

// snapshotDatabase copies the whole database to backupDir before the schema
// is touched. version 0 marks a database without a version table.
func snapshotDatabase(db *sql.DB, backupDir string, version int, log logger.Logger) (string, error) {
	errFactory := errors.New()

	if err := os.MkdirAll(backupDir, defaultDirPerm); err != nil {
		return "", errFactory.WithData(ErrSchemaMigrationFailed, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_backup_dir",
			Path:  backupDir,
			Error: err.Error(),
		})
	}

	name := fmt.Sprintf("bodymind_v%d_%s.db", version, time.Now().UTC().Format("20060102T150405.000Z"))
	target := filepath.Join(backupDir, name)

	// VACUUM INTO cannot run inside a transaction.
	stmt := fmt.Sprintf("VACUUM INTO '%s'", strings.ReplaceAll(target, "'", "''"))
	if _, err := db.Exec(stmt); err != nil {
		return "", errFactory.WithData(ErrSchemaMigrationFailed, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_backup",
			Path:  target,
			Error: err.Error(),
		})
	}

	log.Info().
		Str("path", target).
		Int("version", version).
		Msg("Database backup created")

	return target, nil
}

// ValidateAndUpdateSchema brings the database to SchemaVersion. A fresh
// database is initialised. Any other database is first copied to backupDir,
// then rebuilt with its key/value rows carried into the new kv table.
func ValidateAndUpdateSchema(db *sql.DB, backupDir string, log logger.Logger) error {
	errFactory := errors.New()

	version, err := GetSchemaVersion(db)
	if err != nil {
		return errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if version == SchemaVersion {
		log.Debug().Int("version", version).Msg("Schema version is current")
		return nil
	}

	hasKV, err := TableExists(db, "kv")
	if err != nil {
		return err
	}
	hasVersions, err := TableExists(db, "schema_versions")
	if err != nil {
		return err
	}
	if !hasKV && !hasVersions {
		return InitSchema(db, log)
	}

	log.Warn().
		Int("found", version).
		Int("expected", SchemaVersion).
		Msg("Schema version mismatch, rebuilding")

	if _, err := snapshotDatabase(db, backupDir, version, log); err != nil {
		return err
	}
	return rebuildSchema(db, hasKV, log)
}

// rebuildSchema recreates both tables in one transaction. Rows of an old kv
// table survive when it still has key and value columns.
func rebuildSchema(db *sql.DB, hasKV bool, log logger.Logger) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				log.Debug().Err(err).Msg("Failed to rollback schema rebuild")
			}
		}
	}()

	step := func(phase, stmt string) error {
		if _, err := tx.Exec(stmt); err != nil {
			return errFactory.WithData(ErrSchemaMigrationFailed, struct {
				Phase string
				Error string
			}{
				Phase: phase,
				Error: err.Error(),
			})
		}
		return nil
	}

	if err := step("drop_versions", "DROP TABLE IF EXISTS schema_versions"); err != nil {
		return err
	}
	if hasKV {
		if err := step("drop_stale_legacy", "DROP TABLE IF EXISTS "+legacyTable); err != nil {
			return err
		}
		if err := step("rename_kv", "ALTER TABLE kv RENAME TO "+legacyTable); err != nil {
			return err
		}
	}
	if err := createSchema(tx); err != nil {
		return err
	}

	if hasKV {
		copySQL, err := legacyCopySQL(tx)
		if err != nil {
			return err
		}
		if copySQL == "" {
			log.Warn().Msg("Old kv table has no key/value columns, its rows remain only in the backup")
		} else if err := step("copy_rows", copySQL); err != nil {
			return err
		}
		if err := step("drop_legacy", "DROP TABLE "+legacyTable); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	committed = true

	log.Info().Int("version", SchemaVersion).Msg("Schema rebuilt")
	return nil
}

// legacyCopySQL builds the statement moving rows out of the renamed table,
// or returns "" when the table cannot be mapped onto kv.
func legacyCopySQL(tx *sql.Tx) (string, error) {
	rows, err := tx.Query("PRAGMA table_info(" + legacyTable + ")")
	if err != nil {
		return "", errors.New().Wrap(ErrSchemaMigrationFailed, err)
	}
	defer rows.Close()

	columns := map[string]bool{}
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return "", errors.New().Wrap(ErrSchemaMigrationFailed, err)
		}
		columns[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return "", errors.New().Wrap(ErrSchemaMigrationFailed, err)
	}

	if !columns["key"] || !columns["value"] {
		return "", nil
	}
	updated := "datetime('now')"
	if columns["updated_at"] {
		updated = "COALESCE(updated_at, datetime('now'))"
	}
	return fmt.Sprintf(
		"INSERT OR REPLACE INTO kv (key, value, updated_at) SELECT key, value, %s FROM %s WHERE key IS NOT NULL AND value IS NOT NULL",
		updated, legacyTable,
	), nil
}
