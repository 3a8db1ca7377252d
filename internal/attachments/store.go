package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverNameConstant    = "sqlite"
	sqliteURIPrefixConstant     = "file:"
	sqliteReadOnlyQueryConstant = "mode=ro"

	// attachmentPathsQueryConstant has no parentheses around the AND clause:
	// AND binds before OR, so the content type filter applies to linkMode 3
	// only and every linkMode 2 row is selected regardless of content type.
	attachmentPathsQueryConstant = `SELECT path FROM itemAttachments WHERE linkMode = 2 OR linkMode = 3 AND contentType = 'application/pdf'`

	databaseMissingTemplateConstant      = "%w: %s"
	databaseNotRegularTemplateConstant   = "attachment database is not a regular file: %s"
	databaseOpenErrorTemplateConstant    = "open attachment database: %w"
	databasePingErrorTemplateConstant    = "connect attachment database: %w"
	attachmentQueryErrorTemplateConstant = "query attachment paths: %w"
	attachmentScanErrorTemplateConstant  = "scan attachment path: %w"
	attachmentRowsErrorTemplateConstant  = "iterate attachment paths: %w"
)

// ErrDatabaseMissing indicates the configured database file does not exist.
var ErrDatabaseMissing = errors.New("attachment database not found")

// AttachmentRecord is a read-only snapshot of one itemAttachments row.
// Path holds the raw column value and may be nil or a non-string type.
type AttachmentRecord struct {
	Path any
}

// Store provides read-only access to the attachment database.
type Store struct {
	database *sql.DB
	path     string
}

// Open connects to the SQLite database at databasePath in read-only mode.
func Open(executionContext context.Context, databasePath string) (*Store, error) {
	fileInfo, statError := os.Stat(databasePath)
	if statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return nil, fmt.Errorf(databaseMissingTemplateConstant, ErrDatabaseMissing, databasePath)
		}
		return nil, fmt.Errorf(databaseOpenErrorTemplateConstant, statError)
	}
	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf(databaseNotRegularTemplateConstant, databasePath)
	}

	database, openError := sql.Open(sqliteDriverNameConstant, readOnlyDataSourceName(databasePath))
	if openError != nil {
		return nil, fmt.Errorf(databaseOpenErrorTemplateConstant, openError)
	}

	if pingError := database.PingContext(executionContext); pingError != nil {
		_ = database.Close()
		return nil, fmt.Errorf(databasePingErrorTemplateConstant, pingError)
	}

	return &Store{database: database, path: databasePath}, nil
}

// Path returns the database location the store was opened with.
func (store *Store) Path() string {
	if store == nil {
		return ""
	}
	return store.path
}

// Close releases the database handle.
func (store *Store) Close() error {
	if store == nil || store.database == nil {
		return nil
	}
	return store.database.Close()
}

// AttachmentRecords returns every linked or stored file attachment row.
func (store *Store) AttachmentRecords(executionContext context.Context) ([]AttachmentRecord, error) {
	rows, queryError := store.database.QueryContext(executionContext, attachmentPathsQueryConstant)
	if queryError != nil {
		return nil, fmt.Errorf(attachmentQueryErrorTemplateConstant, queryError)
	}
	defer rows.Close()

	var records []AttachmentRecord
	for rows.Next() {
		var rawPath any
		if scanError := rows.Scan(&rawPath); scanError != nil {
			return nil, fmt.Errorf(attachmentScanErrorTemplateConstant, scanError)
		}
		records = append(records, AttachmentRecord{Path: rawPath})
	}
	if rowsError := rows.Err(); rowsError != nil {
		return nil, fmt.Errorf(attachmentRowsErrorTemplateConstant, rowsError)
	}

	return records, nil
}

func readOnlyDataSourceName(databasePath string) string {
	absolutePath, absoluteError := filepath.Abs(databasePath)
	if absoluteError != nil {
		absolutePath = databasePath
	}
	location := url.URL{Path: filepath.ToSlash(absolutePath), RawQuery: sqliteReadOnlyQueryConstant}
	return sqliteURIPrefixConstant + location.String()
}
