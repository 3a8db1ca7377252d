package reconcile

import (
	"context"
	"io/fs"

	"github.com/temirov/zotdoctor/internal/attachments"
	"github.com/temirov/zotdoctor/internal/identity"
	"github.com/temirov/zotdoctor/internal/prompt"
)

// Paths holds the locations every operation works against.
type Paths struct {
	DatabasePath            string
	ManagedDirectory        string
	HoldingDirectory        string
	StorageDirectory        string
	StorageHoldingDirectory string
}

// ExecutionOptions controls how destructive operations are applied.
type ExecutionOptions struct {
	DryRun    bool
	AssumeYes bool
}

// FileSystem exposes the filesystem operations required by the executors.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Rename(oldPath string, newPath string) error
	MkdirAll(path string, permissions fs.FileMode) error
}

// ConfirmationPrompter collects user confirmations prior to moving files.
type ConfirmationPrompter interface {
	Confirm(promptText string) (prompt.ConfirmationResult, error)
}

// DatabaseExtractor produces the identity set tracked by the attachment database.
type DatabaseExtractor interface {
	Extract(executionContext context.Context, databasePath string, managedDirectory string) (identity.Set, attachments.ExtractionSummary, error)
}

// DirectoryExtractor produces identity sets and file listings from directory trees.
type DirectoryExtractor interface {
	DiscoverIdentities(root string) (identity.Set, error)
	DiscoverCatalog(root string) (identity.Catalog, error)
	DiscoverFiles(root string, excludedDirectories ...string) ([]string, error)
}

// MoveSummary counts the outcomes of a move loop.
type MoveSummary struct {
	Moved   int
	Skipped int
	Failed  int
}
