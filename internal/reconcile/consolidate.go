package reconcile

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/temirov/zotdoctor/internal/identity"
)

const (
	storageListingErrorTemplateConstant = "list storage files: %w"
	holdingListingErrorTemplateConstant = "list consolidated files: %w"
	managedListingErrorTemplateConstant = "list managed directory: %w"
	directoryExtractorMissingConstant   = "directory extractor not configured"
)

// ConsolidationOptions configures a storage consolidation run.
type ConsolidationOptions struct {
	StorageDirectory        string
	StorageHoldingDirectory string
	ManagedDirectory        string
	ExecutionOptions
}

// ConsolidationResult describes the files gathered into the storage holding directory.
type ConsolidationResult struct {
	Moves              MoveSummary
	Consolidated       identity.Set
	MissingFromManaged identity.Set
}

// ConsolidationExecutor flattens tracked files from the storage tree into a single holding directory.
type ConsolidationExecutor struct {
	dependencies       Dependencies
	directoryExtractor DirectoryExtractor
	reporter           *Reporter
}

// NewConsolidationExecutor constructs a ConsolidationExecutor.
func NewConsolidationExecutor(dependencies Dependencies, directoryExtractor DirectoryExtractor) *ConsolidationExecutor {
	return &ConsolidationExecutor{
		dependencies:       dependencies,
		directoryExtractor: directoryExtractor,
		reporter:           NewReporter(dependencies.Output),
	}
}

// Execute moves every tracked file under the storage tree into the storage holding directory by file name,
// overwriting name collisions, then reports the consolidated identities missing from the managed directory.
func (executor *ConsolidationExecutor) Execute(options ConsolidationOptions) (ConsolidationResult, error) {
	if executor.directoryExtractor == nil {
		return ConsolidationResult{}, errors.New(directoryExtractorMissingConstant)
	}

	fileMover := newMover(executor.dependencies)
	if holdingError := fileMover.ensureHoldingDirectory(options.StorageHoldingDirectory, options.DryRun); holdingError != nil {
		return ConsolidationResult{}, holdingError
	}

	storageFiles, listingError := executor.directoryExtractor.DiscoverFiles(options.StorageDirectory, options.StorageHoldingDirectory)
	if listingError != nil {
		return ConsolidationResult{}, fmt.Errorf(storageListingErrorTemplateConstant, listingError)
	}

	requests := make([]moveRequest, 0, len(storageFiles))
	for _, storageFile := range storageFiles {
		fileName := filepath.Base(storageFile)
		requests = append(requests, moveRequest{
			label:  fileName,
			source: storageFile,
			target: filepath.Join(options.StorageHoldingDirectory, fileName),
		})
	}

	moves := fileMover.moveAll(requests, options.ExecutionOptions)

	consolidated, consolidatedError := executor.consolidatedIdentities(options, requests)
	if consolidatedError != nil {
		return ConsolidationResult{}, consolidatedError
	}

	managed, managedError := executor.directoryExtractor.DiscoverIdentities(options.ManagedDirectory)
	if managedError != nil {
		return ConsolidationResult{}, fmt.Errorf(managedListingErrorTemplateConstant, managedError)
	}

	missing := consolidated.Difference(managed)
	executor.reporter.ReportConsolidation(missing, consolidated.Len())

	return ConsolidationResult{
		Moves:              moves,
		Consolidated:       consolidated,
		MissingFromManaged: missing,
	}, nil
}

// consolidatedIdentities lists the holding directory; during a dry run it adds the planned file names instead.
func (executor *ConsolidationExecutor) consolidatedIdentities(options ConsolidationOptions, requests []moveRequest) (identity.Set, error) {
	if !options.DryRun {
		consolidated, listingError := executor.directoryExtractor.DiscoverIdentities(options.StorageHoldingDirectory)
		if listingError != nil {
			return identity.Set{}, fmt.Errorf(holdingListingErrorTemplateConstant, listingError)
		}
		return consolidated, nil
	}

	consolidated := identity.NewSet()
	if executor.holdingDirectoryExists(options.StorageHoldingDirectory) {
		existing, listingError := executor.directoryExtractor.DiscoverIdentities(options.StorageHoldingDirectory)
		if listingError != nil {
			return identity.Set{}, fmt.Errorf(holdingListingErrorTemplateConstant, listingError)
		}
		consolidated = consolidated.Union(existing)
	}

	normalizer := identity.NewNormalizer(options.StorageHoldingDirectory)
	for _, request := range requests {
		resolution := normalizer.ResolveRelative(request.label)
		if resolution.Excluded {
			continue
		}
		consolidated.Add(resolution.Identity)
	}
	return consolidated, nil
}

func (executor *ConsolidationExecutor) holdingDirectoryExists(holdingDirectory string) bool {
	if executor.dependencies.FileSystem == nil {
		return false
	}
	info, statError := executor.dependencies.FileSystem.Stat(holdingDirectory)
	return statError == nil && info.IsDir()
}
