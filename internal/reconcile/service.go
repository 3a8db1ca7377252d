package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/zotdoctor/internal/identity"
)

const (
	databaseExtractionErrorTemplateConstant  = "read attachment database: %w"
	directoryExtractionErrorTemplateConstant = "scan managed directory: %w"
	diffSummaryMessageConstant               = "reconciliation diff computed"
	logFieldDatabaseCountConstant            = "database_count"
	logFieldDirectoryCountConstant           = "directory_count"
	logFieldDatabaseOnlyCountConstant        = "database_only_count"
	logFieldDirectoryOnlyCountConstant       = "directory_only_count"
)

// Service coordinates extraction, diffing, and repair.
type Service struct {
	databaseExtractor  DatabaseExtractor
	directoryExtractor DirectoryExtractor
	dependencies       Dependencies
	reporter           *Reporter
}

// NewService constructs a Service using the provided collaborators.
func NewService(databaseExtractor DatabaseExtractor, directoryExtractor DirectoryExtractor, dependencies Dependencies) *Service {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Service{
		databaseExtractor:  databaseExtractor,
		directoryExtractor: directoryExtractor,
		dependencies:       dependencies,
		reporter:           NewReporter(dependencies.Output),
	}
}

// Diff extracts both identity sets, prints the drift report, and returns the result.
func (service *Service) Diff(executionContext context.Context, paths Paths) (DiffResult, error) {
	result, _, diffError := service.diff(executionContext, paths)
	return result, diffError
}

func (service *Service) diff(executionContext context.Context, paths Paths) (DiffResult, identity.Catalog, error) {
	databaseSet, _, databaseError := service.databaseExtractor.Extract(executionContext, paths.DatabasePath, paths.ManagedDirectory)
	if databaseError != nil {
		return DiffResult{}, identity.Catalog{}, fmt.Errorf(databaseExtractionErrorTemplateConstant, databaseError)
	}

	directoryCatalog, directoryError := service.directoryExtractor.DiscoverCatalog(paths.ManagedDirectory)
	if directoryError != nil {
		return DiffResult{}, identity.Catalog{}, fmt.Errorf(directoryExtractionErrorTemplateConstant, directoryError)
	}

	result := Diff(databaseSet, directoryCatalog.Set())
	service.reporter.ReportDiff(result)

	service.dependencies.Logger.Info(
		diffSummaryMessageConstant,
		zap.Int(logFieldDatabaseCountConstant, result.DatabaseSet.Len()),
		zap.Int(logFieldDirectoryCountConstant, result.DirectorySet.Len()),
		zap.Int(logFieldDatabaseOnlyCountConstant, result.DatabaseOnly.Len()),
		zap.Int(logFieldDirectoryOnlyCountConstant, result.DirectoryOnly.Len()),
	)

	return result, directoryCatalog, nil
}

// Quarantine reports the diff and moves every file present only in the managed directory to the holding directory.
// Files are addressed by their on-disk names, which may differ in normalization from their identities.
func (service *Service) Quarantine(executionContext context.Context, paths Paths, options ExecutionOptions) (DiffResult, MoveSummary, error) {
	result, directoryCatalog, diffError := service.diff(executionContext, paths)
	if diffError != nil {
		return DiffResult{}, MoveSummary{}, diffError
	}

	executor := NewQuarantineExecutor(service.dependencies)
	summary, quarantineError := executor.Execute(QuarantineOptions{
		ManagedDirectory: paths.ManagedDirectory,
		HoldingDirectory: paths.HoldingDirectory,
		ExecutionOptions: options,
	}, directoryCatalog.RelativePaths(result.DirectoryOnly.Sorted()))
	if quarantineError != nil {
		return result, MoveSummary{}, quarantineError
	}

	return result, summary, nil
}

// Consolidate gathers storage tree files into the storage holding directory and reports those absent from the managed directory.
func (service *Service) Consolidate(paths Paths, options ExecutionOptions) (ConsolidationResult, error) {
	executor := NewConsolidationExecutor(service.dependencies, service.directoryExtractor)
	return executor.Execute(ConsolidationOptions{
		StorageDirectory:        paths.StorageDirectory,
		StorageHoldingDirectory: paths.StorageHoldingDirectory,
		ManagedDirectory:        paths.ManagedDirectory,
		ExecutionOptions:        options,
	})
}
