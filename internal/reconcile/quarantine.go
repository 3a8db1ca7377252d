package reconcile

import "path/filepath"

// QuarantineOptions configures a quarantine run.
type QuarantineOptions struct {
	ManagedDirectory string
	HoldingDirectory string
	ExecutionOptions
}

// QuarantineExecutor relocates untracked files from the managed directory into the holding directory.
type QuarantineExecutor struct {
	dependencies Dependencies
}

// NewQuarantineExecutor constructs a QuarantineExecutor from the provided dependencies.
func NewQuarantineExecutor(dependencies Dependencies) *QuarantineExecutor {
	return &QuarantineExecutor{dependencies: dependencies}
}

// Execute moves each slash-separated relative path from the managed directory to the same relative path under
// the holding directory. Only failing to prepare the holding directory returns an error; individual move failures
// are reported and counted.
func (executor *QuarantineExecutor) Execute(options QuarantineOptions, relativePaths []string) (MoveSummary, error) {
	fileMover := newMover(executor.dependencies)
	if holdingError := fileMover.ensureHoldingDirectory(options.HoldingDirectory, options.DryRun); holdingError != nil {
		return MoveSummary{}, holdingError
	}

	requests := make([]moveRequest, 0, len(relativePaths))
	for _, relativePath := range relativePaths {
		platformPath := filepath.FromSlash(relativePath)
		requests = append(requests, moveRequest{
			label:  relativePath,
			source: filepath.Join(options.ManagedDirectory, platformPath),
			target: filepath.Join(options.HoldingDirectory, platformPath),
		})
	}

	return fileMover.moveAll(requests, options.ExecutionOptions), nil
}
