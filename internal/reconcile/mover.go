package reconcile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	holdingCreatedTemplateConstant       = "Directory %s created\n"
	holdingExistsTemplateConstant        = "Directory %s already exists\n"
	planCreateTemplateConstant           = "PLAN-CREATE: %s\n"
	planMoveTemplateConstant             = "PLAN-MOVE: %s → %s\n"
	planSkipMissingTemplateConstant      = "PLAN-SKIP (missing): %s\n"
	promptTemplateConstant               = "Move '%s' → '%s'? [a/N/y] "
	skipTemplateConstant                 = "SKIP: %s\n"
	movedTemplateConstant                = "Moved %s → %s\n"
	errorNotFoundTemplateConstant        = "ERROR: %s not found\n"
	errorMoveFailedTemplateConstant      = "ERROR: unable to move %s: %v\n"
	errorPromptFailedTemplateConstant    = "ERROR: confirmation failed for %s: %v\n"
	holdingNotDirectoryTemplateConstant  = "%w: %s"
	holdingInspectionTemplateConstant    = "inspect holding directory %s: %w"
	holdingCreationTemplateConstant      = "create holding directory %s: %w"
	fileSystemUnavailableMessageConstant = "filesystem not configured"
	moveFailedLogMessageConstant         = "file move failed"
	moveSummaryLogMessageConstant        = "file moves completed"
	logFieldSourceConstant               = "source"
	logFieldTargetConstant               = "target"
	logFieldMovedConstant                = "moved"
	logFieldSkippedConstant              = "skipped"
	logFieldFailedConstant               = "failed"
	directoryPermissionsConstant         = fs.FileMode(0o755)
)

// ErrHoldingNotDirectory indicates the holding path exists but is not a directory.
var ErrHoldingNotDirectory = errors.New("holding path is not a directory")

// Dependencies supplies collaborators required by the move executors.
type Dependencies struct {
	FileSystem FileSystem
	Prompter   ConfirmationPrompter
	Logger     *zap.Logger
	Output     io.Writer
	Errors     io.Writer
}

type moveRequest struct {
	label  string
	source string
	target string
}

type mover struct {
	dependencies Dependencies
	applyToAll   bool
}

func newMover(dependencies Dependencies) *mover {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &mover{dependencies: dependencies}
}

// ensureHoldingDirectory creates the holding directory when absent; an existing directory is not an error.
func (mover *mover) ensureHoldingDirectory(holdingDirectory string, dryRun bool) error {
	if mover.dependencies.FileSystem == nil {
		return errors.New(fileSystemUnavailableMessageConstant)
	}

	info, statError := mover.dependencies.FileSystem.Stat(holdingDirectory)
	switch {
	case statError == nil && info.IsDir():
		mover.printfOutput(holdingExistsTemplateConstant, holdingDirectory)
		return nil
	case statError == nil:
		return fmt.Errorf(holdingNotDirectoryTemplateConstant, ErrHoldingNotDirectory, holdingDirectory)
	case !errors.Is(statError, fs.ErrNotExist):
		return fmt.Errorf(holdingInspectionTemplateConstant, holdingDirectory, statError)
	}

	if dryRun {
		mover.printfOutput(planCreateTemplateConstant, holdingDirectory)
		return nil
	}

	if creationError := mover.dependencies.FileSystem.MkdirAll(holdingDirectory, directoryPermissionsConstant); creationError != nil {
		return fmt.Errorf(holdingCreationTemplateConstant, holdingDirectory, creationError)
	}
	mover.printfOutput(holdingCreatedTemplateConstant, holdingDirectory)
	return nil
}

// moveAll attempts every request independently; a failed move is reported and the loop continues.
func (mover *mover) moveAll(requests []moveRequest, options ExecutionOptions) MoveSummary {
	summary := MoveSummary{}
	mover.applyToAll = options.AssumeYes

	for _, request := range requests {
		switch mover.move(request, options.DryRun) {
		case moveOutcomeMoved:
			summary.Moved++
		case moveOutcomeSkipped:
			summary.Skipped++
		case moveOutcomeFailed:
			summary.Failed++
		}
	}

	mover.dependencies.Logger.Info(
		moveSummaryLogMessageConstant,
		zap.Int(logFieldMovedConstant, summary.Moved),
		zap.Int(logFieldSkippedConstant, summary.Skipped),
		zap.Int(logFieldFailedConstant, summary.Failed),
	)

	return summary
}

type moveOutcome int

const (
	moveOutcomeMoved moveOutcome = iota
	moveOutcomeSkipped
	moveOutcomeFailed
)

func (mover *mover) move(request moveRequest, dryRun bool) moveOutcome {
	if _, statError := mover.dependencies.FileSystem.Stat(request.source); statError != nil {
		if dryRun {
			mover.printfOutput(planSkipMissingTemplateConstant, request.source)
			return moveOutcomeSkipped
		}
		mover.printfError(errorNotFoundTemplateConstant, request.label)
		return moveOutcomeFailed
	}

	if dryRun {
		mover.printfOutput(planMoveTemplateConstant, request.source, request.target)
		return moveOutcomeSkipped
	}

	if !mover.applyToAll && mover.dependencies.Prompter != nil {
		confirmation, promptError := mover.dependencies.Prompter.Confirm(fmt.Sprintf(promptTemplateConstant, request.source, request.target))
		if promptError != nil {
			mover.printfError(errorPromptFailedTemplateConstant, request.label, promptError)
			return moveOutcomeFailed
		}
		if !confirmation.Confirmed {
			mover.printfOutput(skipTemplateConstant, request.source)
			return moveOutcomeSkipped
		}
		if confirmation.ApplyToAll {
			mover.applyToAll = true
		}
	}

	if moveError := mover.relocate(request); moveError != nil {
		mover.printfError(errorMoveFailedTemplateConstant, request.label, moveError)
		mover.dependencies.Logger.Warn(
			moveFailedLogMessageConstant,
			zap.String(logFieldSourceConstant, request.source),
			zap.String(logFieldTargetConstant, request.target),
			zap.Error(moveError),
		)
		return moveOutcomeFailed
	}

	mover.printfOutput(movedTemplateConstant, request.source, request.target)
	return moveOutcomeMoved
}

func (mover *mover) relocate(request moveRequest) error {
	targetParent := filepath.Dir(request.target)
	if parentError := mover.dependencies.FileSystem.MkdirAll(targetParent, directoryPermissionsConstant); parentError != nil {
		return parentError
	}
	return mover.dependencies.FileSystem.Rename(request.source, request.target)
}

func (mover *mover) printfOutput(format string, arguments ...any) {
	if mover.dependencies.Output == nil {
		return
	}
	fmt.Fprintf(mover.dependencies.Output, format, arguments...)
}

func (mover *mover) printfError(format string, arguments ...any) {
	if mover.dependencies.Errors == nil {
		return
	}
	fmt.Fprintf(mover.dependencies.Errors, format, arguments...)
}
