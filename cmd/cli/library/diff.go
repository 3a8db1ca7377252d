package library

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	diffUseConstant                    = "diff"
	diffShortDescriptionConstant       = "Report attachments missing from the database or the managed directory"
	diffLongDescriptionConstant        = "diff compares the PDF attachments recorded in zotero.sqlite with the PDF files in the zotfile-managed directory and lists the files present on only one side."
	diffExecutionErrorTemplateConstant = "diff failed: %w"
)

// DiffCommandBuilder assembles the diff command.
type DiffCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the diff command.
func (builder *DiffCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   diffUseConstant,
		Short: diffShortDescriptionConstant,
		Long:  diffLongDescriptionConstant,
		RunE:  builder.run,
	}

	bindPathFlags(command, databasePathFlag, managedDirectoryFlag)

	return command, nil
}

func (builder *DiffCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if argumentsError := rejectArguments(command, arguments); argumentsError != nil {
		return argumentsError
	}

	support := commandSupport{
		loggerProvider:        builder.LoggerProvider,
		configurationProvider: builder.ConfigurationProvider,
	}
	configuration := support.resolveConfiguration()

	paths, pathsError := support.resolvePaths(command, configuration.Library, databasePathFlag, managedDirectoryFlag)
	if pathsError != nil {
		return pathsError
	}

	if _, diffError := support.newService(command).Diff(command.Context(), paths); diffError != nil {
		return fmt.Errorf(diffExecutionErrorTemplateConstant, diffError)
	}
	return nil
}

