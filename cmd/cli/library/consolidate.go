package library

import (
	"fmt"

	"github.com/spf13/cobra"

	flagutils "github.com/temirov/zotdoctor/internal/utils/flags"
)

const (
	consolidateUseConstant                    = "consolidate"
	consolidateShortDescriptionConstant       = "Gather PDFs from Zotero storage into one directory"
	consolidateLongDescriptionConstant        = "consolidate moves every PDF found under the Zotero storage directory into the storage holding directory by file name, overwriting files with the same name, and then lists the gathered files that are missing from the managed directory."
	consolidateExecutionErrorTemplateConstant = "consolidate failed: %w"
)

// ConsolidateCommandBuilder assembles the consolidate command.
type ConsolidateCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	PrompterFactory       PrompterFactory
}

// Build constructs the consolidate command.
func (builder *ConsolidateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   consolidateUseConstant,
		Short: consolidateShortDescriptionConstant,
		Long:  consolidateLongDescriptionConstant,
		RunE:  builder.run,
	}

	bindPathFlags(command, storageDirectoryFlag, storageHoldingDirectoryFlag, managedDirectoryFlag)
	flagutils.BindExecutionFlags(command)

	return command, nil
}

func (builder *ConsolidateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if argumentsError := rejectArguments(command, arguments); argumentsError != nil {
		return argumentsError
	}

	support := commandSupport{
		loggerProvider:        builder.LoggerProvider,
		configurationProvider: builder.ConfigurationProvider,
		prompterFactory:       builder.PrompterFactory,
	}
	configuration := support.resolveConfiguration()

	paths, pathsError := support.resolvePaths(command, configuration.Library, storageDirectoryFlag, storageHoldingDirectoryFlag, managedDirectoryFlag)
	if pathsError != nil {
		return pathsError
	}

	options := support.resolveExecutionOptions(command, configuration)
	if _, consolidateError := support.newService(command).Consolidate(paths, options); consolidateError != nil {
		return fmt.Errorf(consolidateExecutionErrorTemplateConstant, consolidateError)
	}
	return nil
}
