package library

import (
	"fmt"

	"github.com/spf13/cobra"

	flagutils "github.com/temirov/zotdoctor/internal/utils/flags"
)

const (
	quarantineUseConstant                    = "quarantine"
	quarantineShortDescriptionConstant       = "Move files the database does not track into the holding directory"
	quarantineLongDescriptionConstant        = "quarantine runs diff and then moves every PDF that exists only in the managed directory into the holding directory, keeping its relative path. Each move is confirmed unless --yes is set."
	quarantineExecutionErrorTemplateConstant = "quarantine failed: %w"
)

// QuarantineCommandBuilder assembles the quarantine command.
type QuarantineCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	PrompterFactory       PrompterFactory
}

// Build constructs the quarantine command.
func (builder *QuarantineCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   quarantineUseConstant,
		Short: quarantineShortDescriptionConstant,
		Long:  quarantineLongDescriptionConstant,
		RunE:  builder.run,
	}

	bindPathFlags(command, databasePathFlag, managedDirectoryFlag, holdingDirectoryFlag)
	flagutils.BindExecutionFlags(command)

	return command, nil
}

func (builder *QuarantineCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if argumentsError := rejectArguments(command, arguments); argumentsError != nil {
		return argumentsError
	}

	support := commandSupport{
		loggerProvider:        builder.LoggerProvider,
		configurationProvider: builder.ConfigurationProvider,
		prompterFactory:       builder.PrompterFactory,
	}
	configuration := support.resolveConfiguration()

	paths, pathsError := support.resolvePaths(command, configuration.Library, databasePathFlag, managedDirectoryFlag, holdingDirectoryFlag)
	if pathsError != nil {
		return pathsError
	}

	options := support.resolveExecutionOptions(command, configuration)
	if _, _, quarantineError := support.newService(command).Quarantine(command.Context(), paths, options); quarantineError != nil {
		return fmt.Errorf(quarantineExecutionErrorTemplateConstant, quarantineError)
	}
	return nil
}
