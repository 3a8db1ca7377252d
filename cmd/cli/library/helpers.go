package library

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/zotdoctor/internal/attachments"
	"github.com/temirov/zotdoctor/internal/discovery"
	"github.com/temirov/zotdoctor/internal/filesystem"
	"github.com/temirov/zotdoctor/internal/prompt"
	"github.com/temirov/zotdoctor/internal/reconcile"
	flagutils "github.com/temirov/zotdoctor/internal/utils/flags"
)

const (
	databaseFlagNameConstant                 = "database"
	databaseFlagUsageConstant                = "Path to zotero.sqlite"
	managedDirectoryFlagNameConstant         = "managed-dir"
	managedDirectoryFlagUsageConstant        = "Directory whose files zotfile manages"
	holdingDirectoryFlagNameConstant         = "holding-dir"
	holdingDirectoryFlagUsageConstant        = "Directory receiving files the database does not track"
	storageDirectoryFlagNameConstant         = "storage-dir"
	storageDirectoryFlagUsageConstant        = "Zotero storage directory to consolidate"
	storageHoldingDirectoryFlagNameConstant  = "storage-holding-dir"
	storageHoldingDirectoryFlagUsageConstant = "Directory receiving consolidated storage files"
	missingPathTemplateConstant              = "missing %s: set --%s or library.%s"
	unexpectedArgumentsTemplateConstant      = "%s does not accept positional arguments"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the configuration applied before command flags.
type ConfigurationProvider func() CommandConfiguration

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) reconcile.ConfirmationPrompter

type pathFlagDefinition struct {
	flagName         string
	usage            string
	configurationKey string
	value            func(*reconcile.Paths) *string
}

var (
	databasePathFlag = pathFlagDefinition{
		flagName:         databaseFlagNameConstant,
		usage:            databaseFlagUsageConstant,
		configurationKey: configurationDatabaseKeyConstant,
		value:            func(paths *reconcile.Paths) *string { return &paths.DatabasePath },
	}
	managedDirectoryFlag = pathFlagDefinition{
		flagName:         managedDirectoryFlagNameConstant,
		usage:            managedDirectoryFlagUsageConstant,
		configurationKey: configurationManagedDirectoryKeyConstant,
		value:            func(paths *reconcile.Paths) *string { return &paths.ManagedDirectory },
	}
	holdingDirectoryFlag = pathFlagDefinition{
		flagName:         holdingDirectoryFlagNameConstant,
		usage:            holdingDirectoryFlagUsageConstant,
		configurationKey: configurationHoldingDirectoryKeyConstant,
		value:            func(paths *reconcile.Paths) *string { return &paths.HoldingDirectory },
	}
	storageDirectoryFlag = pathFlagDefinition{
		flagName:         storageDirectoryFlagNameConstant,
		usage:            storageDirectoryFlagUsageConstant,
		configurationKey: configurationStorageDirectoryKeyConstant,
		value:            func(paths *reconcile.Paths) *string { return &paths.StorageDirectory },
	}
	storageHoldingDirectoryFlag = pathFlagDefinition{
		flagName:         storageHoldingDirectoryFlagNameConstant,
		usage:            storageHoldingDirectoryFlagUsageConstant,
		configurationKey: configurationStorageHoldingDirectoryKeyConstant,
		value:            func(paths *reconcile.Paths) *string { return &paths.StorageHoldingDirectory },
	}
)

// commandSupport carries the collaborators every library command resolves the same way.
type commandSupport struct {
	loggerProvider        LoggerProvider
	configurationProvider ConfigurationProvider
	prompterFactory       PrompterFactory
}

func bindPathFlags(command *cobra.Command, definitions ...pathFlagDefinition) {
	for _, definition := range definitions {
		command.Flags().String(definition.flagName, "", definition.usage)
	}
}

// resolvePaths layers explicitly set path flags over configuration and fails when a required location is blank.
func (support commandSupport) resolvePaths(command *cobra.Command, configuration Configuration, definitions ...pathFlagDefinition) (reconcile.Paths, error) {
	paths := configuration.Paths()
	for _, definition := range definitions {
		target := definition.value(&paths)
		if command.Flags().Changed(definition.flagName) {
			flagValue, _ := command.Flags().GetString(definition.flagName)
			*target = libraryHomeDirectoryExpander.ExpandDirectory(flagValue)
		}
		if len(strings.TrimSpace(*target)) == 0 {
			return reconcile.Paths{}, fmt.Errorf(missingPathTemplateConstant, definition.flagName, definition.flagName, definition.configurationKey)
		}
	}
	return paths, nil
}

func (support commandSupport) resolveConfiguration() CommandConfiguration {
	if support.configurationProvider == nil {
		return CommandConfiguration{Library: DefaultConfiguration()}
	}
	return support.configurationProvider()
}

func (support commandSupport) resolveExecutionOptions(command *cobra.Command, configuration CommandConfiguration) reconcile.ExecutionOptions {
	dryRun, assumeYes := configuration.DryRun, configuration.AssumeYes
	if executionFlags, available := flagutils.ResolveExecutionFlags(command); available {
		dryRun, assumeYes = executionFlags.Apply(dryRun, assumeYes)
	}
	return reconcile.ExecutionOptions{DryRun: dryRun, AssumeYes: assumeYes}
}

func (support commandSupport) resolveLogger() *zap.Logger {
	if support.loggerProvider == nil {
		return zap.NewNop()
	}
	logger := support.loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (support commandSupport) resolvePrompter(command *cobra.Command) reconcile.ConfirmationPrompter {
	if support.prompterFactory != nil {
		if prompter := support.prompterFactory(command); prompter != nil {
			return prompter
		}
	}
	return prompt.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}

func (support commandSupport) newService(command *cobra.Command) *reconcile.Service {
	logger := support.resolveLogger()

	return reconcile.NewService(
		attachments.NewExtractor(logger),
		discovery.NewFileDiscoverer(logger),
		reconcile.Dependencies{
			FileSystem: filesystem.OSFileSystem{},
			Prompter:   support.resolvePrompter(command),
			Logger:     logger,
			Output:     command.OutOrStdout(),
			Errors:     command.ErrOrStderr(),
		},
	)
}

func rejectArguments(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf(unexpectedArgumentsTemplateConstant, command.Name())
	}
	return nil
}
