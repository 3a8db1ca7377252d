package library

import (
	"github.com/temirov/zotdoctor/internal/reconcile"
	pathutils "github.com/temirov/zotdoctor/internal/utils/path"
)

const (
	configurationDatabaseKeyConstant                = "database"
	configurationManagedDirectoryKeyConstant        = "managed_directory"
	configurationHoldingDirectoryKeyConstant        = "holding_directory"
	configurationStorageDirectoryKeyConstant        = "storage_directory"
	configurationStorageHoldingDirectoryKeyConstant = "storage_holding_directory"
	defaultDatabasePathConstant                     = "~/Zotero/zotero.sqlite"
	defaultManagedDirectoryConstant                 = "~/Dropbox/Zotero"
	defaultHoldingDirectoryConstant                 = "~/temp_files"
	defaultStorageDirectoryConstant                 = "~/Zotero/storage"
	defaultStorageHoldingDirectoryConstant          = "~/storage_temp"
)

var libraryHomeDirectoryExpander = pathutils.NewHomeExpander()

// Configuration describes where the attachment database and the attachment folders live.
type Configuration struct {
	Database                string `mapstructure:"database"`
	ManagedDirectory        string `mapstructure:"managed_directory"`
	HoldingDirectory        string `mapstructure:"holding_directory"`
	StorageDirectory        string `mapstructure:"storage_directory"`
	StorageHoldingDirectory string `mapstructure:"storage_holding_directory"`
}

// CommandConfiguration combines library locations with the execution defaults shared by every command.
type CommandConfiguration struct {
	Library   Configuration
	DryRun    bool
	AssumeYes bool
}

// DefaultConfiguration returns the conventional locations of a desktop Zotero installation with zotfile.
func DefaultConfiguration() Configuration {
	return Configuration{
		Database:                defaultDatabasePathConstant,
		ManagedDirectory:        defaultManagedDirectoryConstant,
		HoldingDirectory:        defaultHoldingDirectoryConstant,
		StorageDirectory:        defaultStorageDirectoryConstant,
		StorageHoldingDirectory: defaultStorageHoldingDirectoryConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the library section rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationDatabaseKeyConstant:                defaults.Database,
		rootKey + "." + configurationManagedDirectoryKeyConstant:        defaults.ManagedDirectory,
		rootKey + "." + configurationHoldingDirectoryKeyConstant:        defaults.HoldingDirectory,
		rootKey + "." + configurationStorageDirectoryKeyConstant:        defaults.StorageDirectory,
		rootKey + "." + configurationStorageHoldingDirectoryKeyConstant: defaults.StorageHoldingDirectory,
	}
}

// sanitize trims every location and expands a leading ~.
func (configuration Configuration) sanitize() Configuration {
	return Configuration{
		Database:                libraryHomeDirectoryExpander.ExpandDirectory(configuration.Database),
		ManagedDirectory:        libraryHomeDirectoryExpander.ExpandDirectory(configuration.ManagedDirectory),
		HoldingDirectory:        libraryHomeDirectoryExpander.ExpandDirectory(configuration.HoldingDirectory),
		StorageDirectory:        libraryHomeDirectoryExpander.ExpandDirectory(configuration.StorageDirectory),
		StorageHoldingDirectory: libraryHomeDirectoryExpander.ExpandDirectory(configuration.StorageHoldingDirectory),
	}
}

// Paths converts the configuration into the locations consumed by reconciliation.
func (configuration Configuration) Paths() reconcile.Paths {
	sanitized := configuration.sanitize()
	return reconcile.Paths{
		DatabasePath:            sanitized.Database,
		ManagedDirectory:        sanitized.ManagedDirectory,
		HoldingDirectory:        sanitized.HoldingDirectory,
		StorageDirectory:        sanitized.StorageDirectory,
		StorageHoldingDirectory: sanitized.StorageHoldingDirectory,
	}
}
