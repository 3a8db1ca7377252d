// Package flags binds the execution flags shared by the file-moving commands.
package flags

import (
	"github.com/spf13/cobra"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Print planned moves without touching the filesystem"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Move files without asking for confirmation"
)

// ExecutionFlags reports the execution flag values and whether each was set explicitly.
type ExecutionFlags struct {
	DryRun       bool
	DryRunSet    bool
	AssumeYes    bool
	AssumeYesSet bool
}

// BindExecutionFlags attaches --dry-run and --yes to the command.
func BindExecutionFlags(command *cobra.Command) {
	if command == nil {
		return
	}

	flagSet := command.Flags()
	AddToggleFlag(flagSet, nil, DryRunFlagName, "", false, DryRunFlagUsage)
	AddToggleFlag(flagSet, nil, AssumeYesFlagName, AssumeYesFlagShorthand, false, AssumeYesFlagUsage)
}

// ResolveExecutionFlags reads the execution flags bound by BindExecutionFlags.
// The boolean result is false when the command does not carry them.
func ResolveExecutionFlags(command *cobra.Command) (ExecutionFlags, bool) {
	if command == nil {
		return ExecutionFlags{}, false
	}

	flagSet := command.Flags()
	dryRunFlag := flagSet.Lookup(DryRunFlagName)
	assumeYesFlag := flagSet.Lookup(AssumeYesFlagName)
	if dryRunFlag == nil || assumeYesFlag == nil {
		return ExecutionFlags{}, false
	}

	dryRunValue, _ := flagSet.GetBool(DryRunFlagName)
	assumeYesValue, _ := flagSet.GetBool(AssumeYesFlagName)

	return ExecutionFlags{
		DryRun:       dryRunValue,
		DryRunSet:    dryRunFlag.Changed,
		AssumeYes:    assumeYesValue,
		AssumeYesSet: assumeYesFlag.Changed,
	}, true
}

// Apply overlays explicitly set flags onto configured defaults.
func (executionFlags ExecutionFlags) Apply(dryRun bool, assumeYes bool) (bool, bool) {
	if executionFlags.DryRunSet {
		dryRun = executionFlags.DryRun
	}
	if executionFlags.AssumeYesSet {
		assumeYes = executionFlags.AssumeYes
	}
	return dryRun, assumeYes
}
