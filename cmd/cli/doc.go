// Package cli constructs the zotdoctor command-line interface. It wires the
// Cobra command hierarchy to the Viper configuration loader and the zap
// logger, and registers the diff, quarantine and consolidate commands.
package cli
