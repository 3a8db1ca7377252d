// Package reconcile compares the attachment database with the managed
// directory and repairs drift between them.
//
// Diff reports identities tracked on only one side. QuarantineExecutor moves
// untracked files out of the managed directory into a holding directory,
// preserving their relative layout, and ConsolidationExecutor flattens files
// from the internal storage tree into a holding directory. Both executors
// report per-file failures and continue with the remaining files.
package reconcile
