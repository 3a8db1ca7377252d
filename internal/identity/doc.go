// Package identity canonicalizes attachment paths into comparable identities.
//
// An Identity is the managed-folder-relative, slash-separated, NFD-normalized
// path of a tracked file. Normalizer resolves raw database or filesystem
// paths into identities and reports excluded inputs through Resolution
// instead of errors. Set provides the set algebra used by reconciliation.
package identity
