// Package library provides the Cobra commands that compare and repair a Zotero
// attachment database against its zotfile-managed directory.
package library
