package reconcile

import (
	"fmt"
	"io"
	"os"

	"github.com/temirov/zotdoctor/internal/identity"
)

const (
	databaseOnlyHeaderTemplateConstant  = "There were %d/%d files in DB but not in managed directory:\n"
	directoryOnlyHeaderTemplateConstant = "There were %d/%d files in managed directory but not in DB:\n"
	consolidatedHeaderTemplateConstant  = "There were %d/%d consolidated files not in managed directory:\n"
	listingEntryTemplateConstant        = "   %s\n"
	sectionSeparatorConstant            = "\n"
)

// DiffResult captures both identity sets and their differences for a single run.
type DiffResult struct {
	DatabaseSet   identity.Set
	DirectorySet  identity.Set
	DatabaseOnly  identity.Set
	DirectoryOnly identity.Set
}

// Diff computes the identities tracked by only one of the two sources.
func Diff(databaseSet identity.Set, directorySet identity.Set) DiffResult {
	return DiffResult{
		DatabaseSet:   databaseSet,
		DirectorySet:  directorySet,
		DatabaseOnly:  databaseSet.Difference(directorySet),
		DirectoryOnly: directorySet.Difference(databaseSet),
	}
}

// Reporter renders human-readable reconciliation listings.
type Reporter struct {
	writer io.Writer
}

// NewReporter constructs a Reporter writing to writer, defaulting to standard output.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// ReportDiff prints counts and sorted listings for both sides of a diff.
func (reporter *Reporter) ReportDiff(result DiffResult) {
	reporter.printListing(databaseOnlyHeaderTemplateConstant, result.DatabaseOnly, result.DatabaseSet.Len())
	fmt.Fprint(reporter.writer, sectionSeparatorConstant)
	reporter.printListing(directoryOnlyHeaderTemplateConstant, result.DirectoryOnly, result.DirectorySet.Len())
}

// ReportConsolidation prints the consolidated identities missing from the managed directory.
func (reporter *Reporter) ReportConsolidation(missing identity.Set, consolidatedCount int) {
	reporter.printListing(consolidatedHeaderTemplateConstant, missing, consolidatedCount)
}

func (reporter *Reporter) printListing(headerTemplate string, listed identity.Set, total int) {
	fmt.Fprintf(reporter.writer, headerTemplate, listed.Len(), total)
	for _, listedIdentity := range listed.Sorted() {
		fmt.Fprintf(reporter.writer, listingEntryTemplateConstant, listedIdentity)
	}
}
