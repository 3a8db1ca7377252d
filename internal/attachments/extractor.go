package attachments

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/zotdoctor/internal/identity"
)

const (
	excludedRecordMessageConstant     = "attachment record excluded"
	extractionCompleteMessageConstant = "attachment database extracted"
	logFieldDatabasePathConstant      = "database_path"
	logFieldManagedDirectoryConstant  = "managed_directory"
	logFieldRawPathConstant           = "raw_path"
	logFieldReasonConstant            = "reason"
	logFieldRecordCountConstant       = "record_count"
	logFieldIdentityCountConstant     = "identity_count"
	logFieldExcludedCountConstant     = "excluded_count"
)

// ExtractionSummary counts how database rows were classified.
type ExtractionSummary struct {
	RecordCount   int
	IdentityCount int
	Exclusions    map[identity.ExclusionReason]int
}

// ExcludedCount returns the total number of rows that did not produce an identity.
func (summary ExtractionSummary) ExcludedCount() int {
	total := 0
	for _, count := range summary.Exclusions {
		total += count
	}
	return total
}

// Extractor builds identity sets from the attachment database.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor constructs an Extractor; a nil logger disables diagnostics.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract opens the database, reads attachment rows, and resolves them against managedDirectory.
// The database handle is released before returning.
func (extractor *Extractor) Extract(executionContext context.Context, databasePath string, managedDirectory string) (identity.Set, ExtractionSummary, error) {
	store, openError := Open(executionContext, databasePath)
	if openError != nil {
		return identity.Set{}, ExtractionSummary{}, openError
	}
	defer store.Close()

	records, recordsError := store.AttachmentRecords(executionContext)
	if recordsError != nil {
		return identity.Set{}, ExtractionSummary{}, recordsError
	}

	normalizer := identity.NewNormalizer(managedDirectory)
	identities, summary := extractor.Resolve(records, normalizer)

	extractor.logger.Info(
		extractionCompleteMessageConstant,
		zap.String(logFieldDatabasePathConstant, store.Path()),
		zap.String(logFieldManagedDirectoryConstant, normalizer.BaseDirectory()),
		zap.Int(logFieldRecordCountConstant, summary.RecordCount),
		zap.Int(logFieldIdentityCountConstant, summary.IdentityCount),
		zap.Int(logFieldExcludedCountConstant, summary.ExcludedCount()),
	)

	return identities, summary, nil
}

// Resolve converts attachment records into identities, skipping rows the normalizer excludes.
func (extractor *Extractor) Resolve(records []AttachmentRecord, normalizer identity.Normalizer) (identity.Set, ExtractionSummary) {
	identities := identity.NewSet()
	summary := ExtractionSummary{
		RecordCount: len(records),
		Exclusions:  make(map[identity.ExclusionReason]int),
	}

	for _, record := range records {
		resolution := resolveRecord(record, normalizer)
		if resolution.Excluded {
			summary.Exclusions[resolution.Reason]++
			extractor.logger.Debug(
				excludedRecordMessageConstant,
				zap.Any(logFieldRawPathConstant, record.Path),
				zap.String(logFieldReasonConstant, string(resolution.Reason)),
			)
			continue
		}
		identities.Add(resolution.Identity)
	}

	summary.IdentityCount = identities.Len()
	return identities, summary
}

func resolveRecord(record AttachmentRecord, normalizer identity.Normalizer) identity.Resolution {
	switch rawPath := record.Path.(type) {
	case nil:
		return identity.Excluded(identity.ExclusionReasonEmptyPath)
	case string:
		return normalizer.Resolve(rawPath)
	case []byte:
		return normalizer.Resolve(string(rawPath))
	default:
		return identity.Excluded(identity.ExclusionReasonMalformedPath)
	}
}
