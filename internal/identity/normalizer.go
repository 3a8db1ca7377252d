package identity

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// TrackedExtensionConstant is the lowercase file extension reconciled by the tool.
	TrackedExtensionConstant = ".pdf"
	// RelativePathMarkerConstant marks database paths stored relative to the managed directory.
	RelativePathMarkerConstant        = "attachments:"
	parentDirectoryReferenceConstant  = ".."
	currentDirectoryReferenceConstant = "."
)

// ExclusionReason explains why a raw path did not produce an identity.
type ExclusionReason string

// Supported exclusion reasons.
const (
	ExclusionReasonEmptyPath            ExclusionReason = "empty_path"
	ExclusionReasonUnsupportedExtension ExclusionReason = "unsupported_extension"
	ExclusionReasonOutsideBaseDirectory ExclusionReason = "outside_base_directory"
	ExclusionReasonMalformedPath        ExclusionReason = "malformed_path"
)

// Resolution is the outcome of resolving a raw path: either an identity or an exclusion.
type Resolution struct {
	Identity Identity
	Excluded bool
	Reason   ExclusionReason
}

// Included constructs a resolution carrying a valid identity.
func Included(identity Identity) Resolution {
	return Resolution{Identity: identity}
}

// Excluded constructs a resolution for an input that is out of scope.
func Excluded(reason ExclusionReason) Resolution {
	return Resolution{Excluded: true, Reason: reason}
}

// Normalizer resolves raw paths into identities relative to a base directory.
type Normalizer struct {
	baseDirectory string
}

// NewNormalizer constructs a Normalizer anchored at the managed base directory.
// A relative base directory is resolved against the working directory.
func NewNormalizer(baseDirectory string) Normalizer {
	cleanedBase := ""
	if len(strings.TrimSpace(baseDirectory)) > 0 {
		absoluteBase, absoluteError := filepath.Abs(baseDirectory)
		if absoluteError != nil {
			absoluteBase = filepath.Clean(baseDirectory)
		}
		cleanedBase = norm.NFD.String(absoluteBase)
	}
	return Normalizer{baseDirectory: cleanedBase}
}

// BaseDirectory returns the normalized base directory.
func (normalizer Normalizer) BaseDirectory() string {
	return normalizer.baseDirectory
}

// Resolve converts a database path into an identity.
// Paths containing the relative marker are treated as relative to the base
// directory; all other paths must be absolute and located under it.
func (normalizer Normalizer) Resolve(rawPath string) Resolution {
	if len(strings.TrimSpace(rawPath)) == 0 {
		return Excluded(ExclusionReasonEmptyPath)
	}

	if !HasTrackedExtension(rawPath) {
		return Excluded(ExclusionReasonUnsupportedExtension)
	}

	if strings.Contains(rawPath, RelativePathMarkerConstant) {
		relativePath := strings.ReplaceAll(rawPath, RelativePathMarkerConstant, "")
		return normalizeRelative(filepath.ToSlash(relativePath))
	}

	if len(normalizer.baseDirectory) == 0 || !filepath.IsAbs(rawPath) {
		return Excluded(ExclusionReasonOutsideBaseDirectory)
	}

	normalizedPath := norm.NFD.String(filepath.Clean(rawPath))
	relativePath, relativeError := filepath.Rel(normalizer.baseDirectory, normalizedPath)
	if relativeError != nil {
		return Excluded(ExclusionReasonMalformedPath)
	}

	if escapesBaseDirectory(relativePath) {
		return Excluded(ExclusionReasonOutsideBaseDirectory)
	}

	return normalizeRelative(filepath.ToSlash(relativePath))
}

// ResolveRelative converts a path already relative to the base directory into an identity.
func (normalizer Normalizer) ResolveRelative(relativePath string) Resolution {
	if len(strings.TrimSpace(relativePath)) == 0 {
		return Excluded(ExclusionReasonEmptyPath)
	}
	if !HasTrackedExtension(relativePath) {
		return Excluded(ExclusionReasonUnsupportedExtension)
	}
	return normalizeRelative(filepath.ToSlash(relativePath))
}

// HasTrackedExtension reports whether the name ends with the tracked extension, ignoring case.
func HasTrackedExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), TrackedExtensionConstant)
}

func normalizeRelative(slashPath string) Resolution {
	if len(slashPath) == 0 || path.IsAbs(slashPath) {
		return Excluded(ExclusionReasonMalformedPath)
	}
	return Included(Identity(norm.NFD.String(slashPath)))
}

func escapesBaseDirectory(relativePath string) bool {
	if relativePath == currentDirectoryReferenceConstant {
		return true
	}
	if relativePath == parentDirectoryReferenceConstant {
		return true
	}
	return strings.HasPrefix(relativePath, parentDirectoryReferenceConstant+string(filepath.Separator))
}
