package identity

import "path/filepath"

// Catalog maps identities discovered on disk to the relative paths of the files that produced them.
// Filesystems that do not normalize names keep the on-disk spelling, which can differ from the identity.
type Catalog struct {
	relativePaths map[Identity]string
}

// NewCatalog constructs an empty catalog.
func NewCatalog() Catalog {
	return Catalog{relativePaths: make(map[Identity]string)}
}

// Add records the slash-separated relative path for an identity. The first path recorded wins.
func (catalog *Catalog) Add(identity Identity, relativePath string) {
	if catalog.relativePaths == nil {
		catalog.relativePaths = make(map[Identity]string)
	}
	if _, exists := catalog.relativePaths[identity]; exists {
		return
	}
	catalog.relativePaths[identity] = relativePath
}

// Set returns the identities recorded in the catalog.
func (catalog Catalog) Set() Set {
	identities := NewSet()
	for recorded := range catalog.relativePaths {
		identities.Add(recorded)
	}
	return identities
}

// RelativePath returns the on-disk relative path for the identity, or the identity itself when unknown.
func (catalog Catalog) RelativePath(identity Identity) string {
	if relativePath, exists := catalog.relativePaths[identity]; exists {
		return relativePath
	}
	return identity.String()
}

// RelativePaths maps identities to their on-disk relative paths, keeping their order.
func (catalog Catalog) RelativePaths(identities []Identity) []string {
	relativePaths := make([]string, 0, len(identities))
	for _, listed := range identities {
		relativePaths = append(relativePaths, catalog.RelativePath(listed))
	}
	return relativePaths
}

// Path joins the on-disk relative path of the identity onto directory.
func (catalog Catalog) Path(identity Identity, directory string) string {
	return filepath.Join(directory, filepath.FromSlash(catalog.RelativePath(identity)))
}
