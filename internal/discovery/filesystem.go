package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/zotdoctor/internal/identity"
)

const (
	rootInspectionErrorTemplateConstant = "inspect directory %s: %w"
	rootNotDirectoryTemplateConstant    = "%w: %s"
	walkErrorTemplateConstant           = "walk directory %s: %w"
	skippedEntryMessageConstant         = "directory entry skipped"
	discoveryCompleteMessageConstant    = "directory scanned"
	logFieldPathConstant                = "path"
	logFieldRootConstant                = "root"
	logFieldFileCountConstant           = "file_count"
)

// ErrRootNotDirectory indicates the requested root exists but is not a directory.
var ErrRootNotDirectory = errors.New("not a directory")

// FileDiscoverer locates tracked files on disk.
type FileDiscoverer struct {
	logger *zap.Logger
}

// NewFileDiscoverer constructs a discoverer backed by filepath.WalkDir.
func NewFileDiscoverer(logger *zap.Logger) *FileDiscoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileDiscoverer{logger: logger}
}

// DiscoverIdentities walks root recursively and returns the identities of every tracked file beneath it.
func (discoverer *FileDiscoverer) DiscoverIdentities(root string) (identity.Set, error) {
	catalog, discoverError := discoverer.DiscoverCatalog(root)
	if discoverError != nil {
		return identity.Set{}, discoverError
	}
	return catalog.Set(), nil
}

// DiscoverCatalog walks root recursively and records each tracked file's identity together with its
// slash-separated path relative to root, spelled as it is on disk.
func (discoverer *FileDiscoverer) DiscoverCatalog(root string) (identity.Catalog, error) {
	catalog := identity.NewCatalog()
	normalizer := identity.NewNormalizer(root)

	walkError := discoverer.walkTrackedFiles(root, nil, func(path string) {
		relativePath, relativeError := filepath.Rel(root, path)
		if relativeError != nil {
			return
		}
		resolution := normalizer.ResolveRelative(relativePath)
		if resolution.Excluded {
			return
		}
		catalog.Add(resolution.Identity, filepath.ToSlash(relativePath))
	})
	if walkError != nil {
		return identity.Catalog{}, walkError
	}

	discoverer.logger.Info(
		discoveryCompleteMessageConstant,
		zap.String(logFieldRootConstant, root),
		zap.Int(logFieldFileCountConstant, catalog.Set().Len()),
	)

	return catalog, nil
}

// DiscoverFiles walks root recursively and returns the sorted paths of tracked files.
// Directories listed in excludedDirectories are not descended into, whether given as absolute or relative paths.
func (discoverer *FileDiscoverer) DiscoverFiles(root string, excludedDirectories ...string) ([]string, error) {
	excluded := make(map[string]struct{}, len(excludedDirectories))
	for _, excludedDirectory := range excludedDirectories {
		if len(excludedDirectory) == 0 {
			continue
		}
		excluded[absolutePath(excludedDirectory)] = struct{}{}
	}

	var files []string
	walkError := discoverer.walkTrackedFiles(root, excluded, func(path string) {
		files = append(files, path)
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(files)
	return files, nil
}

func (discoverer *FileDiscoverer) walkTrackedFiles(root string, excludedDirectories map[string]struct{}, visit func(path string)) error {
	rootInfo, statError := os.Stat(root)
	if statError != nil {
		return fmt.Errorf(rootInspectionErrorTemplateConstant, root, statError)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(rootNotDirectoryTemplateConstant, ErrRootNotDirectory, root)
	}

	walkRoot := root
	if resolvedRoot, resolveError := filepath.EvalSymlinks(root); resolveError == nil {
		walkRoot = resolvedRoot
	}

	walkError := filepath.WalkDir(walkRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == walkRoot {
				return walkError
			}
			discoverer.logger.Debug(skippedEntryMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(walkError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		relativePath, relativeError := filepath.Rel(walkRoot, path)
		if relativeError != nil {
			return nil
		}
		requestedPath := filepath.Join(root, relativePath)

		if directoryEntry.IsDir() {
			if _, isExcluded := excludedDirectories[absolutePath(requestedPath)]; isExcluded && path != walkRoot {
				return fs.SkipDir
			}
			return nil
		}

		if !directoryEntry.Type().IsRegular() {
			return nil
		}

		if !identity.HasTrackedExtension(directoryEntry.Name()) {
			return nil
		}

		visit(requestedPath)
		return nil
	})
	if walkError != nil {
		return fmt.Errorf(walkErrorTemplateConstant, root, walkError)
	}

	return nil
}

func absolutePath(path string) string {
	resolvedPath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return filepath.Clean(path)
	}
	return resolvedPath
}
