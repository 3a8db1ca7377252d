package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/zotdoctor/internal/discovery"
	"github.com/temirov/zotdoctor/internal/identity"
)

const (
	testComposedCafeFileNameConstant   = "caf\u00e9.pdf"
	testDecomposedCafeIdentityConstant = "cafe\u0301.pdf"
	testFilePermissionsConstant        = 0o600
	testDirectoryPermissionsConstant   = 0o755
)

func writeFixtureFiles(testInstance *testing.T, root string, relativePaths ...string) {
	testInstance.Helper()
	for _, relativePath := range relativePaths {
		absolutePath := filepath.Join(root, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), testDirectoryPermissionsConstant))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(relativePath), testFilePermissionsConstant))
	}
}

func TestDiscoverIdentitiesWalksRecursively(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root,
		"A.pdf",
		testComposedCafeFileNameConstant,
		"DOC.PDF",
		"doc.pdf",
		"Mixed.Pdf",
		"nested/deep/x.pdf",
		".hidden/h.pdf",
		".dotfile.pdf",
		"notes.txt",
		"archive.pdf.bak",
	)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(root, "folder.pdf"), testDirectoryPermissionsConstant))

	discoverer := discovery.NewFileDiscoverer(zap.NewNop())
	identities, discoverError := discoverer.DiscoverIdentities(root)
	require.NoError(testInstance, discoverError)

	require.Equal(testInstance, []identity.Identity{
		".dotfile.pdf",
		".hidden/h.pdf",
		"A.pdf",
		"DOC.PDF",
		"Mixed.Pdf",
		identity.Identity(testDecomposedCafeIdentityConstant),
		"doc.pdf",
		"nested/deep/x.pdf",
	}, identities.Sorted())
}

func TestDiscoverIdentitiesIsIdempotent(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "a.pdf", "b/c.pdf")

	discoverer := discovery.NewFileDiscoverer(nil)
	first, firstError := discoverer.DiscoverIdentities(root)
	require.NoError(testInstance, firstError)
	second, secondError := discoverer.DiscoverIdentities(root)
	require.NoError(testInstance, secondError)

	require.True(testInstance, first.Equal(second))
}

func TestDiscoverIdentitiesFollowsSymlinkedRoot(testInstance *testing.T) {
	target := testInstance.TempDir()
	writeFixtureFiles(testInstance, target, "linked/paper.pdf")

	linkRoot := filepath.Join(testInstance.TempDir(), "library")
	if symlinkError := os.Symlink(target, linkRoot); symlinkError != nil {
		testInstance.Skipf("symlinks unavailable: %v", symlinkError)
	}

	identities, discoverError := discovery.NewFileDiscoverer(nil).DiscoverIdentities(linkRoot)
	require.NoError(testInstance, discoverError)
	require.Equal(testInstance, []identity.Identity{"linked/paper.pdf"}, identities.Sorted())
}

func TestDiscoverFilesSkipsExcludedDirectories(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root,
		"ABCD1234/first.pdf",
		"EFGH5678/SECOND.PDF",
		"EFGH5678/cover.png",
		"holding/already-moved.pdf",
	)

	files, discoverError := discovery.NewFileDiscoverer(nil).DiscoverFiles(root, filepath.Join(root, "holding"), "")
	require.NoError(testInstance, discoverError)

	require.Equal(testInstance, []string{
		filepath.Join(root, "ABCD1234", "first.pdf"),
		filepath.Join(root, "EFGH5678", "SECOND.PDF"),
	}, files)
}

func TestDiscoverFilesMatchesExcludedDirectoriesAcrossPathForms(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "KEY1/first.pdf", "holding/already-moved.pdf")

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	relativeRoot, relativeError := filepath.Rel(workingDirectory, root)
	require.NoError(testInstance, relativeError)

	testCases := []struct {
		name              string
		root              string
		excludedDirectory string
		expectedFile      string
	}{
		{
			name:              "relative_root_absolute_exclusion",
			root:              relativeRoot,
			excludedDirectory: filepath.Join(root, "holding"),
			expectedFile:      filepath.Join(relativeRoot, "KEY1", "first.pdf"),
		},
		{
			name:              "absolute_root_relative_exclusion",
			root:              root,
			excludedDirectory: filepath.Join(relativeRoot, "holding"),
			expectedFile:      filepath.Join(root, "KEY1", "first.pdf"),
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			files, discoverError := discovery.NewFileDiscoverer(nil).DiscoverFiles(testCase.root, testCase.excludedDirectory)
			require.NoError(subtest, discoverError)
			require.Equal(subtest, []string{testCase.expectedFile}, files)
		})
	}
}

func TestDiscoverCatalogKeepsOnDiskNames(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "Authors/"+testComposedCafeFileNameConstant, "plain.pdf")

	catalog, discoverError := discovery.NewFileDiscoverer(nil).DiscoverCatalog(root)
	require.NoError(testInstance, discoverError)

	decomposedIdentity := identity.Identity("Authors/" + testDecomposedCafeIdentityConstant)
	require.Equal(testInstance, []identity.Identity{decomposedIdentity, "plain.pdf"}, catalog.Set().Sorted())
	require.Equal(testInstance, "Authors/"+testComposedCafeFileNameConstant, catalog.RelativePath(decomposedIdentity))
	require.FileExists(testInstance, catalog.Path(decomposedIdentity, root))
}

func TestDiscoverRejectsInvalidRoots(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "file.pdf")

	discoverer := discovery.NewFileDiscoverer(nil)

	_, missingError := discoverer.DiscoverIdentities(filepath.Join(root, "missing"))
	require.Error(testInstance, missingError)
	require.ErrorIs(testInstance, missingError, os.ErrNotExist)

	_, fileRootError := discoverer.DiscoverFiles(filepath.Join(root, "file.pdf"))
	require.ErrorIs(testInstance, fileRootError, discovery.ErrRootNotDirectory)
}
