package reconcile_test

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/temirov/zotdoctor/internal/filesystem"
	"github.com/temirov/zotdoctor/internal/prompt"
)

const (
	testDatabaseFileNameConstant     = "zotero.sqlite"
	testFilePermissionsConstant      = 0o600
	testDirectoryPermissionsConstant = 0o755
	testCreateTableStatementConstant = `CREATE TABLE itemAttachments (itemID INTEGER PRIMARY KEY, linkMode INT, contentType TEXT, path TEXT)`
	testInsertStatementConstant      = `INSERT INTO itemAttachments (linkMode, contentType, path) VALUES (2, 'application/pdf', ?)`
)

func createDatabase(testInstance *testing.T, paths ...string) string {
	testInstance.Helper()

	databasePath := filepath.Join(testInstance.TempDir(), testDatabaseFileNameConstant)
	database, openError := sql.Open("sqlite", databasePath)
	require.NoError(testInstance, openError)
	defer database.Close()

	_, createError := database.Exec(testCreateTableStatementConstant)
	require.NoError(testInstance, createError)
	for _, path := range paths {
		_, insertError := database.Exec(testInsertStatementConstant, path)
		require.NoError(testInstance, insertError)
	}
	return databasePath
}

func writeFiles(testInstance *testing.T, root string, relativePaths ...string) {
	testInstance.Helper()
	for _, relativePath := range relativePaths {
		absolutePath := filepath.Join(root, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), testDirectoryPermissionsConstant))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(relativePath), testFilePermissionsConstant))
	}
}

func readFile(testInstance *testing.T, path string) string {
	testInstance.Helper()
	content, readError := os.ReadFile(path)
	require.NoError(testInstance, readError)
	return string(content)
}

type failingRenameFileSystem struct {
	filesystem.OSFileSystem
	failingSources map[string]error
	renamed        [][2]string
}

func (fileSystem *failingRenameFileSystem) Rename(oldPath string, newPath string) error {
	if renameError, fails := fileSystem.failingSources[oldPath]; fails {
		return renameError
	}
	fileSystem.renamed = append(fileSystem.renamed, [2]string{oldPath, newPath})
	return fileSystem.OSFileSystem.Rename(oldPath, newPath)
}

var errPermissionDenied = errors.New("permission denied")

type scriptedPrompter struct {
	responses []prompt.ConfirmationResult
	prompts   []string
	err       error
}

func (prompter *scriptedPrompter) Confirm(promptText string) (prompt.ConfirmationResult, error) {
	prompter.prompts = append(prompter.prompts, promptText)
	if prompter.err != nil {
		return prompt.ConfirmationResult{}, prompter.err
	}
	if len(prompter.responses) == 0 {
		return prompt.ConfirmationResult{}, nil
	}
	response := prompter.responses[0]
	prompter.responses = prompter.responses[1:]
	return response, nil
}
