package cli

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	_ "modernc.org/sqlite"

	"github.com/temirov/zotdoctor/internal/utils"
)

type applicationFixture struct {
	application  *Application
	output       *bytes.Buffer
	errors       *bytes.Buffer
	logs         *bytes.Buffer
	databasePath string
	managed      string
	holding      string
}

func newApplicationFixture(t *testing.T) applicationFixture {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	fixture := applicationFixture{
		output:       &bytes.Buffer{},
		errors:       &bytes.Buffer{},
		logs:         &bytes.Buffer{},
		databasePath: filepath.Join(t.TempDir(), "zotero.sqlite"),
		managed:      t.TempDir(),
		holding:      filepath.Join(t.TempDir(), "temp_files"),
	}

	database, openError := sql.Open("sqlite", fixture.databasePath)
	require.NoError(t, openError)
	defer database.Close()
	_, createError := database.Exec(`CREATE TABLE itemAttachments (itemID INTEGER PRIMARY KEY, linkMode INT, contentType TEXT, path TEXT)`)
	require.NoError(t, createError)
	_, insertError := database.Exec(`INSERT INTO itemAttachments (linkMode, contentType, path) VALUES (2, 'application/pdf', 'attachments:x.pdf')`)
	require.NoError(t, insertError)

	for _, fileName := range []string{"x.pdf", "y.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(fixture.managed, fileName), []byte(fileName), 0o600))
	}

	fixture.application = newApplication(utils.NewLoggerFactoryWithOutput(zapcore.AddSync(fixture.logs)))
	fixture.application.rootCommand.SetOut(fixture.output)
	fixture.application.rootCommand.SetErr(fixture.errors)
	return fixture
}

func (fixture applicationFixture) databaseExec(statement string) (sql.Result, error) {
	database, openError := sql.Open("sqlite", fixture.databasePath)
	if openError != nil {
		return nil, openError
	}
	defer database.Close()
	return database.Exec(statement)
}

func (fixture applicationFixture) execute(arguments ...string) error {
	fixture.application.rootCommand.SetArgs(arguments)
	return fixture.application.Execute()
}

func TestApplicationRunsDiffWithFlagPaths(t *testing.T) {
	fixture := newApplicationFixture(t)

	executionError := fixture.execute("diff", "--database", fixture.databasePath, "--managed-dir", fixture.managed, "--log-format", "structured")
	require.NoError(t, executionError)

	require.Contains(t, fixture.output.String(), "There were 1/2 files in managed directory but not in DB:\n   y.pdf\n")
	require.Contains(t, fixture.logs.String(), `"msg":"configuration initialized"`)
	require.Contains(t, fixture.logs.String(), `"msg":"reconciliation diff computed"`)
}

func TestApplicationReadsEnvironmentAndConfigurationFile(t *testing.T) {
	fixture := newApplicationFixture(t)
	t.Setenv("ZOTDOCTOR_LIBRARY_DATABASE", fixture.databasePath)

	configurationPath := filepath.Join(t.TempDir(), "config.yaml")
	configurationContent := "common:\n  assume_yes: true\n  log_level: error\nlibrary:\n  database: /ignored/zotero.sqlite\n  managed_directory: " + fixture.managed + "\n  holding_directory: " + fixture.holding + "\n"
	require.NoError(t, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	executionError := fixture.execute("quarantine", "--config", configurationPath)
	require.NoError(t, executionError)

	require.Equal(t, fixture.databasePath, fixture.application.configuration.Library.Database)
	require.Equal(t, configurationPath, fixture.application.configurationMetadata.ConfigFileUsed)
	require.FileExists(t, filepath.Join(fixture.holding, "y.pdf"))
	require.FileExists(t, filepath.Join(fixture.managed, "x.pdf"))
	require.NotContains(t, fixture.logs.String(), "configuration initialized")
}

func TestApplicationLogLevelFlagOverridesConfiguration(t *testing.T) {
	fixture := newApplicationFixture(t)
	_, writeError := fixture.databaseExec(`INSERT INTO itemAttachments (linkMode, contentType, path) VALUES (2, 'text/plain', 'attachments:notes.txt')`)
	require.NoError(t, writeError)

	executionError := fixture.execute("diff", "--database", fixture.databasePath, "--managed-dir", fixture.managed, "--log-level", "debug")
	require.NoError(t, executionError)
	require.Equal(t, "debug", fixture.application.configuration.Common.LogLevel)
	require.Contains(t, fixture.logs.String(), "configuration initialized")
	require.Contains(t, fixture.logs.String(), "DEBUG")
}

func TestApplicationRejectsInvalidLogLevel(t *testing.T) {
	fixture := newApplicationFixture(t)

	executionError := fixture.execute("diff", "--log-level", "verbose")
	require.Error(t, executionError)
	require.Contains(t, executionError.Error(), "unable to create logger")
}

func TestApplicationRegistersCommands(t *testing.T) {
	application := NewApplication()

	registered := map[string]bool{}
	for _, subcommand := range application.rootCommand.Commands() {
		registered[subcommand.Name()] = true
	}
	require.True(t, registered["diff"])
	require.True(t, registered["quarantine"])
	require.True(t, registered["consolidate"])
}
