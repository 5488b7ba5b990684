package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eignung/flashcards/cmd/quizctl/commands"
	"github.com/eignung/flashcards/internal/app"
	"github.com/eignung/flashcards/internal/infrastructure/config"
	"github.com/eignung/flashcards/internal/store/storetest"
)

func newContainer(t *testing.T) *app.Container {
	t.Helper()
	c, err := app.New(&config.Config{}, zap.NewNop(), storetest.NewMemory())
	require.NoError(t, err)
	return c
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCommand(t *testing.T) {
	c := newContainer(t)
	path := writeFile(t, `[
		{"question_text": "Was ist ein Inode?", "type": "text", "solution_text": "Metadaten"},
		{"question_text": "", "type": "text", "solution_text": "x"}
	]`)

	out, err := execute(t, commands.ImportCommand(c), path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported: 1")
	assert.Contains(t, out, "#1: question missing/empty")

	out, err = execute(t, commands.ImportCommand(c), "--mode", "update", path)
	require.NoError(t, err)
	assert.Contains(t, out, "updated:  1")

	_, err = execute(t, commands.ImportCommand(c), "--mode", "merge", path)
	assert.Error(t, err)

	_, err = execute(t, commands.ImportCommand(c), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExportCommand_ToFile(t *testing.T) {
	c := newContainer(t)
	_, err := execute(t, commands.ImportCommand(c), writeFile(t, `[{"question_text": "Q", "type": "text", "solution_text": "S", "category": "Linux"}]`))
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "export.json")
	out, err := execute(t, commands.ExportCommand(c), "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 question(s)")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category": "Linux"`)
}

func TestTruncateNeedsConfirmation(t *testing.T) {
	c := newContainer(t)
	_, err := execute(t, commands.ImportCommand(c), writeFile(t, `[{"question_text": "Q", "type": "text", "solution_text": "S"}]`))
	require.NoError(t, err)

	var truncate *cobra.Command
	for _, cmd := range commands.MaintenanceCommands(c) {
		if cmd.Name() == "truncate" {
			truncate = cmd
		}
	}
	require.NotNil(t, truncate)

	_, err = execute(t, truncate)
	assert.Error(t, err)

	n, err := c.Store.CountQuestions(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out, err := execute(t, truncate, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "questions left: 0")
}

func TestCategoriesAndStats(t *testing.T) {
	c := newContainer(t)
	_, err := execute(t, commands.ImportCommand(c), writeFile(t, `[
		{"question_text": "Was ist ein Inode?", "type": "text", "solution_text": "S", "category": "Linux"},
		{"question_text": "Was ist chmod?", "type": "text", "solution_text": "S", "category": "Unix"}
	]`))
	require.NoError(t, err)

	out, err := execute(t, commands.CategoryCommands(c), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Linux")
	assert.Contains(t, out, "Unix")

	out, err = execute(t, commands.CategoryCommands(c), "merge", "2", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "moved 1 question(s)")

	out, err = execute(t, commands.StatsCommand(c))
	require.NoError(t, err)
	assert.Contains(t, out, "questions: 2")
	assert.Contains(t, out, "Linux")
	assert.NotContains(t, out, "Unix")
}
