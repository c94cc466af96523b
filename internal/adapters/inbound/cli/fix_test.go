package cli_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixCommand_AppliesFixes(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "fixme.xml", brokenSuite)

	out, err := run(t, "fix", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "fixed E101")
	assert.Contains(t, out, "fixed E104")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name="AutoFixedSuite"`)
	assert.Contains(t, string(data), "Smoke_Copy")
	assert.FileExists(t, path+".bak")
}

func TestFixCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "fixme.xml", brokenSuite)

	out, err := run(t, "fix", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would fix")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, brokenSuite, string(data))
	assert.NoFileExists(t, path+".bak")
}

func TestFixCommand_NoBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "fixme.xml", brokenSuite)

	_, err := run(t, "fix", dir, "--no-backup")
	require.NoError(t, err)
	assert.NoFileExists(t, path+".bak")
}

func TestFixCommand_VerboseShowsManualSuggestions(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "empty.xml", "<suite name=\"S\">\n</suite>\n")

	out, err := run(t, "fix", dir, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "manual E106")
	assert.Contains(t, out, "Fix: empty suite")
	assert.Contains(t, out, "1.")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "suitelint")
}

func TestCodesCommand(t *testing.T) {
	out, err := run(t, "codes")
	require.NoError(t, err)
	assert.Contains(t, out, "E101")
	assert.Contains(t, out, "E310")
	assert.Contains(t, out, "structure")
}

func TestCodesCommand_CategoryFilter(t *testing.T) {
	out, err := run(t, "codes", "--category", "semantic")
	require.NoError(t, err)
	assert.Contains(t, out, "E300")
	assert.NotContains(t, out, "E101")
}

func TestCodesCommand_UnknownCategory(t *testing.T) {
	_, err := run(t, "codes", "--category", "bogus")
	assert.Error(t, err)
}
