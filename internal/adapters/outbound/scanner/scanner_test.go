package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suitelint/suitelint/internal/adapters/outbound/scanner"
)

func touch(t *testing.T, dir, rel string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("<suite/>"), 0644))
	return path
}

func TestDiscover_RecursiveXMLOnly(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "suite.xml")
	b := touch(t, dir, "sub/nested.XML")
	touch(t, dir, "README.md")
	touch(t, dir, "sub/pom.txt")

	files, err := scanner.New().Discover([]string{dir}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, files)
}

func TestDiscover_SkipsBuildDirs(t *testing.T) {
	dir := t.TempDir()
	keep := touch(t, dir, "suite.xml")
	touch(t, dir, "target/generated.xml")
	touch(t, dir, ".git/config.xml")
	touch(t, dir, "node_modules/pkg/x.xml")

	files, err := scanner.New().Discover([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)
}

func TestDiscover_ExtraExcludes(t *testing.T) {
	dir := t.TempDir()
	keep := touch(t, dir, "suite.xml")
	touch(t, dir, "legacy/old.xml")

	files, err := scanner.New().Discover([]string{dir}, []string{"legacy/"})
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)
}

func TestDiscover_ExplicitFileTakenAsIs(t *testing.T) {
	dir := t.TempDir()
	// An explicit path is not filtered by extension.
	path := filepath.Join(dir, "testng-suite")
	require.NoError(t, os.WriteFile(path, []byte("<suite/>"), 0644))

	files, err := scanner.New().Discover([]string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.xml")
	b := touch(t, dir, "b.xml")

	files, err := scanner.New().Discover([]string{b, dir, a}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	_, err := scanner.New().Discover([]string{filepath.Join(t.TempDir(), "nope")}, nil)
	assert.Error(t, err)
}
