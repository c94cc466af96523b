package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suitelint/suitelint/internal/adapters/outbound/encoding"
	"github.com/suitelint/suitelint/internal/application"
	"github.com/suitelint/suitelint/internal/domain"
)

const cleanSuite = `<suite name="Regression">
  <test name="Login">
    <classes>
      <class name="com.example.LoginTest"/>
    </classes>
  </test>
</suite>`

const brokenSuite = `<suite>
  <test name="Smoke"></test>
  <test name="Smoke"></test>
</suite>`

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newValidateService(store *domain.MetadataStore) *application.ValidateService {
	return application.NewValidateService(encoding.New(), store, domain.DefaultConfig(), application.NewPathLocks())
}

func TestValidateFile_CleanSuitePasses(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "clean.xml", cleanSuite)

	svc := newValidateService(nil)
	result, err := svc.ValidateFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPass, result.Status())
	assert.Empty(t, result.Findings)
	assert.Equal(t, "utf-8", result.Encoding)
	assert.False(t, result.MetadataUsed)
	assert.Greater(t, result.FileSize, int64(0))
}

func TestValidateFile_CollectsBothStages(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "broken.xml", brokenSuite)

	svc := newValidateService(nil)
	result, err := svc.ValidateFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFail, result.Status())

	byCode := map[string]int{}
	for _, f := range result.Findings {
		byCode[f.Code]++
	}
	assert.Equal(t, 1, byCode["E101"], "hierarchy stage: suite missing name")
	assert.Equal(t, 2, byCode["E104"], "preflight stage: duplicate plus original definition")
}

func TestValidateFile_FindingsAreSortedWithContext(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "broken.xml", brokenSuite)

	svc := newValidateService(nil)
	result, err := svc.ValidateFile(path)
	require.NoError(t, err)

	require.NotEmpty(t, result.Findings)
	last := 0
	for _, f := range result.Findings {
		assert.GreaterOrEqual(t, f.Line, last)
		last = f.Line
		if f.Line > 0 {
			assert.NotEmpty(t, f.Context)
		}
	}
}

func TestValidateFile_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "big.xml", cleanSuite)

	cfg := domain.DefaultConfig()
	cfg.MaxFileSizeMB = 1
	svc := application.NewValidateService(encoding.New(), nil, cfg, application.NewPathLocks())

	// Inflate past the 1 MB cap.
	big := make([]byte, 2*1024*1024)
	require.NoError(t, os.WriteFile(path, big, 0644))

	_, err := svc.ValidateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "over the 1 MB limit")
}

func TestValidateFile_MissingFile(t *testing.T) {
	svc := newValidateService(nil)
	_, err := svc.ValidateFile(filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}

func TestValidateFile_MetadataUsedFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "clean.xml", cleanSuite)

	store := &domain.MetadataStore{Classes: map[string]domain.ClassMetadata{
		"com.example.LoginTest": {Methods: map[string]domain.MethodMetadata{}},
	}}
	svc := newValidateService(store)

	result, err := svc.ValidateFile(path)
	require.NoError(t, err)
	assert.True(t, result.MetadataUsed)
}

func TestValidateBatch_PreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeSuite(t, dir, "a.xml", cleanSuite)
	b := writeSuite(t, dir, "b.xml", brokenSuite)
	c := writeSuite(t, dir, "c.xml", cleanSuite)

	svc := newValidateService(nil)
	results, err := svc.ValidateBatch(context.Background(), []string{a, b, c})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, a, results[0].FilePath)
	assert.Equal(t, b, results[1].FilePath)
	assert.Equal(t, c, results[2].FilePath)
	assert.Equal(t, domain.StatusFail, results[1].Status())
}

func TestValidateBatch_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	a := writeSuite(t, dir, "a.xml", cleanSuite)
	missing := filepath.Join(dir, "missing.xml")

	svc := newValidateService(nil)
	results, err := svc.ValidateBatch(context.Background(), []string{a, missing})

	require.Error(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, a, results[0].FilePath)
}

func TestValidateBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeSuite(t, dir, "a.xml", cleanSuite)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newValidateService(nil)
	_, err := svc.ValidateBatch(ctx, []string{a})
	assert.ErrorIs(t, err, context.Canceled)
}
