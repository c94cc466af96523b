package encoding_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suitelint/suitelint/internal/adapters/outbound/encoding"
)

func writeBytes(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.xml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad_UTF8(t *testing.T) {
	path := writeBytes(t, []byte(`<suite name="Tésts"/>`))

	text, enc, err := encoding.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", enc)
	assert.Equal(t, `<suite name="Tésts"/>`, text)
}

func TestLoad_UTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<suite name="S"/>`)...)
	path := writeBytes(t, data)

	text, enc, err := encoding.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "utf-8-sig", enc)
	// The BOM is stripped from the decoded text.
	assert.Equal(t, `<suite name="S"/>`, text)
}

func TestLoad_Windows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in Windows-1252 and invalid as UTF-8.
	data := []byte{'<', '!', '-', '-', 0x93, 'h', 'i', 0x94, '-', '-', '>'}
	path := writeBytes(t, data)

	text, enc, err := encoding.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", enc)
	assert.Contains(t, text, "“hi”")
}

func TestLoad_Latin1Fallback(t *testing.T) {
	// 0x81 is undefined in Windows-1252, so only Latin-1 accepts it.
	data := []byte{'<', '!', '-', '-', 0x81, '-', '-', '>'}
	path := writeBytes(t, data)

	text, enc, err := encoding.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "latin-1", enc)
	assert.Contains(t, text, "")
}

func TestLoad_BOMStrippedBeforeFallback(t *testing.T) {
	// A BOM followed by a non-UTF-8 body: the BOM bytes must not be decoded
	// as Windows-1252 content.
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte{'c', 'a', 'f', 0xE9}...)
	path := writeBytes(t, data)

	text, enc, err := encoding.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", enc)
	assert.Equal(t, "café", text)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := encoding.New().Load(filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}
