package encoding

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileLoader implements domain.TextLoader with a fixed fallback chain:
// UTF-8, UTF-8 with BOM, Windows-1252, then Latin-1. Latin-1 maps every
// byte, so the chain always yields text; the reported encoding tells the
// caller which decoder won.
type FileLoader struct{}

func New() *FileLoader {
	return &FileLoader{}
}

func (l *FileLoader) Load(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}

	if bytes.HasPrefix(data, utf8BOM) {
		// The BOM is an encoding marker, never content; strip it before any
		// decoder runs so a non-UTF-8 body does not leak it into the text.
		data = data[len(utf8BOM):]
		if utf8.Valid(data) {
			return string(data), "utf-8-sig", nil
		}
	} else if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	// Windows-1252 leaves five code points undefined; the decoder marks
	// those bytes with the replacement rune, which disqualifies it.
	if text, err := charmap.Windows1252.NewDecoder().String(string(data)); err == nil &&
		!strings.ContainsRune(text, utf8.RuneError) {
		return text, "windows-1252", nil
	}

	text, err := charmap.ISO8859_1.NewDecoder().String(string(data))
	if err != nil {
		return "", "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return text, "latin-1", nil
}
