package adapter

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ImportLyrics reads a lyric text file. UTF-8 and UTF-16 with a byte order
// mark are accepted; files without a BOM are read as UTF-8.
func ImportLyrics(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read lyrics: %w", err)
	}
	return DecodeLyrics(data)
}

// DecodeLyrics decodes raw lyric bytes and normalizes line endings to \n
func DecodeLyrics(data []byte) (string, error) {
	// BOMOverride switches to UTF-16 when a UTF-16 BOM is present and strips
	// a UTF-8 BOM; otherwise the fallback decoder replaces invalid
	// sequences with U+FFFD.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode lyrics: %w", err)
	}

	out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
	return strings.TrimRight(string(out), "\n"), nil
}
