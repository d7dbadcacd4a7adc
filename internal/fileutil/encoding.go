// Package fileutil provides small file helpers shared by the import and
// transform layers.
package fileutil

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeFile reads a source file and returns its contents decoded to
// UTF-8 along with the detected encoding name. Detection order matches
// the encodings the upstream exports are known to use: UTF-8 with BOM,
// plain UTF-8, then Shift_JIS/CP932.
func DecodeFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error reading file: %w", err)
	}

	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], "utf-8-sig", nil
	}

	if utf8.Valid(data) {
		return data, "utf-8", nil
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return nil, "", fmt.Errorf("file is neither UTF-8 nor Shift_JIS: %w", err)
	}
	return decoded, "shift_jis", nil
}
