// Package mask reverses the length-prefixed XOR mask that 1C:Enterprise applies
// to the data column of v8users.
package mask

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Unmask normalises input to bytes, removes the XOR mask and decodes the result
// as text. Accepted inputs are []byte, base64 or hex strings, and nil.
func Unmask(input any) (string, error) {
	raw, err := Normalize(input)
	if err != nil {
		return "", err
	}
	rec, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return DecodeText(rec.Plaintext())
}

// Normalize turns an encoded input into the raw masked bytes.
func Normalize(input any) ([]byte, error) {
	var raw []byte
	switch v := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no data", ErrTooShort)
	case []byte:
		raw = v
	case string:
		decoded, err := decodeString(v)
		if err != nil {
			return nil, err
		}
		raw = decoded
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEncoding, input)
	}
	if len(raw) < MinRecordLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooShort, len(raw))
	}
	return raw, nil
}

// decodeString tries base64 before hex. Hex text whose length is a multiple of
// four is also valid base64 and decodes as such.
func decodeString(s string) ([]byte, error) {
	clean := strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(clean); err == nil {
		return b, nil
	}
	if b, err := hex.DecodeString(clean); err == nil {
		return b, nil
	}
	return nil, fmt.Errorf("%w: text is neither base64 nor hex", ErrUnsupportedEncoding)
}

// DecodeText decodes unmasked bytes as UTF-8, dropping a leading BOM. When the
// bytes are not UTF-8 they are tried as a hex string holding UTF-8 text.
func DecodeText(b []byte) (string, error) {
	if s, err := decodeUTF8(b); err == nil {
		return s, nil
	}
	inner, err := hex.DecodeString(string(b))
	if err != nil {
		return "", fmt.Errorf("%w: hex fallback: %v", ErrInvalidText, err)
	}
	s, err := decodeUTF8(inner)
	if err != nil {
		return "", fmt.Errorf("%w: hex fallback: %v", ErrInvalidText, err)
	}
	return s, nil
}

func decodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid UTF-8 sequence", ErrInvalidText)
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	return string(out), nil
}
