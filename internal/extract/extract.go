// Package extract pulls the two SHA-1 password hashes out of an unmasked
// v8users record.
package extract

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrPatternNotFound = errors.New("hash pattern not found")
	ErrInvalidToken    = errors.New("hash token is not base64")
)

// recordPattern matches <int>,<int>,"<token>","<token>",<int>,<int> anywhere in
// the text.
var recordPattern = regexp.MustCompile(`\d+,\d+,"([\w+/=]+)","([\w+/=]+)",\d+,\d+`)

// HashPair holds the hex renderings of the two embedded hashes, in record order.
type HashPair struct {
	Password      string `json:"sha1" yaml:"sha1"`
	PasswordUpper string `json:"sha1_shift" yaml:"sha1_shift"`
}

// Extract finds the first hash record in text and decodes both tokens.
func Extract(text string) (HashPair, error) {
	m := recordPattern.FindStringSubmatch(text)
	if m == nil {
		return HashPair{}, ErrPatternNotFound
	}
	first, err := tokenHex(m[1])
	if err != nil {
		return HashPair{}, err
	}
	second, err := tokenHex(m[2])
	if err != nil {
		return HashPair{}, err
	}
	return HashPair{Password: first, PasswordUpper: second}, nil
}

func tokenHex(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidToken, token, err)
	}
	return hex.EncodeToString(raw), nil
}
