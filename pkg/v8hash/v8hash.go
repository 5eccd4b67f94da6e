// Package v8hash decodes the masked data column of 1C:Enterprise v8users rows
// and extracts the SHA-1 password hashes stored in it.
package v8hash

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/extract"
	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/mask"
)

// HashPair is the hex-encoded SHA-1 of the password and of the upper-cased
// password, in that order.
type HashPair = extract.HashPair

// Result captures the outcome of Decode.
type Result struct {
	Plaintext string
	Hashes    *HashPair
	Err       error
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"plaintext": r.Plaintext,
	}
	if r.Hashes != nil {
		summary["sha1"] = r.Hashes.Password
		summary["sha1_shift"] = r.Hashes.PasswordUpper
	}
	if r.Err != nil {
		summary["error"] = r.Err.Error()
		var de *DecodeError
		if errors.As(r.Err, &de) {
			summary["stage"] = string(de.Stage)
			summary["kind"] = de.Kind()
		}
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("plaintext: %q (marshal error: %v)", r.Plaintext, err)
	}
	return string(data)
}

// DecodeAndExtract unmasks value and returns the two hashes embedded in it.
// value may be []byte, a base64 or hex string, or nil. Errors are *DecodeError.
func DecodeAndExtract(value any) (HashPair, error) {
	res := Decode(value)
	if res.Err != nil {
		return HashPair{}, res.Err
	}
	return *res.Hashes, nil
}

// Decode runs both stages and keeps the intermediate plaintext. A failure in the
// hash stage still returns the plaintext that was recovered.
func Decode(value any) Result {
	text, err := mask.Unmask(value)
	if err != nil {
		return Result{Err: &DecodeError{Stage: StageMaskDecode, Err: err}}
	}
	pair, err := extract.Extract(text)
	if err != nil {
		return Result{Plaintext: text, Err: &DecodeError{Stage: StageHashExtract, Err: err}}
	}
	return Result{Plaintext: text, Hashes: &pair}
}
