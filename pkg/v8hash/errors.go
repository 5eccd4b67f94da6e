package v8hash

import (
	"errors"
	"fmt"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/extract"
	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/mask"
)

// Stage names the half of the decoder that failed.
type Stage string

const (
	StageMaskDecode  Stage = "mask_decode"
	StageHashExtract Stage = "hash_extract"
)

// Sentinel errors, one per failure kind. Use errors.Is on a *DecodeError.
var (
	ErrUnsupportedEncoding = mask.ErrUnsupportedEncoding
	ErrTooShort            = mask.ErrTooShort
	ErrInvalidMask         = mask.ErrInvalidMask
	ErrInvalidText         = mask.ErrInvalidText
	ErrPatternNotFound     = extract.ErrPatternNotFound
	ErrInvalidToken        = extract.ErrInvalidToken
)

var kindNames = []struct {
	err  error
	name string
}{
	{ErrUnsupportedEncoding, "UnsupportedEncoding"},
	{ErrTooShort, "TooShort"},
	{ErrInvalidMask, "InvalidMask"},
	{ErrInvalidText, "InvalidText"},
	{ErrPatternNotFound, "PatternNotFound"},
	{ErrInvalidToken, "InvalidToken"},
}

// DecodeError reports which stage rejected a value and why.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind returns the failure kind name, e.g. "InvalidMask".
func (e *DecodeError) Kind() string {
	for _, k := range kindNames {
		if errors.Is(e.Err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}
