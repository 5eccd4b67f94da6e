package mask

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedEncoding = errors.New("unsupported input encoding")
	ErrTooShort            = errors.New("data too short")
	ErrInvalidMask         = errors.New("invalid mask header")
	ErrInvalidText         = errors.New("unmasked data is not UTF-8 text")
)

// MinRecordLen is the smallest buffer that can hold a header byte plus one more byte.
const MinRecordLen = 2

// Record is a masked blob split into its parts:
//
//	[mask length: 1 byte][mask: length bytes][ciphertext: rest]
type Record struct {
	Raw        []byte
	Mask       []byte
	Ciphertext []byte
}

// Parse validates the header of raw and slices it into mask and ciphertext.
func Parse(raw []byte) (Record, error) {
	if len(raw) < MinRecordLen {
		return Record{}, fmt.Errorf("%w: %d bytes", ErrTooShort, len(raw))
	}
	length := int(raw[0])
	if length == 0 {
		return Record{}, fmt.Errorf("%w: zero mask length", ErrInvalidMask)
	}
	if length+1 >= len(raw) {
		return Record{}, fmt.Errorf("%w: mask length %d leaves no ciphertext in %d bytes", ErrInvalidMask, length, len(raw))
	}
	return Record{
		Raw:        raw,
		Mask:       raw[1 : 1+length],
		Ciphertext: raw[1+length:],
	}, nil
}

// Plaintext reverses the repeating XOR mask over the ciphertext.
func (r Record) Plaintext() []byte {
	return xor(r.Ciphertext, r.Mask)
}

// Encode builds a masked record from plaintext and mask. The mask must be
// 1..255 bytes long and plaintext must not be empty.
func Encode(plaintext, mask []byte) ([]byte, error) {
	if len(mask) == 0 || len(mask) > 255 {
		return nil, fmt.Errorf("%w: mask length %d out of range 1..255", ErrInvalidMask, len(mask))
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrTooShort)
	}
	out := make([]byte, 0, 1+len(mask)+len(plaintext))
	out = append(out, byte(len(mask)))
	out = append(out, mask...)
	return append(out, xor(plaintext, mask)...), nil
}

func xor(data, mask []byte) []byte {
	out := make([]byte, len(data))
	j := 0
	for i, b := range data {
		out[i] = b ^ mask[j]
		j++
		if j >= len(mask) {
			j = 0
		}
	}
	return out
}
