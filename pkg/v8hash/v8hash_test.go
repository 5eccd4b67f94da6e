package v8hash

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/mask"
)

func TestDecodeAndExtractEndToEnd(t *testing.T) {
	blob, err := mask.Encode([]byte(`1,0,"QQ==","QQ==",0,0`), []byte{0x01, 0x02})
	require.NoError(t, err)

	pair, err := DecodeAndExtract(blob)
	require.NoError(t, err)
	require.Equal(t, HashPair{Password: "41", PasswordUpper: "41"}, pair)

	pair, err = DecodeAndExtract(base64.StdEncoding.EncodeToString(blob))
	require.NoError(t, err)
	require.Equal(t, "41", pair.Password)
}

func TestDecodeAndExtractStages(t *testing.T) {
	prose, err := mask.Encode([]byte("no hashes here"), []byte{0x33})
	require.NoError(t, err)
	badToken, err := mask.Encode([]byte(`1,0,"a_b","QQ==",0,0`), []byte{0x10, 0x20, 0x30})
	require.NoError(t, err)

	cases := []struct {
		name  string
		input any
		stage Stage
		kind  string
		want  error
	}{
		{"nil", nil, StageMaskDecode, "TooShort", ErrTooShort},
		{"single byte", []byte{0x05}, StageMaskDecode, "TooShort", ErrTooShort},
		{"garbage text", "%%%", StageMaskDecode, "UnsupportedEncoding", ErrUnsupportedEncoding},
		{"float", 3.14, StageMaskDecode, "UnsupportedEncoding", ErrUnsupportedEncoding},
		{"zero mask", []byte{0x00, 0x31, 0x32}, StageMaskDecode, "InvalidMask", ErrInvalidMask},
		{"none text", "None", StageMaskDecode, "InvalidMask", ErrInvalidMask},
		{"binary", []byte{0x01, 0x00, 0xC3, 0x28}, StageMaskDecode, "InvalidText", ErrInvalidText},
		{"prose", prose, StageHashExtract, "PatternNotFound", ErrPatternNotFound},
		{"bad token", badToken, StageHashExtract, "InvalidToken", ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAndExtract(tc.input)
			require.ErrorIs(t, err, tc.want)
			var de *DecodeError
			require.True(t, errors.As(err, &de))
			require.Equal(t, tc.stage, de.Stage)
			require.Equal(t, tc.kind, de.Kind())
		})
	}
}

func TestDecodeKeepsPlaintextOnExtractFailure(t *testing.T) {
	blob, err := mask.Encode([]byte("{72,0,0}"), []byte{0x7F, 0x01})
	require.NoError(t, err)
	res := Decode(blob)
	require.Error(t, res.Err)
	require.Equal(t, "{72,0,0}", res.Plaintext)
	require.Nil(t, res.Hashes)
}

func TestResultString(t *testing.T) {
	blob, err := mask.Encode([]byte(`1,0,"QQ==","Qg==",0,0`), []byte{0x01})
	require.NoError(t, err)

	var ok map[string]string
	require.NoError(t, json.Unmarshal([]byte(Decode(blob).String()), &ok))
	require.Equal(t, "41", ok["sha1"])
	require.Equal(t, "42", ok["sha1_shift"])
	require.NotContains(t, ok, "error")

	var failed map[string]string
	require.NoError(t, json.Unmarshal([]byte(Decode([]byte{0x00, 0x01, 0x02}).String()), &failed))
	require.Equal(t, "mask_decode", failed["stage"])
	require.Equal(t, "InvalidMask", failed["kind"])
}
