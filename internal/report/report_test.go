package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/pkg/v8hash"
)

var (
	sampleEntry = v8hash.Entry{
		Admin: true,
		Name:  "Администратор",
		HashPair: v8hash.HashPair{
			Password:      "2d9b7a3cf465b0dbe74d992a8ae1443496c733b7",
			PasswordUpper: "c4f5e122e197c8496d997cac37290703e5de3b08",
		},
	}
	sampleFailure = v8hash.Failure{Row: 2, Name: "Broken", Stage: v8hash.StageMaskDecode, Kind: "InvalidMask"}
	sampleSummary = v8hash.Summary{Rows: 2, Decoded: 1, Failed: 1}
)

func TestRegistry(t *testing.T) {
	require.Equal(t, []string{"json", "table", "yaml"}, Names())
	_, err := Lookup("csv")
	require.ErrorContains(t, err, `"csv"`)
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewTable(&buf)
	require.NoError(t, w.Entry(sampleEntry))
	require.NoError(t, w.Failure(sampleFailure))
	require.NoError(t, w.Close(sampleSummary))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	rule := "+------+" + strings.Repeat("-", 50) + "+" + strings.Repeat("-", 42) + "+" + strings.Repeat("-", 42) + "+"
	require.Equal(t, rule, lines[0])
	require.True(t, strings.HasPrefix(lines[1], "|Admin |User name "))
	require.Equal(t, rule, lines[2])
	require.Equal(t, "|true  |"+"Администратор"+strings.Repeat(" ", 50-13)+"|"+
		sampleEntry.Password+"  |"+sampleEntry.PasswordUpper+"  |", lines[3])
	require.Equal(t, rule, lines[4])
	require.Equal(t, "Skipped rows (1 of 2):", lines[6])
	require.Equal(t, `  row 2 "Broken": mask_decode error (InvalidMask)`, lines[7])
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTable(&buf).Close(v8hash.Summary{}))
	require.Equal(t, 4, strings.Count(buf.String(), "\n"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSON(&buf)
	require.NoError(t, w.Entry(sampleEntry))
	require.NoError(t, w.Failure(sampleFailure))
	require.NoError(t, w.Close(sampleSummary))

	var doc struct {
		Users   []map[string]any `json:"users"`
		Skipped []map[string]any `json:"skipped"`
		Summary map[string]int   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Users, 1)
	require.Equal(t, true, doc.Users[0]["admin"])
	require.Equal(t, sampleEntry.Password, doc.Users[0]["sha1"])
	require.Equal(t, sampleEntry.PasswordUpper, doc.Users[0]["sha1_shift"])
	require.Equal(t, "InvalidMask", doc.Skipped[0]["kind"])
	require.Equal(t, map[string]int{"rows": 2, "decoded": 1, "failed": 1}, doc.Summary)
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewYAML(&buf)
	require.NoError(t, w.Entry(sampleEntry))
	require.NoError(t, w.Close(v8hash.Summary{Rows: 1, Decoded: 1}))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	users := doc["users"].([]any)
	require.Len(t, users, 1)
	user := users[0].(map[string]any)
	require.Equal(t, "Администратор", user["name"])
	require.Equal(t, sampleEntry.Password, user["sha1"])
	require.Empty(t, doc["skipped"])
}
