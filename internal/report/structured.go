package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/pkg/v8hash"
)

func init() {
	Register("json", NewJSON)
	Register("yaml", NewYAML)
}

type summaryDoc struct {
	Rows    int `json:"rows" yaml:"rows"`
	Decoded int `json:"decoded" yaml:"decoded"`
	Failed  int `json:"failed" yaml:"failed"`
}

type document struct {
	Users   []v8hash.Entry   `json:"users" yaml:"users"`
	Skipped []v8hash.Failure `json:"skipped" yaml:"skipped"`
	Summary summaryDoc       `json:"summary" yaml:"summary"`
}

// structured buffers the whole dump and encodes it as one document on Close.
type structured struct {
	doc    document
	encode func(document) error
}

// NewJSON returns a writer that emits an indented JSON document.
func NewJSON(w io.Writer) Writer {
	return &structured{encode: func(d document) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}}
}

// NewYAML returns a writer that emits a YAML document.
func NewYAML(w io.Writer) Writer {
	return &structured{encode: func(d document) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}}
}

func (s *structured) Entry(e v8hash.Entry) error {
	s.doc.Users = append(s.doc.Users, e)
	return nil
}

func (s *structured) Failure(f v8hash.Failure) error {
	s.doc.Skipped = append(s.doc.Skipped, f)
	return nil
}

func (s *structured) Close(sum v8hash.Summary) error {
	s.doc.Summary = summaryDoc{Rows: sum.Rows, Decoded: sum.Decoded, Failed: sum.Failed}
	if s.doc.Users == nil {
		s.doc.Users = []v8hash.Entry{}
	}
	if s.doc.Skipped == nil {
		s.doc.Skipped = []v8hash.Failure{}
	}
	return s.encode(s.doc)
}
