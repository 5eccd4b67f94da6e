package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/pkg/v8hash"
)

const (
	adminWidth = 6
	nameWidth  = 50
	hashWidth  = 42
)

func init() {
	Register("table", NewTable)
}

// Table prints a fixed-width console table, followed by the list of skipped rows.
type Table struct {
	w        io.Writer
	started  bool
	failures []v8hash.Failure
}

// NewTable returns a table writer for w.
func NewTable(w io.Writer) Writer {
	return &Table{w: w}
}

func (t *Table) begin() error {
	if t.started {
		return nil
	}
	t.started = true
	if err := t.rule(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(t.w, "|%-*s|%-*s|%-*s|%-*s|\n",
		adminWidth, "Admin", nameWidth, "User name", hashWidth, "SHA1", hashWidth, "SHA1_SHIFT"); err != nil {
		return err
	}
	return t.rule()
}

func (t *Table) rule() error {
	_, err := fmt.Fprintf(t.w, "+%s+%s+%s+%s+\n",
		strings.Repeat("-", adminWidth), strings.Repeat("-", nameWidth),
		strings.Repeat("-", hashWidth), strings.Repeat("-", hashWidth))
	return err
}

func (t *Table) Entry(e v8hash.Entry) error {
	if err := t.begin(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(t.w, "|%-*s|%-*s|%-*s|%-*s|\n",
		adminWidth, adminString(e.Admin), nameWidth, e.Name,
		hashWidth, e.Password, hashWidth, e.PasswordUpper)
	return err
}

func (t *Table) Failure(f v8hash.Failure) error {
	t.failures = append(t.failures, f)
	return nil
}

func (t *Table) Close(sum v8hash.Summary) error {
	if err := t.begin(); err != nil {
		return err
	}
	if err := t.rule(); err != nil {
		return err
	}
	if len(t.failures) > 0 {
		if _, err := fmt.Fprintf(t.w, "\nSkipped rows (%d of %d):\n", len(t.failures), sum.Rows); err != nil {
			return err
		}
		for _, f := range t.failures {
			if _, err := fmt.Fprintf(t.w, "  row %d %q: %s error (%s)\n", f.Row, f.Name, f.Stage, f.Kind); err != nil {
				return err
			}
		}
	}
	return nil
}

func adminString(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(a)
	default:
		return fmt.Sprint(a)
	}
}
