package v8hash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// nullData stands in for a NULL data column. It decodes as base64 to three
// bytes and is then rejected by the mask header check.
const nullData = "None"

// Row is one v8users record as read from the database.
type Row struct {
	Admin any
	Name  string
	Data  any
}

// RowSource yields rows in cursor order.
type RowSource interface {
	Next() bool
	Row() (Row, error)
	Err() error
	Close() error
}

// Entry is a successfully decoded row.
type Entry struct {
	Admin any    `json:"admin" yaml:"admin"`
	Name  string `json:"name" yaml:"name"`
	HashPair `yaml:",inline"`
}

// Failure identifies a row that could not be decoded.
type Failure struct {
	Row   int    `json:"row" yaml:"row"`
	Name  string `json:"name" yaml:"name"`
	Stage Stage  `json:"stage" yaml:"stage"`
	Kind  string `json:"kind" yaml:"kind"`
	Err   error  `json:"-" yaml:"-"`
}

// Sink receives dump output. Returning an error aborts the run.
type Sink interface {
	Entry(Entry) error
	Failure(Failure) error
}

// Summary counts what a dump processed.
type Summary struct {
	Rows    int
	Decoded int
	Failed  int
}

// DumpOptions configures Dump.
type DumpOptions struct {
	Logger logrus.FieldLogger
}

func (opts DumpOptions) logger() logrus.FieldLogger {
	if opts.Logger == nil {
		return logrus.StandardLogger()
	}
	return opts.Logger
}

// Dump decodes every row of src and forwards the results to sink. Rows that fail
// to decode are reported and skipped; errors from src or sink stop the run.
func Dump(ctx context.Context, src RowSource, sink Sink, opts DumpOptions) (Summary, error) {
	log := opts.logger()
	start := time.Now()
	var sum Summary
	defer func() {
		emitDumpComplete(ctx, sum, time.Since(start))
	}()

	for src.Next() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Rows++
		row, err := src.Row()
		if err != nil {
			return sum, fmt.Errorf("read row %d: %w", sum.Rows, err)
		}
		log.WithField("row", sum.Rows).Debug("processing row")

		data := row.Data
		if data == nil {
			data = nullData
		}
		pair, err := DecodeAndExtract(data)
		if err != nil {
			f := newFailure(sum.Rows, row.Name, err)
			sum.Failed++
			log.WithFields(logrus.Fields{
				"row":   f.Row,
				"name":  f.Name,
				"stage": f.Stage,
				"kind":  f.Kind,
			}).WithError(err).Warn("row skipped")
			emitRowFailed(ctx, f)
			if err := sink.Failure(f); err != nil {
				return sum, fmt.Errorf("report row %d: %w", f.Row, err)
			}
			continue
		}
		sum.Decoded++
		emitRowDecoded(ctx, sum.Rows, row.Name)
		if err := sink.Entry(Entry{Admin: row.Admin, Name: row.Name, HashPair: pair}); err != nil {
			return sum, fmt.Errorf("write row %d: %w", sum.Rows, err)
		}
	}
	if err := src.Err(); err != nil {
		return sum, fmt.Errorf("iterate rows: %w", err)
	}
	return sum, nil
}

func newFailure(row int, name string, err error) Failure {
	f := Failure{Row: row, Name: name, Err: err, Kind: "Unknown"}
	var de *DecodeError
	if errors.As(err, &de) {
		f.Stage = de.Stage
		f.Kind = de.Kind()
	}
	return f
}
