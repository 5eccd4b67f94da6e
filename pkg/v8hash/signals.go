package v8hash

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals emitted while dumping rows.
var (
	SignalRowDecoded   = capitan.NewSignal("v8hash.row.decoded", "Row decoded into a hash pair")
	SignalRowFailed    = capitan.NewSignal("v8hash.row.failed", "Row skipped after a decode failure")
	SignalDumpComplete = capitan.NewSignal("v8hash.dump.complete", "Dump finished")
)

// Keys for typed event data.
var (
	KeyRow      = capitan.NewIntKey("row")
	KeyName     = capitan.NewStringKey("name")
	KeyStage    = capitan.NewStringKey("stage")
	KeyKind     = capitan.NewStringKey("kind")
	KeyError    = capitan.NewErrorKey("error")
	KeyRows     = capitan.NewIntKey("rows")
	KeyDecoded  = capitan.NewIntKey("decoded")
	KeyFailed   = capitan.NewIntKey("failed")
	KeyDuration = capitan.NewDurationKey("duration")
)

func emitRowDecoded(ctx context.Context, row int, name string) {
	capitan.Emit(ctx, SignalRowDecoded,
		KeyRow.Field(row),
		KeyName.Field(name),
	)
}

func emitRowFailed(ctx context.Context, f Failure) {
	capitan.Error(ctx, SignalRowFailed,
		KeyRow.Field(f.Row),
		KeyName.Field(f.Name),
		KeyStage.Field(string(f.Stage)),
		KeyKind.Field(f.Kind),
		KeyError.Field(f.Err),
	)
}

func emitDumpComplete(ctx context.Context, sum Summary, duration time.Duration) {
	capitan.Emit(ctx, SignalDumpComplete,
		KeyRows.Field(sum.Rows),
		KeyDecoded.Field(sum.Decoded),
		KeyFailed.Field(sum.Failed),
		KeyDuration.Field(duration),
	)
}
