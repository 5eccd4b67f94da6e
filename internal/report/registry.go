package report

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/pkg/v8hash"
)

// Writer renders dump output. Close is called once after the last row.
type Writer interface {
	v8hash.Sink
	Close(v8hash.Summary) error
}

// Factory creates a Writer that renders to w.
type Factory func(w io.Writer) Writer

var (
	regMu    sync.RWMutex
	registry = map[string]Factory{}
)

// Register stores a format name/factory pair in memory.
func Register(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("output format %q not registered", name)
	}
	return f, nil
}

// Names lists the registered formats in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
