// Package nxcontext implements the Context collaborator: the
// per-pipeline-run configuration object that owns a Symbol registry and
// exposes a filtered, sink-backed logger (spec §4.I).
package nxcontext

import (
	"sync"

	"github.com/obinexus/nexuslink/internal/nxlog"
	"github.com/obinexus/nexuslink/internal/symbol"
)

// Flags is a bitset of behavioral switches configured at Context
// creation.
type Flags uint32

const (
	FlagNone         Flags = 0
	FlagAllowPartial Flags = 1 << 0
	FlagDebugSymbols Flags = 1 << 1
	FlagVerboseLogging Flags = 1 << 2
)

// Has reports whether flag is set.
func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Context is configured at creation with flags, log level, log sink, and
// component search path, and owns the Symbol registry (spec §4.I).
type Context struct {
	Flags      Flags
	SearchPath []string

	symbols *symbol.Registry
	logger  *nxlog.Logger
}

// New builds a Context with its own Symbol registry and a Logger bound
// to sink, filtered at minLevel.
func New(flags Flags, searchPath []string, sink nxlog.Sink, minLevel nxlog.Level) *Context {
	return &Context{
		Flags:      flags,
		SearchPath: append([]string(nil), searchPath...),
		symbols:    symbol.NewRegistry(),
		logger:     nxlog.New(sink, minLevel),
	}
}

// Symbols returns the Context's owned Symbol registry.
func (c *Context) Symbols() *symbol.Registry { return c.symbols }

// Log filters by level and forwards to the sink (spec §4.I "Exposes a
// structured logger log(level, format, args...)").
func (c *Context) Log(level nxlog.Level, format string, args ...any) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Log(level, format, args...)
}

var (
	globalMu sync.Mutex
	global   *Context
)

// SetGlobal installs ctx as the process-global Context. Setting a new
// global does not destroy the previous one — that remains the caller's
// responsibility (spec §4.I).
func SetGlobal(ctx *Context) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = ctx
}

// Global returns the process-wide Context, or nil if none has been set.
func Global() *Context {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}
