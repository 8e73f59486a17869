package kale

import (
	"log/slog"
	"sync/atomic"
)

// discard is installed until SetLogger is called. Its handler reports every
// level as disabled, so call sites that check Enabled skip building attrs.
var discard = slog.New(slog.DiscardHandler)

// current holds the logger shared by every kale package. Edit producers
// may log from their own goroutines while the render loop swaps loggers.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(discard)
}

// SetLogger routes kale's diagnostics to l. A nil l silences them again,
// which is also the state before the first call.
//
// What is logged where:
//   - Debug: every effective display list edit with the surface's log
//     length and version, queue drains, geometry compiles, per-frame
//     composer counts, font registration
//   - Warn: a frame abandoned because a backend call failed
//
// The kale command installs a text handler on stderr and lowers the level
// to Debug with -v.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
