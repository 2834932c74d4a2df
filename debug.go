package unmask

import (
	"fmt"
	"os"
)

// globalDebug gates diagnostic warnings. Misconfiguration is never fatal in
// this package; with debug mode off it degrades to a silent no-op.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, misconfigured
// components log warnings to stderr instead of failing silently.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// warnf prints a debug-gated warning to stderr.
func warnf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[unmask] warning: "+format+"\n", args...)
}
