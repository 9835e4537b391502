package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs so hot paths skip building
// attributes when the level is above debug.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging is called once from main after the config is parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
