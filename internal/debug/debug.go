// Package debug carries the stderr diagnostics toggle used by the command
// line tools; the library itself never logs.
package debug

import (
	"log"
	"sync/atomic"
)

var enabled int32

// Toggle turns on/off debug mode.
func Toggle(on bool) {
	val := int32(0)
	if on {
		val = 1
	}
	atomic.StoreInt32(&enabled, val)
}

// Format a log line and writes it to stderr if debug is enabled.
func Format(format string, args ...interface{}) {
	if atomic.LoadInt32(&enabled) != 1 {
		return
	}
	log.Printf(format, args...)
}
