package log

import (
	"log"
	"os"
)

// Debug controls debug log output. Set by HILITE_DEBUG environment variable by default.
var Debug = os.Getenv("HILITE_DEBUG") != ""

// Debugf logs a debug message if Debug is true.
func Debugf(format string, v ...any) {
	if !Debug {
		return
	}

	log.Printf(format, v...)
}

// Warnf always logs, prefixed with WARN.
func Warnf(format string, v ...any) {
	log.Printf("WARN: "+format, v...)
}
