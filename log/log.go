// Package log is a leveled front for the standard logger. The level is the message
// prefix: [DEBUG], [INFO], [WARN] or [ERROR]. Debug lines are dropped unless enabled.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

var debug atomic.Bool

// Setup switches debug output and redirects the standard logger to w (if not nil).
// Debug lines carry microseconds and the file of the caller.
func Setup(enableDebug bool, w io.Writer) {
	debug.Store(enableDebug)

	flags := log.LstdFlags
	if enableDebug {
		flags |= log.Lmicroseconds | log.Lshortfile
	}
	log.SetFlags(flags)

	if w != nil {
		log.SetOutput(w)
	}
}

func DebugEnabled() bool {
	return debug.Load()
}

func Printf(format string, v ...any) {
	if !allowed(format) {
		return
	}
	_ = log.Output(2, fmt.Sprintf(format, v...))
}

func Fatalf(format string, v ...any) {
	_ = log.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

func allowed(s string) bool {
	if debug.Load() {
		return true
	}
	return !strings.HasPrefix(s, "[DEBUG]")
}
