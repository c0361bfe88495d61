// Package logx wires up the package-level leveled logger shared by
// cmd/thrilldigger and the bench package, following
// operator-lifecycle-manager's cmd/catalog/main.go convention of a single
// logrus logger gated by a --debug flag rather than per-package loggers.
package logx

import (
	log "github.com/sirupsen/logrus"
)

// SetDebug raises the shared logger to debug level, or leaves it at info
// level otherwise. Call once at process startup after parsing flags.
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.InfoLevel)
}

// Diagnostics logs a Recompute result's diagnostic line at debug level,
// tagged with the move that produced it.
func Diagnostics(x, y int, line string) {
	log.WithFields(log.Fields{"x": x, "y": y}).Debug(line)
}

// Fatalf logs at fatal level and exits, matching the source's own
// Solver/Benchmark pairing where an unrecoverable setup error ends the
// process immediately.
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}
