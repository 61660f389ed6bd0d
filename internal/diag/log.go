// Package diag provides the engine's logging and diagnostics surface.
//
// It plays the role the teacher's (unavailable in this retrieval pack)
// o11y/clog package plays for the rest of siso: a thin, context-first
// wrapper around glog that every call site goes through instead of the
// stdlib log package. On top of that it layers the severity-tagged,
// deduplicating Error Reporter the spec describes in §4.9.
package diag

import (
	"context"
	"fmt"

	log "github.com/golang/glog"
)

// Infof logs an informational message. ctx is accepted (and currently
// unused beyond future cancellation/trace-id propagation) to keep call
// sites uniform with Warningf/Errorf, matching the teacher's clog.Infof
// shape.
func Infof(ctx context.Context, format string, args ...any) {
	log.InfoDepth(1, fmt.Sprintf(format, args...))
}

// Warningf logs a warning message that is not part of the deduplicated
// Error Reporter (use Reporter.Warning for that).
func Warningf(ctx context.Context, format string, args ...any) {
	log.WarningDepth(1, fmt.Sprintf(format, args...))
}

// Errorf logs an error message that is not part of the deduplicated
// Error Reporter (use Reporter.Error for that).
func Errorf(ctx context.Context, format string, args ...any) {
	log.ErrorDepth(1, fmt.Sprintf(format, args...))
}
