package kenburns

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// globalDebug gates the stderr diagnostics. It is read from the background
// search, so it is atomic.
var globalDebug atomic.Bool

// SetDebugMode enables or disables debug logging. When enabled, every search
// cycle prints its statistics and image source changes are reported on
// stderr.
func SetDebugMode(enabled bool) {
	globalDebug.Store(enabled)
}

// DebugMode reports whether debug logging is enabled.
func DebugMode() bool {
	return globalDebug.Load()
}

// searchStats holds the cost and outcome of one search cycle.
type searchStats struct {
	images   int
	skipped  int
	plans    int
	budget   int
	score    float64
	elapsed  time.Duration
	accepted bool
}

// debugLogf prints a prefixed line to stderr in debug mode.
func debugLogf(format string, args ...any) {
	if !globalDebug.Load() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[kenburns] "+format+"\n", args...)
}

// debugLogSearch prints the statistics of a finished search.
func debugLogSearch(stats searchStats, err error) {
	if !globalDebug.Load() {
		return
	}
	outcome := "accepted"
	if !stats.accepted {
		outcome = fmt.Sprintf("failed: %v", err)
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[kenburns] search: images %d | skipped %d | plans %d/%d | score %.3f | %v | %s\n",
		stats.images, stats.skipped, stats.plans, stats.budget, stats.score, stats.elapsed, outcome)
}
