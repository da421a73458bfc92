package outfit

import (
	"fmt"
	"os"
	"time"
)

// debugEnabled gates warnings and per-refresh stats. Set with SetDebug.
var debugEnabled bool

// SetDebug enables or disables debug output. When enabled, missing atlas
// regions are logged as warnings and every composite refresh prints timing
// and draw-call stats to stderr. Missing variant skins are logged either way.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// refreshStats holds timing and draw-call metrics of one composite refresh.
type refreshStats struct {
	composeTime  time.Duration
	optimizeTime time.Duration
	parts        int
	missing      int
	drawCalls    int
}

// debugLog prints refresh stats to stderr.
func debugLog(stats refreshStats) {
	if !debugEnabled {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[outfit] compose: %v | optimize: %v | total: %v\n",
		stats.composeTime, stats.optimizeTime, stats.composeTime+stats.optimizeTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[outfit] parts: %d | missing: %d | draw calls: %d\n",
		stats.parts, stats.missing, stats.drawCalls)
}

// DrawCalls estimates how many draw calls the rig needs in its current pose:
// contiguous slots (in draw order) whose attachments share a material batch
// into one call. Empty slots are skipped.
func DrawCalls(rig Rig) int {
	if rig == nil {
		return 0
	}
	count := 0
	var prev *Material
	for _, slot := range rig.Slots() {
		a := slot.Attachment
		if a == nil {
			continue
		}
		if count == 0 || a.Material != prev {
			count++
			prev = a.Material
		}
	}
	return count
}
