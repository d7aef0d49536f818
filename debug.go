package tilewalk

import (
	"fmt"
	"os"
	"time"
)

var globalDebug bool

// SetDebugMode enables or disables debug warnings and per-frame timing output
// on stderr for all surfaces.
func SetDebugMode(on bool) { globalDebug = on }

// debugStats holds per-frame timing metrics. Only populated in debug mode.
type debugStats struct {
	stepTime   time.Duration
	resortTime time.Duration
	resorted   int
	rendered   bool
}

func (s *Surface) debugLog(stats debugStats) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[tilewalk] step: %v | resort: %v (%d nodes) | rendered: %t | skip: %d\n",
		stats.stepTime, stats.resortTime, stats.resorted, stats.rendered, s.frameskip)
}

// debugMaxFollowDepth is the leader chain length above which attaching warns.
const debugMaxFollowDepth = 16

func debugCheckFollowDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.leader {
		depth++
	}
	if depth > debugMaxFollowDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[tilewalk] warning: follow depth %d exceeds %d (node %q)\n",
			depth, debugMaxFollowDepth, n.Name)
	}
}

// debugMaxNodeCount is the surface size above which node creation warns once.
const debugMaxNodeCount = 10000

func (s *Surface) debugCheckNodeCount() {
	if len(s.nodes.items) == debugMaxNodeCount+1 {
		_, _ = fmt.Fprintf(os.Stderr, "[tilewalk] warning: surface holds more than %d nodes\n",
			debugMaxNodeCount)
	}
}
