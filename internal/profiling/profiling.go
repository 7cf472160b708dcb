// Package profiling is a lightweight per-frame CPU profiler and draw
// counter.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameDraws  int
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("graphics.CreateTexture")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// CountDraw records one draw call in the current frame.
func CountDraw() {
	mu.Lock()
	frameDraws++
	mu.Unlock()
}

// Draws returns the number of draw calls recorded in the current frame.
func Draws() int {
	mu.Lock()
	defer mu.Unlock()
	return frameDraws
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	frameDraws = 0
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats the n largest totals of the current frame, longest first.
// Example: "display.Present:4.2ms, graphics.CreateTexture:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = max(0, min(n, len(list)))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.name+":"+formatMs(p.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	s := fmt.Sprintf("%.1f", float64(d.Microseconds())/1000.0)
	return strings.TrimSuffix(s, ".0") + "ms"
}
