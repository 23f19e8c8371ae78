package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-tick CPU timers. A tick is one viewpoint sample or one loader step.

// Sample is the accumulated time and call count recorded under one name.
type Sample struct {
	Total time.Duration
	Calls int
}

var (
	mu         sync.Mutex
	tickTotals = make(map[string]Sample)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("stream.OnViewpointMoved")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := tickTotals[name]
		s.Total += d
		s.Calls++
		tickTotals[name] = s
		mu.Unlock()
	}
}

// ResetTick clears the totals. Call at the start of each tick.
func ResetTick() {
	mu.Lock()
	clear(tickTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]Sample {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Sample, len(tickTotals))
	for k, v := range tickTotals {
		out[k] = v
	}
	return out
}

// TopN formats the n most expensive entries of the current tick, for example
// "worldmap.Build:41.2ms, noise.Generate:38ms(x2)".
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		s    Sample
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, s: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].s.Total != list[j].s.Total {
			return list[i].s.Total > list[j].s.Total
		}
		return list[i].name < list[j].name
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.s.Total.Microseconds()) / 1000.0
		entry := p.name + ":" + strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
		if p.s.Calls > 1 {
			entry += "(x" + strconv.Itoa(p.s.Calls) + ")"
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}
