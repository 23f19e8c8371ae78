package config

import "sync"

// RuntimeSettings holds values the viewer changes while running.
type RuntimeSettings struct {
	mu           sync.RWMutex
	renderRadius int // in columns
}

var globalRuntimeSettings = &RuntimeSettings{
	renderRadius: 10,
}

// GetRenderRadius returns the current render radius in columns
func GetRenderRadius() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.renderRadius
}

// SetRenderRadius sets the render radius, clamped to the slider range, and
// returns the value stored.
func SetRenderRadius(radius int) int {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if radius < MinRenderRadius {
		radius = MinRenderRadius
	}
	if radius > MaxRenderRadius {
		radius = MaxRenderRadius
	}

	globalRuntimeSettings.renderRadius = radius
	return radius
}
