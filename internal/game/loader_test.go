package game

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"island-mc/internal/noise"
	"island-mc/internal/stream"
	"island-mc/internal/worldmap"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLoaderStepsThroughEveryState(t *testing.T) {
	var buf bytes.Buffer
	r := newCounter()
	l := NewLoader(worldmap.DefaultOptions(32, 7, true), 4, mgl32.Vec3{16.5, 40, 16.5}, r, log.New(&buf, "", 0))

	want := []LoadState{
		StateGeneratingHeight,
		StateGeneratingHeat,
		StateClassifying,
		StateBuildingWorld,
		StatePlacingViewpoint,
		StateReady,
	}
	if l.State() != StateIdle || l.Done() {
		t.Fatalf("new loader should be idle")
	}
	prev := l.Progress()
	for i, next := range want {
		if l.Window() != nil {
			t.Fatalf("window exposed before ready (step %d)", i)
		}
		if err := l.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if l.State() != next {
			t.Fatalf("step %d: state %s, want %s", i, l.State(), next)
		}
		if p := l.Progress(); p <= prev {
			t.Errorf("progress did not increase: %v -> %v", prev, p)
		} else {
			prev = p
		}
		if next == StatePlacingViewpoint && l.World() == nil {
			t.Errorf("world missing after building-world")
		}
	}
	if !l.Done() || l.Progress() != 1 {
		t.Errorf("loader not done: %s %v", l.State(), l.Progress())
	}
	if err := l.Step(); err != nil || l.State() != StateReady {
		t.Errorf("step after ready changed state: %v %s", err, l.State())
	}

	w := l.Window()
	if w == nil || !w.Ready() || w.Center() != (stream.Column{X: 16, Z: 16}) || w.Radius() != 4 {
		t.Fatalf("unexpected window %+v", w)
	}
	if len(r.live) != w.Len() {
		t.Errorf("renderer holds %d blocks, window %d", len(r.live), w.Len())
	}
	for _, s := range []string{"generating-height done", "classifying done", "world ready"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("log does not mention %q:\n%s", s, buf.String())
		}
	}
}

func TestLoaderMatchesDirectBuild(t *testing.T) {
	opts := worldmap.DefaultOptions(40, 34315, true)
	l := NewLoader(opts, 4, mgl32.Vec3{20, 0, 20}, newCounter(), nil)
	if err := l.Run(); err != nil {
		t.Fatal(err)
	}
	direct, err := worldmap.BuildWith(opts)
	if err != nil {
		t.Fatal(err)
	}
	if l.World().Digest() != direct.Digest() {
		t.Errorf("staged load differs from a direct build")
	}
}

func TestLoaderFailures(t *testing.T) {
	bad := worldmap.DefaultOptions(32, 1, false)
	bad.Noise = "value"
	tests := []struct {
		name      string
		opts      worldmap.Options
		radius    int
		wantErr   error
		failState LoadState
	}{
		{"zero size", worldmap.DefaultOptions(0, 1, false), 4, worldmap.ErrInvalidSize, StateIdle},
		{"negative radius", worldmap.DefaultOptions(16, 1, false), -1, nil, StateIdle},
		{"unknown noise", bad, 4, noise.ErrInvalidParams, StateGeneratingHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(tt.opts, tt.radius, mgl32.Vec3{}, newCounter(), nil)
			err := l.Run()
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
			if !strings.HasPrefix(err.Error(), tt.failState.String()) {
				t.Errorf("error %q does not name stage %s", err, tt.failState)
			}
			if l.State() != StateFailed || !l.Done() {
				t.Errorf("state = %s", l.State())
			}
			if again := l.Step(); again != err {
				t.Errorf("second step returned %v", again)
			}
			if l.Window() != nil {
				t.Errorf("failed loader exposes a window")
			}
		})
	}
}

func TestLoadStateString(t *testing.T) {
	if StatePlacingViewpoint.String() != "placing-viewpoint" {
		t.Errorf("got %q", StatePlacingViewpoint.String())
	}
	if LoadState(42).String() != "LoadState(42)" {
		t.Errorf("got %q", LoadState(42).String())
	}
}
