// Package engine defines the seams to the native playback engines. The
// engines themselves are opaque: this core never decodes video, renders
// geometry or runs AR tracking.
package engine

import "context"

type VideoStats struct {
	CurrentTime float64
	Duration    float64
	Paused      bool
	Volume      float64
	Muted       bool
}

type FrameStats struct {
	IsRunning bool
	FPS       float64
	DrawCalls int
}

// VideoHandle is one decoder/video element. Exclusively owned by one
// player instance; Release is terminal.
type VideoHandle interface {
	Load(ctx context.Context, url string) error
	Play()
	Pause()
	Stop()
	Seek(seconds float64)
	SetVolume(v float64)
	SetMuted(muted bool)
	// EnterFullscreen reports whether fullscreen is platform-available.
	EnterFullscreen() bool
	ExitFullscreen()
	Snapshot() VideoStats
	Release()
}

// SceneHandle is one 3D engine application plus its scene.
type SceneHandle interface {
	Boot(ctx context.Context, sceneURL string, assetURLs []string) error
	SetRunning(running bool)
	FrameStats() FrameStats
	Release()
}

// SessionHandle is one AR session plus its loaded model references.
type SessionHandle interface {
	Start(ctx context.Context, modelURLs []string) error
	End()
	LoadedModels() []string
	Release()
}

// Provider hands out fresh handles. The factory holds one provider; tests
// substitute a failing one.
type Provider interface {
	NewVideo() VideoHandle
	NewScene() SceneHandle
	NewSession() SessionHandle
}
