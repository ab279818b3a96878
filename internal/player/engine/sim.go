package engine

import (
	"context"
	"sync"
)

// SimProvider is the deterministic in-process engine used by the binary
// and by tests. Failure injection: set VideoErr/SceneErr/SessionErr and
// every handle it creates fails its bootstrap with that error.
type SimProvider struct {
	VideoErr   error
	SceneErr   error
	SessionErr error

	VideoDuration       float64
	FullscreenAvailable bool
	SceneFPS            float64
	SceneDrawCalls      int
}

func NewSimProvider() *SimProvider {
	return &SimProvider{
		VideoDuration:       120,
		FullscreenAvailable: true,
		SceneFPS:            60,
		SceneDrawCalls:      42,
	}
}

func (p *SimProvider) NewVideo() VideoHandle {
	return &simVideo{
		failWith: p.VideoErr,
		duration: p.VideoDuration,
		fsAvail:  p.FullscreenAvailable,
		volume:   1,
	}
}

func (p *SimProvider) NewScene() SceneHandle {
	return &simScene{
		failWith:  p.SceneErr,
		fps:       p.SceneFPS,
		drawCalls: p.SceneDrawCalls,
	}
}

func (p *SimProvider) NewSession() SessionHandle {
	return &simSession{failWith: p.SessionErr}
}

type simVideo struct {
	mu       sync.Mutex
	failWith error
	duration float64
	fsAvail  bool

	current  float64
	paused   bool
	volume   float64
	muted    bool
	released bool
}

func (v *simVideo) Load(_ context.Context, url string) error {
	if v.failWith != nil {
		return v.failWith
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = 0
	v.paused = true
	return nil
}

func (v *simVideo) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = false
}

func (v *simVideo) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = true
}

func (v *simVideo) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = true
	v.current = 0
}

func (v *simVideo) Seek(seconds float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if seconds > v.duration {
		seconds = v.duration
	}
	v.current = seconds
}

func (v *simVideo) SetVolume(vol float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	v.volume = vol
}

func (v *simVideo) SetMuted(muted bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.muted = muted
}

func (v *simVideo) EnterFullscreen() bool {
	return v.fsAvail
}

func (v *simVideo) ExitFullscreen() {}

func (v *simVideo) Snapshot() VideoStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return VideoStats{
		CurrentTime: v.current,
		Duration:    v.duration,
		Paused:      v.paused,
		Volume:      v.volume,
		Muted:       v.muted,
	}
}

func (v *simVideo) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.released = true
}

type simScene struct {
	mu        sync.Mutex
	failWith  error
	fps       float64
	drawCalls int

	running  bool
	released bool
}

func (s *simScene) Boot(_ context.Context, sceneURL string, assetURLs []string) error {
	if s.failWith != nil {
		return s.failWith
	}
	return nil
}

func (s *simScene) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

func (s *simScene) FrameStats() FrameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	fps := s.fps
	if !s.running {
		fps = 0
	}
	return FrameStats{
		IsRunning: s.running,
		FPS:       fps,
		DrawCalls: s.drawCalls,
	}
}

func (s *simScene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.released = true
}

type simSession struct {
	mu       sync.Mutex
	failWith error

	models   []string
	released bool
}

func (s *simSession) Start(_ context.Context, modelURLs []string) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append([]string(nil), modelURLs...)
	return nil
}

func (s *simSession) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = nil
}

func (s *simSession) LoadedModels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.models...)
}

func (s *simSession) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = nil
	s.released = true
}
