package player

import (
	"context"
	"log/slog"
	"sync"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/player/engine"
)

// Video wraps one decoder/video element handle.
type Video struct {
	base
	handle engine.VideoHandle

	fsMu       sync.Mutex
	fullscreen bool
}

func NewVideo(id string, cfg media.PlayerConfig, handle engine.VideoHandle, logger *slog.Logger) *Video {
	return &Video{
		base:   newBase(id, media.KindVideo, cfg, logger),
		handle: handle,
	}
}

func (v *Video) Initialize(ctx context.Context) error {
	if !v.beginInit() {
		return v.initOutcome()
	}

	v.progress(0.1, "connecting", "fetching video source")
	if err := v.handle.Load(ctx, v.cfg.Video.URL); err != nil {
		return v.failInit(media.AsError(err))
	}
	v.progress(0.8, "buffering", "priming decoder")

	if v.cfg.Video.Muted != nil {
		v.handle.SetMuted(*v.cfg.Video.Muted)
	}
	v.progress(1, "ready", "")
	v.finishReady()

	if v.cfg.Video.Autoplay != nil && *v.cfg.Video.Autoplay {
		v.handle.Play()
	}

	return nil
}

func (v *Video) Play() {
	if !v.ready() {
		return
	}
	v.handle.Play()
}

func (v *Video) Pause() {
	if !v.ready() {
		return
	}
	v.handle.Pause()
}

func (v *Video) Stop() {
	if !v.ready() {
		return
	}
	v.handle.Stop()
	v.emitEnded()
}

func (v *Video) Seek(seconds float64) {
	if !v.ready() {
		return
	}
	v.handle.Seek(seconds)
}

func (v *Video) SetVolume(vol float64) {
	if !v.ready() {
		return
	}
	v.handle.SetVolume(vol)
}

// ToggleFullscreen only acts when fullscreen is platform-available.
func (v *Video) ToggleFullscreen() {
	if !v.ready() {
		return
	}
	v.fsMu.Lock()
	defer v.fsMu.Unlock()
	if v.fullscreen {
		v.handle.ExitFullscreen()
		v.fullscreen = false
		return
	}
	if v.handle.EnterFullscreen() {
		v.fullscreen = true
	}
}

func (v *Video) Reset(ctx context.Context) error {
	v.Cleanup()
	return v.Initialize(ctx)
}

func (v *Video) Cleanup() {
	if !v.markDestroyed() {
		return
	}
	v.handle.Release()
}

func (v *Video) GetState() map[string]any {
	if v.destroyed() {
		return map[string]any{}
	}
	stats := v.handle.Snapshot()
	return map[string]any{
		"currentTime": stats.CurrentTime,
		"duration":    stats.Duration,
		"paused":      stats.Paused,
		"volume":      stats.Volume,
		"muted":       stats.Muted,
	}
}

func (v *Video) SetState(partial map[string]any) {
	if !v.ready() {
		return
	}
	if t, ok := partial["currentTime"].(float64); ok {
		v.handle.Seek(t)
	}
	if vol, ok := partial["volume"].(float64); ok {
		v.handle.SetVolume(vol)
	}
	if muted, ok := partial["muted"].(bool); ok {
		v.handle.SetMuted(muted)
	}
	if paused, ok := partial["paused"].(bool); ok {
		if paused {
			v.handle.Pause()
		} else {
			v.handle.Play()
		}
	}
}
