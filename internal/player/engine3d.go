package player

import (
	"context"
	"log/slog"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/player/engine"
)

// Engine3D wraps one 3D engine application plus its scene. Play, Pause
// and Stop toggle the engine's run flag; frame statistics come from the
// engine itself.
type Engine3D struct {
	base
	handle engine.SceneHandle
}

func NewEngine3D(id string, cfg media.PlayerConfig, handle engine.SceneHandle, logger *slog.Logger) *Engine3D {
	return &Engine3D{
		base:   newBase(id, media.KindEngine3D, cfg, logger),
		handle: handle,
	}
}

func (e *Engine3D) Initialize(ctx context.Context) error {
	if !e.beginInit() {
		return e.initOutcome()
	}

	e.progress(0.1, "booting", "starting engine application")
	if err := e.handle.Boot(ctx, e.cfg.Engine3D.SceneURL, e.cfg.Engine3D.AssetURLs); err != nil {
		return e.failInit(media.AsError(err))
	}
	e.progress(1, "ready", "")
	e.finishReady()

	if e.cfg.Active {
		e.handle.SetRunning(true)
	}

	return nil
}

func (e *Engine3D) Play() {
	if !e.ready() {
		return
	}
	e.handle.SetRunning(true)
}

func (e *Engine3D) Pause() {
	if !e.ready() {
		return
	}
	e.handle.SetRunning(false)
}

func (e *Engine3D) Stop() {
	if !e.ready() {
		return
	}
	e.handle.SetRunning(false)
}

func (e *Engine3D) Reset(ctx context.Context) error {
	e.Cleanup()
	return e.Initialize(ctx)
}

func (e *Engine3D) Cleanup() {
	if !e.markDestroyed() {
		return
	}
	e.handle.Release()
}

func (e *Engine3D) GetState() map[string]any {
	if e.destroyed() {
		return map[string]any{}
	}
	stats := e.handle.FrameStats()
	return map[string]any{
		"isRunning": stats.IsRunning,
		"fps":       stats.FPS,
		"drawCalls": stats.DrawCalls,
	}
}

func (e *Engine3D) SetState(partial map[string]any) {
	if !e.ready() {
		return
	}
	if running, ok := partial["isRunning"].(bool); ok {
		e.handle.SetRunning(running)
	}
}
