package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/media/device"
	"github.com/odeislands/mediacore/internal/media/optimize"
	"github.com/odeislands/mediacore/internal/player"
	"github.com/odeislands/mediacore/internal/player/engine"
)

var testDefaults = media.Defaults{
	Quality:        media.Tier720p,
	Muted:          true,
	Engine3DMaxFPS: 60,
}

var desktopSignals = device.Signals{Connection: media.Conn4G}

func newTestFactory(provider engine.Provider) *Factory {
	return New(provider, optimize.New(), testDefaults, nil)
}

func videoParams(active bool) *CreatePlayerParams {
	return &CreatePlayerParams{
		Config: media.PlayerConfig{
			Kind:   media.KindVideo,
			Active: active,
			Video:  &media.VideoConfig{URL: "https://cdn.example.com/clip.m3u8"},
		},
		Signals: desktopSignals,
	}
}

func engine3DParams(active bool) *CreatePlayerParams {
	return &CreatePlayerParams{
		Config: media.PlayerConfig{
			Kind:     media.KindEngine3D,
			Active:   active,
			Engine3D: &media.Engine3DConfig{SceneURL: "https://cdn.example.com/scene.json"},
		},
		Signals: desktopSignals,
	}
}

func TestCreatePlayerRegistersInstance(t *testing.T) {
	f := newTestFactory(engine.NewSimProvider())
	ctx := context.Background()

	inst, err := f.CreatePlayer(ctx, videoParams(true))
	require.NoError(t, err)
	require.NotNil(t, inst)

	assert.NotEmpty(t, inst.ID())
	assert.Equal(t, player.StatusReady, inst.Status())
	assert.Equal(t, media.KindVideo, inst.Kind())

	stats := f.GetStats()
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByKind[media.KindVideo])
	assert.Equal(t, 10, stats.EstimatedMB)
}

func TestCreatePlayerRejectsMalformedConfigWithoutRegistering(t *testing.T) {
	f := newTestFactory(engine.NewSimProvider())

	// video config with url omitted
	params := &CreatePlayerParams{
		Config: media.PlayerConfig{
			Kind:  media.KindVideo,
			Video: &media.VideoConfig{},
		},
		Signals: desktopSignals,
	}
	inst, err := f.CreatePlayer(context.Background(), params)
	require.Error(t, err)
	assert.Nil(t, inst)
	assert.Equal(t, media.ErrorUnsupported, media.AsError(err).Kind)
	assert.Equal(t, 0, f.GetStats().Total, "registry size must be unchanged")
}

func TestCreatePlayerRegistersFailedInstance(t *testing.T) {
	provider := engine.NewSimProvider()
	provider.VideoErr = media.NewNetworkError("timeout")
	f := newTestFactory(provider)

	inst, err := f.CreatePlayer(context.Background(), videoParams(true))
	require.NoError(t, err, "initialization failure must not prevent registration")
	require.NotNil(t, inst)

	assert.Equal(t, player.StatusFailed, inst.Status())
	require.NotNil(t, inst.Err())
	assert.Equal(t, media.ErrorNetwork, inst.Err().Kind)
	assert.Equal(t, 1, f.GetStats().Total, "failed instance must still be tracked")
}

func TestGetInstancesByType(t *testing.T) {
	f := newTestFactory(engine.NewSimProvider())
	ctx := context.Background()

	_, err := f.CreatePlayer(ctx, videoParams(true))
	require.NoError(t, err)
	_, err = f.CreatePlayer(ctx, engine3DParams(false))
	require.NoError(t, err)
	_, err = f.CreatePlayer(ctx, engine3DParams(false))
	require.NoError(t, err)

	assert.Len(t, f.GetActiveInstances(), 3)
	assert.Len(t, f.GetInstancesByType(media.KindVideo), 1)
	assert.Len(t, f.GetInstancesByType(media.KindEngine3D), 2)
	assert.Len(t, f.GetInstancesByType(media.KindAR), 0)
}

func TestDestroyInstanceIsIdempotent(t *testing.T) {
	f := newTestFactory(engine.NewSimProvider())
	inst, err := f.CreatePlayer(context.Background(), videoParams(true))
	require.NoError(t, err)

	f.DestroyInstance(inst)
	assert.Equal(t, player.StatusDestroyed, inst.Status())
	assert.Equal(t, 0, f.GetStats().Total)

	f.DestroyInstance(inst)
	f.DestroyInstance(nil)
	assert.Equal(t, 0, f.GetStats().Total)
}

func TestMemoryCleanupScenario(t *testing.T) {
	f := newTestFactory(engine.NewSimProvider())
	ctx := context.Background()

	// one active video (10MB) and three inactive 3D engines (50MB each)
	video, err := f.CreatePlayer(ctx, videoParams(true))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.CreatePlayer(ctx, engine3DParams(false))
		require.NoError(t, err)
	}
	require.Equal(t, 160, f.GetStats().EstimatedMB)

	report := f.PerformMemoryCleanup(100)
	assert.Equal(t, 160, report.TotalBeforeMB)
	assert.Equal(t, 60, report.TotalAfterMB, "eviction must stop at 80 percent of budget")
	assert.Len(t, report.EvictedIDs, 2)

	assert.Equal(t, player.StatusReady, video.Status(), "active video must survive")
	assert.Len(t, f.GetInstancesByType(media.KindEngine3D), 1, "exactly one inactive engine must remain")
}

func TestMemoryCleanupNeverEvictsActiveInstances(t *testing.T) {
	f := newTestFactory(engine.NewSimProvider())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := f.CreatePlayer(ctx, engine3DParams(true))
		require.NoError(t, err)
	}
	require.Equal(t, 200, f.GetStats().EstimatedMB)

	report := f.PerformMemoryCleanup(100)
	assert.Empty(t, report.EvictedIDs, "active instances are never evicted, even over budget")
	assert.Equal(t, 200, report.TotalAfterMB)
	assert.Equal(t, 4, f.GetStats().Total)
}

func TestMemoryCleanupUnderBudgetIsNoop(t *testing.T) {
	f := newTestFactory(engine.NewSimProvider())
	_, err := f.CreatePlayer(context.Background(), videoParams(false))
	require.NoError(t, err)

	report := f.PerformMemoryCleanup(100)
	assert.Empty(t, report.EvictedIDs)
	assert.Equal(t, 10, report.TotalBeforeMB)
	assert.Equal(t, 10, report.TotalAfterMB)
	assert.Equal(t, 1, f.GetStats().Total)
}

type panicVideo struct {
	engine.VideoHandle
}

func (p panicVideo) Release() {
	panic("release failed")
}

type panicProvider struct {
	sim *engine.SimProvider
}

func (p panicProvider) NewVideo() engine.VideoHandle {
	return panicVideo{p.sim.NewVideo()}
}

func (p panicProvider) NewScene() engine.SceneHandle {
	return p.sim.NewScene()
}

func (p panicProvider) NewSession() engine.SessionHandle {
	return p.sim.NewSession()
}

func TestMemoryCleanupSurvivesMisbehavingInstances(t *testing.T) {
	f := newTestFactory(panicProvider{sim: engine.NewSimProvider()})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.CreatePlayer(ctx, videoParams(false))
		require.NoError(t, err)
	}
	require.Equal(t, 30, f.GetStats().EstimatedMB)

	// every eviction panics on release; the sweep must still make
	// forward progress
	report := f.PerformMemoryCleanup(20)
	assert.Len(t, report.EvictedIDs, 2)
	assert.Equal(t, 10, report.TotalAfterMB)
	assert.Equal(t, 1, f.GetStats().Total)
}
