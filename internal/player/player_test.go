package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/player/engine"
)

func videoConfig(active bool) media.PlayerConfig {
	muted := true
	autoplay := false
	return media.PlayerConfig{
		Kind:   media.KindVideo,
		Active: active,
		Video: &media.VideoConfig{
			URL:      "https://cdn.example.com/clip.m3u8",
			Quality:  media.Tier720p,
			Muted:    &muted,
			Autoplay: &autoplay,
		},
	}
}

func arConfig(sessionOpen bool) media.PlayerConfig {
	return media.PlayerConfig{
		Kind: media.KindAR,
		AR: &media.ARConfig{
			ModelURLs:   []string{"https://cdn.example.com/model.glb"},
			SessionOpen: sessionOpen,
		},
	}
}

func TestVideoLifecycle(t *testing.T) {
	provider := engine.NewSimProvider()
	v := NewVideo("v1", videoConfig(true), provider.NewVideo(), nil)
	ctx := context.Background()

	assert.Equal(t, StatusUninitialized, v.Status())

	var progress []float64
	v.SetCallbacks(Callbacks{OnProgress: func(p float64) { progress = append(progress, p) }})

	require.NoError(t, v.Initialize(ctx))
	assert.Equal(t, StatusReady, v.Status())
	assert.False(t, v.Loading().IsLoading, "loading state must clear on ready")

	// progress is monotonically non-decreasing within the attempt
	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Equal(t, 1.0, progress[len(progress)-1])

	v.Play()
	state := v.GetState()
	assert.Equal(t, false, state["paused"])
	assert.Equal(t, true, state["muted"])

	v.Seek(42)
	state = v.GetState()
	assert.Equal(t, 42.0, state["currentTime"])

	v.SetVolume(0.5)
	assert.Equal(t, 0.5, v.GetState()["volume"])

	// second initialize is a no-op
	require.NoError(t, v.Initialize(ctx))
	assert.Equal(t, StatusReady, v.Status())
}

func TestVideoInitializeFailure(t *testing.T) {
	provider := engine.NewSimProvider()
	provider.VideoErr = media.NewNetworkError("segment fetch timed out")

	v := NewVideo("v1", videoConfig(true), provider.NewVideo(), nil)
	err := v.Initialize(context.Background())
	require.Error(t, err)

	assert.Equal(t, StatusFailed, v.Status())
	require.NotNil(t, v.Err())
	assert.Equal(t, media.ErrorNetwork, v.Err().Kind)
	assert.True(t, v.Err().Retryable)

	// repeated initialize reports the stored error without a new attempt
	err = v.Initialize(context.Background())
	require.Error(t, err)
	assert.Equal(t, media.ErrorNetwork, media.AsError(err).Kind)
}

func TestVideoCleanupIsIdempotent(t *testing.T) {
	provider := engine.NewSimProvider()
	v := NewVideo("v1", videoConfig(true), provider.NewVideo(), nil)
	require.NoError(t, v.Initialize(context.Background()))

	v.Cleanup()
	assert.Equal(t, StatusDestroyed, v.Status())
	assert.Nil(t, v.Err())

	v.Cleanup()
	assert.Equal(t, StatusDestroyed, v.Status())
	assert.Nil(t, v.Err())
}

func TestDestroyedInstanceIsInert(t *testing.T) {
	provider := engine.NewSimProvider()
	v := NewVideo("v1", videoConfig(true), provider.NewVideo(), nil)
	require.NoError(t, v.Initialize(context.Background()))
	v.Cleanup()

	v.Play()
	v.Pause()
	v.Seek(10)
	v.SetVolume(0.2)
	v.SetState(map[string]any{"paused": false})
	assert.Empty(t, v.GetState())
	assert.Equal(t, StatusDestroyed, v.Status())

	// destroyed is terminal: no reinitialization in place
	require.NoError(t, v.Initialize(context.Background()))
	assert.Equal(t, StatusDestroyed, v.Status())
}

func TestVideoSetStatePartial(t *testing.T) {
	provider := engine.NewSimProvider()
	v := NewVideo("v1", videoConfig(true), provider.NewVideo(), nil)
	require.NoError(t, v.Initialize(context.Background()))

	v.SetState(map[string]any{
		"currentTime": 30.0,
		"paused":      false,
		"unknownKey":  "ignored",
	})
	state := v.GetState()
	assert.Equal(t, 30.0, state["currentTime"])
	assert.Equal(t, false, state["paused"])
}

func TestEngine3DLifecycle(t *testing.T) {
	provider := engine.NewSimProvider()
	cfg := media.PlayerConfig{
		Kind:     media.KindEngine3D,
		Active:   true,
		Engine3D: &media.Engine3DConfig{SceneURL: "https://cdn.example.com/scene.json", MaxFPS: 60},
	}
	e := NewEngine3D("e1", cfg, provider.NewScene(), nil)
	require.NoError(t, e.Initialize(context.Background()))
	assert.Equal(t, StatusReady, e.Status())

	// active config starts the run flag
	state := e.GetState()
	assert.Equal(t, true, state["isRunning"])
	assert.Equal(t, 60.0, state["fps"])
	assert.Equal(t, 42, state["drawCalls"])

	e.Pause()
	assert.Equal(t, false, e.GetState()["isRunning"])

	e.Play()
	assert.Equal(t, true, e.GetState()["isRunning"])

	e.Stop()
	assert.Equal(t, false, e.GetState()["isRunning"])

	// video-only controls are no-ops, not errors
	e.Seek(10)
	e.SetVolume(0.5)
	e.ToggleFullscreen()
	assert.Equal(t, StatusReady, e.Status())
}

func TestARFailsFastWhenIneligible(t *testing.T) {
	provider := engine.NewSimProvider()
	profile := media.DeviceProfile{Tier: media.Tier144p, EnableAR: false, Connection: media.Conn2G}

	a := NewAR("a1", arConfig(true), profile, provider.NewSession(), nil)
	err := a.Initialize(context.Background())
	require.Error(t, err)

	assert.Equal(t, StatusFailed, a.Status())
	require.NotNil(t, a.Err())
	assert.Equal(t, media.ErrorDevice, a.Err().Kind)
	assert.False(t, a.Err().Recoverable)
	assert.False(t, a.Err().Retryable)
}

func TestARSession(t *testing.T) {
	provider := engine.NewSimProvider()
	profile := media.DeviceProfile{Tier: media.Tier1080p, EnableAR: true, Connection: media.Conn4G}

	a := NewAR("a1", arConfig(false), profile, provider.NewSession(), nil)
	require.NoError(t, a.Initialize(context.Background()))
	assert.Equal(t, StatusReady, a.Status())

	// play is a no-op while the session is closed
	a.Play()
	assert.Equal(t, false, a.GetState()["running"])

	a.SetState(map[string]any{"sessionOpen": true})
	assert.Equal(t, true, a.GetState()["sessionOpen"])
	a.Play()
	assert.Equal(t, true, a.GetState()["running"])

	// the flag lives on the instance, the config snapshot stays as created
	assert.False(t, a.Config().AR.SessionOpen)

	models := a.GetState()["loadedModels"].([]string)
	assert.Len(t, models, 1)

	// stop ends the session and releases the model references
	a.Stop()
	assert.Equal(t, false, a.GetState()["running"])
	assert.Empty(t, a.GetState()["loadedModels"])
}
