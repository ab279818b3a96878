package device

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odeislands/mediacore/internal/media"
)

func TestResolveSlowConnectionForcesLowestTier(t *testing.T) {
	for _, conn := range []media.ConnectionClass{media.ConnSlow2G, media.Conn2G} {
		profile := Resolve(Signals{IsMobile: false, Connection: conn})
		assert.Equal(t, media.Tier144p, profile.Tier, "tier must be lowest on %s", conn)
		assert.False(t, profile.EnableAR, "ar must be disabled on %s", conn)
	}
}

func TestResolveLowEndMobileForcesLowestTier(t *testing.T) {
	profile := Resolve(Signals{IsMobile: true, Connection: media.Conn3G})
	assert.Equal(t, media.Tier144p, profile.Tier)
	assert.False(t, profile.EnableAR)
}

func TestResolveMobileOnFastConnection(t *testing.T) {
	profile := Resolve(Signals{IsMobile: true, Connection: media.Conn4G})
	assert.Equal(t, media.Tier720p, profile.Tier)
	assert.True(t, profile.EnableAR)
}

func TestResolveDesktop(t *testing.T) {
	profile := Resolve(Signals{IsMobile: false, Connection: media.Conn4G})
	assert.Equal(t, media.Tier1080p, profile.Tier)
	assert.True(t, profile.EnableAR)
}

func TestResolvePropagatesReduceAnimations(t *testing.T) {
	profile := Resolve(Signals{ReduceAnimations: true, Connection: media.Conn4G})
	assert.True(t, profile.ReduceAnimations)

	profile = Resolve(Signals{ReduceAnimations: false, Connection: media.Conn4G})
	assert.False(t, profile.ReduceAnimations)
}

func TestResolveIsRecomputedPerCall(t *testing.T) {
	fast := Resolve(Signals{IsMobile: true, Connection: media.Conn4G})
	degraded := Resolve(Signals{IsMobile: true, Connection: media.Conn2G})

	assert.True(t, fast.EnableAR)
	assert.False(t, degraded.EnableAR, "a degrading network must be honored on the next resolve")
}
