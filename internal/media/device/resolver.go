// Package device derives a capability profile from raw runtime signals.
package device

import "github.com/odeislands/mediacore/internal/media"

// Signals are the raw inputs supplied by the hosting environment. They
// are re-read on every player creation so runtime condition changes
// (e.g. a degrading network) are honored on the next instance.
type Signals struct {
	IsMobile         bool
	ReduceAnimations bool
	Connection       media.ConnectionClass
}

// Resolve is pure and has no failure mode. Low-end mobile or a slow
// connection forces the lowest tier and disables AR regardless of what
// the config asks for.
func Resolve(s Signals) media.DeviceProfile {
	profile := media.DeviceProfile{
		ReduceAnimations: s.ReduceAnimations,
		Connection:       s.Connection,
	}

	switch {
	case s.Connection.Slow(), s.IsMobile && s.Connection == media.Conn3G:
		profile.Tier = media.Tier144p
		profile.EnableAR = false
	case s.IsMobile:
		profile.Tier = media.Tier720p
		profile.EnableAR = true
	case s.Connection == media.Conn3G:
		profile.Tier = media.Tier720p
		profile.EnableAR = true
	default:
		profile.Tier = media.Tier1080p
		profile.EnableAR = true
	}

	return profile
}
