// Package optimize merges a user-declared player config with process
// defaults and clamps it to what the resolved device profile allows.
package optimize

import (
	"fmt"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/pkg/validator"
)

type Optimizer struct {
	validate *validator.Validator
}

func New() *Optimizer {
	return &Optimizer{validate: validator.NewValidator()}
}

// Optimize validates the tagged-union shape first, then merges defaults
// into unset optional fields, then applies device-profile overrides.
// Synchronous and side-effect free: no engine handle is ever touched
// here. Shape failures come back as unsupported, never retryable.
func (o *Optimizer) Optimize(cfg media.PlayerConfig, defaults media.Defaults, profile media.DeviceProfile) (media.PlayerConfig, error) {
	if err := o.checkShape(cfg); err != nil {
		return media.PlayerConfig{}, err
	}

	if errs, ok := o.validate.Validate(cfg); !ok {
		return media.PlayerConfig{}, media.NewUnsupportedError(validator.Join(errs))
	}

	out := clone(cfg)
	mergeDefaults(&out, defaults)
	applyProfile(&out, profile)

	return out, nil
}

func (o *Optimizer) checkShape(cfg media.PlayerConfig) error {
	payloads := 0
	if cfg.Video != nil {
		payloads++
	}
	if cfg.Engine3D != nil {
		payloads++
	}
	if cfg.AR != nil {
		payloads++
	}
	if payloads != 1 {
		return media.NewUnsupportedError(fmt.Sprintf("config must carry exactly one payload, got %d", payloads))
	}

	match := false
	switch cfg.Kind {
	case media.KindVideo:
		match = cfg.Video != nil
	case media.KindEngine3D:
		match = cfg.Engine3D != nil
	case media.KindAR:
		match = cfg.AR != nil
	default:
		return media.NewUnsupportedError(fmt.Sprintf("unknown player kind %q", cfg.Kind))
	}
	if !match {
		return media.NewUnsupportedError(fmt.Sprintf("payload does not match kind %q", cfg.Kind))
	}

	return nil
}

func clone(cfg media.PlayerConfig) media.PlayerConfig {
	out := cfg
	if cfg.Video != nil {
		v := *cfg.Video
		out.Video = &v
	}
	if cfg.Engine3D != nil {
		e := *cfg.Engine3D
		e.AssetURLs = append([]string(nil), cfg.Engine3D.AssetURLs...)
		out.Engine3D = &e
	}
	if cfg.AR != nil {
		a := *cfg.AR
		a.ModelURLs = append([]string(nil), cfg.AR.ModelURLs...)
		out.AR = &a
	}
	return out
}

func mergeDefaults(cfg *media.PlayerConfig, defaults media.Defaults) {
	switch cfg.Kind {
	case media.KindVideo:
		if !cfg.Video.Quality.Valid() {
			cfg.Video.Quality = defaults.Quality
		}
		if cfg.Video.Muted == nil {
			muted := defaults.Muted
			cfg.Video.Muted = &muted
		}
		if cfg.Video.Autoplay == nil {
			autoplay := defaults.Autoplay
			cfg.Video.Autoplay = &autoplay
		}
	case media.KindEngine3D:
		if cfg.Engine3D.MaxFPS == 0 {
			cfg.Engine3D.MaxFPS = defaults.Engine3DMaxFPS
		}
	}
}

func applyProfile(cfg *media.PlayerConfig, profile media.DeviceProfile) {
	switch cfg.Kind {
	case media.KindVideo:
		cfg.Video.Quality = cfg.Video.Quality.Clamp(profile.Tier)
		if profile.ReduceAnimations && cfg.Video.Autoplay != nil && *cfg.Video.Autoplay {
			autoplay := false
			cfg.Video.Autoplay = &autoplay
		}
	case media.KindEngine3D:
		if profile.ReduceAnimations && cfg.Engine3D.MaxFPS > 30 {
			cfg.Engine3D.MaxFPS = max(cfg.Engine3D.MaxFPS/2, 30)
		}
	case media.KindAR:
		// Ineligible devices keep the payload; the AR instance fails
		// fast on initialize. An auto-opened session is not attempted.
		if !profile.EnableAR {
			cfg.AR.SessionOpen = false
		}
	}
}
