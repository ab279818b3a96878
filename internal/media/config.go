package media

type Kind string

const (
	KindVideo    Kind = "video"
	KindEngine3D Kind = "engine3d"
	KindAR       Kind = "ar"
)

func (k Kind) String() string {
	return string(k)
}

// PlayerConfig is a tagged union: exactly one payload pointer must be set
// and it must match Kind. The optimizer enforces this before any engine
// handle is created.
type PlayerConfig struct {
	Kind     Kind            `json:"kind" validate:"required,oneof=video engine3d ar"`
	Active   bool            `json:"active"`
	Video    *VideoConfig    `json:"video,omitempty"`
	Engine3D *Engine3DConfig `json:"engine3d,omitempty"`
	AR       *ARConfig       `json:"ar,omitempty"`
}

type VideoConfig struct {
	URL       string      `json:"url" validate:"required"`
	PosterURL string      `json:"poster_url,omitempty"`
	Quality   QualityTier `json:"quality,omitempty"`
	Muted     *bool       `json:"muted,omitempty"`
	Autoplay  *bool       `json:"autoplay,omitempty"`
	Loop      bool        `json:"loop,omitempty"`
}

type Engine3DConfig struct {
	SceneURL  string   `json:"scene_url" validate:"required"`
	AssetURLs []string `json:"asset_urls,omitempty"`
	MaxFPS    int      `json:"max_fps,omitempty" validate:"omitempty,min=1"`
	Antialias bool     `json:"antialias,omitempty"`
}

type ARConfig struct {
	ModelURLs      []string `json:"model_urls" validate:"required,min=1"`
	SessionOpen    bool     `json:"session_open,omitempty"`
	PlaneDetection bool     `json:"plane_detection,omitempty"`
}

// Defaults are process-wide playback defaults merged into a user config
// for fields it leaves unset.
type Defaults struct {
	Quality        QualityTier `json:"quality"`
	Muted          bool        `json:"muted"`
	Autoplay       bool        `json:"autoplay"`
	Engine3DMaxFPS int         `json:"engine3d_max_fps"`
}
