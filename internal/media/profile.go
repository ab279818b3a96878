package media

type QualityTier string

const (
	Tier144p  QualityTier = "144p"
	Tier360p  QualityTier = "360p"
	Tier720p  QualityTier = "720p"
	Tier1080p QualityTier = "1080p"
	Tier2160p QualityTier = "2160p"
)

var tierRank = map[QualityTier]int{
	Tier144p:  0,
	Tier360p:  1,
	Tier720p:  2,
	Tier1080p: 3,
	Tier2160p: 4,
}

// Clamp returns the lower of t and max. Unknown tiers clamp to max.
func (t QualityTier) Clamp(max QualityTier) QualityTier {
	tr, ok := tierRank[t]
	if !ok {
		return max
	}
	if tr > tierRank[max] {
		return max
	}
	return t
}

func (t QualityTier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

type ConnectionClass string

const (
	ConnSlow2G ConnectionClass = "slow-2g"
	Conn2G     ConnectionClass = "2g"
	Conn3G     ConnectionClass = "3g"
	Conn4G     ConnectionClass = "4g"
)

func (c ConnectionClass) Slow() bool {
	return c == ConnSlow2G || c == Conn2G
}

// DeviceProfile is the capability tier resolved from raw device signals.
// It is a value type: immutable once resolved, recomputed per creation.
type DeviceProfile struct {
	Tier             QualityTier     `json:"tier"`
	EnableAR         bool            `json:"enable_ar"`
	ReduceAnimations bool            `json:"reduce_animations"`
	Connection       ConnectionClass `json:"connection"`
}
