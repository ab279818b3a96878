package media

// LoadingState is the progress snapshot of one initialization attempt.
// Progress is monotonically non-decreasing within an attempt and resets
// to 0 on retry.
type LoadingState struct {
	IsLoading bool    `json:"is_loading"`
	Progress  float64 `json:"progress"`
	Stage     string  `json:"stage"`
	Message   string  `json:"message"`
}
