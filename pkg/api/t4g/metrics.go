package t4g

// LightningMetrics is the optional Lightning section of MetricsResponse.
type LightningMetrics struct {
	NumChannels       int   `json:"num_channels"`
	SyncedToChain     bool  `json:"synced_to_chain"`
	TotalCapacityMsat int64 `json:"total_capacity_msat"`
}

// MetricsResponse is returned by GET /api/metrics.
type MetricsResponse struct {
	TotalUsers                int               `json:"total_users"`
	TotalMentoringRequests    int               `json:"total_mentoring_requests"`
	TotalRGBProofs            int               `json:"total_rgb_proofs"`
	ActiveMentoringRequests   int               `json:"active_mentoring_requests"`
	CompletedMentoringRequests int               `json:"completed_mentoring_requests"`
	Lightning                 *LightningMetrics `json:"lightning,omitempty"`
	Timestamp                 string            `json:"timestamp"`
}

// FallbackMetrics is the zero-value placeholder shown while the backend is
// unreachable and no cached response exists.
func FallbackMetrics() *MetricsResponse {
	return &MetricsResponse{}
}
