package t4g

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  bool   `json:"database"`
	Lightning bool   `json:"lightning"`
	RGB       bool   `json:"rgb"`
	Timestamp string `json:"timestamp"`
}
