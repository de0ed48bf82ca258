package t4g

// Mentoring request statuses.
const (
	MentoringPending   = "PENDING"
	MentoringAssigned  = "ASSIGNED"
	MentoringCompleted = "COMPLETED"
	MentoringCancelled = "CANCELLED"
)

// MentoringRequest is a mentee's request for mentoring.
type MentoringRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MenteeID    string   `json:"mentee_id"`
	MentorID    string   `json:"mentor_id,omitempty"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ListMentoringParams filters GET /api/mentoring/requests.
type ListMentoringParams struct {
	Status   string
	MenteeID string
	MentorID string
}

// CreateMentoringRequest is the body for POST /api/mentoring/requests.
type CreateMentoringRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MenteeID    string   `json:"mentee_id"`
	Tags        []string `json:"tags,omitempty"`
}

// AssignMentorRequest is the body for POST .../requests/{id}/assign.
type AssignMentorRequest struct {
	MentorID string `json:"mentor_id"`
}
