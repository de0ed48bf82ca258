// Package validation checks request payloads before they leave the
// client. The backend validates again; catching obvious mistakes here
// saves a round trip and gives the caller a precise error.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

var validRoles = map[string]bool{
	api.RoleStudent: true,
	api.RoleAlumni:  true,
	api.RoleMentor:  true,
	api.RoleAdmin:   true,
}

// ValidateEmail checks basic address syntax.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

// ValidateRole checks the role against the known set.
func ValidateRole(role string) error {
	if !validRoles[role] {
		return fmt.Errorf("invalid role %q", role)
	}
	return nil
}

// ValidateLogin checks a login request for the fields its flavor needs.
func ValidateLogin(req api.LoginRequest) error {
	if req.Provider == "" {
		if err := ValidateEmail(req.Email); err != nil {
			return err
		}
		if req.Password == "" {
			return fmt.Errorf("password is required")
		}
		return nil
	}
	if req.Token == "" && req.ProviderUserData == nil {
		return fmt.Errorf("provider login requires a token or provider profile")
	}
	return nil
}

// ValidateCreateUser checks a user creation request.
func ValidateCreateUser(req api.CreateUserRequest) error {
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("first and last name are required")
	}
	return ValidateRole(req.Role)
}

// ValidateCreateMentoring checks a mentoring request.
func ValidateCreateMentoring(req api.CreateMentoringRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if req.MenteeID == "" {
		return fmt.Errorf("mentee_id is required")
	}
	return nil
}

// ValidateCreateProof checks a proof creation request. Ratings live on
// a 1-5 scale.
func ValidateCreateProof(req api.CreateProofRequest) error {
	if req.RequestID == "" || req.MentorID == "" || req.MenteeID == "" {
		return fmt.Errorf("request_id, mentor_id and mentee_id are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", req.Rating)
	}
	return nil
}
