package models

import (
	"fmt"
	"time"

	"github.com/cotrip/cotrip/internal/common"
)

// DateLayout is the wire format of trip start/end dates.
const DateLayout = "2006-01-02"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type Trip struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	Destination  string            `json:"destination"`
	StartDate    string            `json:"startDate"`
	EndDate      string            `json:"endDate"`
	CreatedBy    string            `json:"createdBy"`
	CreatedAt    string            `json:"createdAt"`
	UpdatedAt    string            `json:"updatedAt"`
	IsPublic     bool              `json:"isPublic"`
	Budget       *float64          `json:"budget,omitempty"`
	Participants []TripParticipant `json:"participants"`
}

type TripParticipant struct {
	ID       string `json:"id"`
	TripID   string `json:"tripId"`
	UserID   string `json:"userId"`
	Role     Role   `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

// EffectiveRole defaults an empty role to viewer.
func (p TripParticipant) EffectiveRole() Role {
	if p.Role == "" {
		return RoleViewer
	}
	return p.Role
}

// ValidateDateRange reports common.ErrInvalidDateRange when start is after
// end. Empty or unparseable dates are left for the server to judge.
func ValidateDateRange(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil
	}
	if s.After(e) {
		return fmt.Errorf("%w: %s > %s", common.ErrInvalidDateRange, start, end)
	}
	return nil
}
