package dto

import (
	"time"

	"github.com/odemir/campusclubs/internal/app/models"
)

// CreateClubRequest represents a club creation request. The slug is derived
// from the title when absent and is immutable afterwards.
type CreateClubRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"required"`
	ManagerID   *int64 `json:"managerId"`
}

// UpdateClubRequest represents a club update request. The slug cannot change.
type UpdateClubRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	ManagerID   *int64  `json:"managerId"`
	// ClearManager unsets the manager when true; distinguishes "leave as is"
	// from "remove".
	ClearManager bool `json:"clearManager"`
}

// ClubFilterRequest carries list filters.
type ClubFilterRequest struct {
	Search   *string
	Page     int
	PageSize int
}

// ClubResponse is the public view of a club.
type ClubResponse struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Manager       *UserResponse `json:"manager,omitempty"`
	MemberCount   int           `json:"memberCount"`
	AverageRating *float64      `json:"averageRating"` // null when unrated
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ClubDetailResponse adds members and the caller's membership state.
type ClubDetailResponse struct {
	ClubResponse
	IsMember bool             `json:"isMember"`
	Members  []MemberResponse `json:"members"`
}

// MemberResponse is one row of a club's member list.
type MemberResponse struct {
	User     UserResponse `json:"user"`
	JoinedAt time.Time    `json:"joinedAt"`
}

// ClubListResponse is the paginated club listing.
type ClubListResponse struct {
	Clubs          []ClubResponse `json:"clubs"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// FromClub converts a models.Club to a ClubResponse.
func FromClub(c *models.Club) ClubResponse {
	resp := ClubResponse{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Manager != nil {
		manager := FromUser(c.Manager)
		resp.Manager = &manager
	}
	return resp
}
