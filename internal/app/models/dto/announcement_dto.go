package dto

import (
	"time"

	"github.com/odemir/campusclubs/internal/app/models"
)

// CreateAnnouncementRequest represents an announcement creation request.
// Exactly one of IsGlobal=true or ClubID set must hold; validated in the
// service since the pair is cross-field.
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	IsGlobal bool   `json:"isGlobal"`
	ClubID   *int64 `json:"clubId"`
}

// UpdateAnnouncementRequest represents an announcement update request. Scope
// (global vs club) is immutable after creation.
type UpdateAnnouncementRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=255"`
	Content *string `json:"content"`
}

// AnnouncementResponse is the public view of an announcement.
type AnnouncementResponse struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	IsGlobal  bool          `json:"isGlobal"`
	Author    *UserResponse `json:"author,omitempty"`
	Club      *ClubResponse `json:"club,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AnnouncementListResponse is the paginated announcement listing.
type AnnouncementListResponse struct {
	Announcements  []AnnouncementResponse `json:"announcements"`
	PaginationInfo PaginationInfo         `json:"pagination"`
}

// FromAnnouncement converts a models.Announcement to an AnnouncementResponse.
func FromAnnouncement(a *models.Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		IsGlobal:  a.IsGlobal,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Author != nil {
		author := FromUser(a.Author)
		resp.Author = &author
	}
	if a.Club != nil {
		club := FromClub(a.Club)
		resp.Club = &club
	}
	return resp
}
