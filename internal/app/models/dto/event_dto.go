package dto

import (
	"time"

	"github.com/odemir/campusclubs/internal/app/models"
)

// CreateEventRequest represents an event creation request. Date is a calendar
// date ("2006-01-02"); Time, when present, is "HH:MM".
type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time        *string `json:"time" binding:"omitempty,datetime=15:04"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	ClubID      *int64  `json:"clubId"`
}

// UpdateEventRequest represents an event update request.
type UpdateEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time" binding:"omitempty,datetime=15:04"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
}

// EventFilterRequest carries calendar filters.
type EventFilterRequest struct {
	ClubSlug *string
	Search   *string
	Page     int
	PageSize int
}

// EventResponse is the public view of an event.
type EventResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        string        `json:"date" example:"2025-07-25"`
	Time        *string       `json:"time,omitempty" example:"15:30"`
	Location    *string       `json:"location,omitempty"`
	Club        *ClubResponse `json:"club,omitempty"`
	Creator     *UserResponse `json:"creator,omitempty"`
	IsPast      bool          `json:"isPast"`
	IsUpcoming  bool          `json:"isUpcoming"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// EventListResponse is the paginated event calendar.
type EventListResponse struct {
	Events         []EventResponse `json:"events"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// FromEvent converts a models.Event to an EventResponse, deriving the
// past/upcoming flags from now.
func FromEvent(e *models.Event, now time.Time) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		Time:        e.Time,
		Location:    e.Location,
		IsPast:      e.IsPast(now),
		IsUpcoming:  e.IsUpcoming(now),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.Club != nil {
		club := FromClub(e.Club)
		resp.Club = &club
	}
	if e.Creator != nil {
		creator := FromUser(e.Creator)
		resp.Creator = &creator
	}
	return resp
}
