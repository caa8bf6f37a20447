package dto

import (
	"time"

	"github.com/odemir/campusclubs/internal/app/models"
)

// SubmitRatingRequest carries a 1..5 score for an entity.
type SubmitRatingRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

// SubmitFeedbackRequest carries a free-text comment for an entity.
type SubmitFeedbackRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// RatingResponse is the public view of a rating.
type RatingResponse struct {
	ID        int64         `json:"id"`
	Score     int           `json:"score"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// FeedbackResponse is the public view of a feedback comment.
type FeedbackResponse struct {
	ID        int64         `json:"id"`
	Comment   string        `json:"comment"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// RatingSubmittedResponse reports whether a submission created a new rating
// or updated an existing one.
type RatingSubmittedResponse struct {
	Message string `json:"message"`
	Updated bool   `json:"updated"`
}

// AverageRatingResponse carries the aggregate for an entity. AverageRating is
// null when no ratings exist; it is never coerced to zero.
type AverageRatingResponse struct {
	EntityKind    string   `json:"entityKind"`
	EntityID      int64    `json:"entityId"`
	AverageRating *float64 `json:"averageRating"`
	RatingCount   int      `json:"ratingCount"`
}

// EntityFeedbackResponse lists everything attached to one entity.
type EntityFeedbackResponse struct {
	EntityKind    string             `json:"entityKind"`
	EntityID      int64              `json:"entityId"`
	EntityName    string             `json:"entityName"`
	AverageRating *float64           `json:"averageRating"`
	Ratings       []RatingResponse   `json:"ratings"`
	Feedback      []FeedbackResponse `json:"feedback"`
}

// FromRating converts a models.Rating to a RatingResponse.
func FromRating(r *models.Rating) RatingResponse {
	resp := RatingResponse{
		ID:        r.ID,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		user := FromUser(r.User)
		resp.User = &user
	}
	return resp
}

// FromFeedback converts a models.Feedback to a FeedbackResponse.
func FromFeedback(f *models.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:        f.ID,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
	if f.User != nil {
		user := FromUser(f.User)
		resp.User = &user
	}
	return resp
}
