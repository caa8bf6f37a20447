package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/odemir/campusclubs/internal/app/annotations"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

// RatingStore is the rating persistence surface.
type RatingStore interface {
	GetByUserAndEntity(ctx context.Context, userID int64, kind models.EntityKind, entityID int64) (*models.Rating, error)
	Insert(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	UpdateScore(ctx context.Context, userID int64, kind models.EntityKind, entityID int64, score int) error
	Average(ctx context.Context, kind models.EntityKind, entityID int64) (*float64, error)
	ListByEntity(ctx context.Context, kind models.EntityKind, entityID int64) ([]*models.Rating, error)
}

// FeedbackStore is the feedback persistence surface.
type FeedbackStore interface {
	Insert(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error)
	ListByEntity(ctx context.Context, kind models.EntityKind, entityID int64) ([]*models.Feedback, error)
}

// EntityResolver maps (kind label, identifier) pairs to concrete entities.
type EntityResolver interface {
	Resolve(ctx context.Context, kindLabel, identifier string) (annotations.Entity, error)
}

// FeedbackService defines the interface for rating and feedback operations.
// Targets are addressed by (kind, identifier); an unknown kind and a missing
// entity are indistinguishable to callers.
type FeedbackService interface {
	SubmitRating(ctx context.Context, principal *models.User, kindLabel, identifier string, req *dto.SubmitRatingRequest) (*dto.RatingSubmittedResponse, error)
	SubmitFeedback(ctx context.Context, principal *models.User, kindLabel, identifier string, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error)
	GetAverageRating(ctx context.Context, kindLabel, identifier string) (*dto.AverageRatingResponse, error)
	GetEntityFeedback(ctx context.Context, kindLabel, identifier string) (*dto.EntityFeedbackResponse, error)
}

// feedbackServiceImpl implements FeedbackService
type feedbackServiceImpl struct {
	resolver      EntityResolver
	ratingStore   RatingStore
	feedbackStore FeedbackStore
	logger        zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(resolver EntityResolver, ratingStore RatingStore, feedbackStore FeedbackStore, logger zerolog.Logger) FeedbackService {
	return &feedbackServiceImpl{
		resolver:      resolver,
		ratingStore:   ratingStore,
		feedbackStore: feedbackStore,
		logger:        logger,
	}
}

// SubmitRating records the principal's 1..5 score for an entity. A user holds
// at most one rating per entity; resubmitting replaces the previous score and
// the response reports which happened.
func (s *feedbackServiceImpl) SubmitRating(ctx context.Context, principal *models.User, kindLabel, identifier string, req *dto.SubmitRatingRequest) (*dto.RatingSubmittedResponse, error) {
	if req.Score < models.MinRatingScore || req.Score > models.MaxRatingScore {
		return nil, apperrors.ErrRatingOutOfRange
	}

	entity, err := s.resolver.Resolve(ctx, kindLabel, identifier)
	if err != nil {
		return nil, err
	}
	kind, entityID := entity.EntityKind(), entity.EntityID()

	_, err = s.ratingStore.GetByUserAndEntity(ctx, principal.ID, kind, entityID)
	switch {
	case err == nil:
		if err := s.ratingStore.UpdateScore(ctx, principal.ID, kind, entityID, req.Score); err != nil {
			return nil, err
		}
		return &dto.RatingSubmittedResponse{Message: "rating updated", Updated: true}, nil

	case errors.Is(err, apperrors.ErrResourceNotFound):
		rating := &models.Rating{
			UserID:   principal.ID,
			Kind:     kind,
			EntityID: entityID,
			Score:    req.Score,
		}
		if _, err := s.ratingStore.Insert(ctx, rating); err != nil {
			// Lost the race against a concurrent first submission; fall back
			// to updating the row that won.
			if errors.Is(err, apperrors.ErrConflict) {
				if err := s.ratingStore.UpdateScore(ctx, principal.ID, kind, entityID, req.Score); err != nil {
					return nil, err
				}
				return &dto.RatingSubmittedResponse{Message: "rating updated", Updated: true}, nil
			}
			return nil, err
		}
		s.logger.Info().
			Int64("userId", principal.ID).
			Str("entityKind", string(kind)).
			Int64("entityId", entityID).
			Int("score", req.Score).
			Msg("Rating submitted")
		return &dto.RatingSubmittedResponse{Message: "rating submitted", Updated: false}, nil

	default:
		return nil, err
	}
}

// SubmitFeedback records a free-text comment on an entity. Blank comments are
// rejected; a user may comment on the same entity any number of times.
func (s *feedbackServiceImpl) SubmitFeedback(ctx context.Context, principal *models.User, kindLabel, identifier string, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	if strings.TrimSpace(req.Comment) == "" {
		return nil, apperrors.ErrBlankComment
	}

	entity, err := s.resolver.Resolve(ctx, kindLabel, identifier)
	if err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		UserID:   principal.ID,
		Kind:     entity.EntityKind(),
		EntityID: entity.EntityID(),
		Comment:  req.Comment,
	}
	created, err := s.feedbackStore.Insert(ctx, feedback)
	if err != nil {
		return nil, err
	}
	created.User = principal

	resp := dto.FromFeedback(created)
	return &resp, nil
}

// GetAverageRating returns the rating aggregate for an entity. The average is
// null, never zero, when the entity has no ratings.
func (s *feedbackServiceImpl) GetAverageRating(ctx context.Context, kindLabel, identifier string) (*dto.AverageRatingResponse, error) {
	entity, err := s.resolver.Resolve(ctx, kindLabel, identifier)
	if err != nil {
		return nil, err
	}
	kind, entityID := entity.EntityKind(), entity.EntityID()

	avg, err := s.ratingStore.Average(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingStore.ListByEntity(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	return &dto.AverageRatingResponse{
		EntityKind:    string(kind),
		EntityID:      entityID,
		AverageRating: avg,
		RatingCount:   len(ratings),
	}, nil
}

// GetEntityFeedback returns everything attached to one entity: its ratings,
// comments and average score.
func (s *feedbackServiceImpl) GetEntityFeedback(ctx context.Context, kindLabel, identifier string) (*dto.EntityFeedbackResponse, error) {
	entity, err := s.resolver.Resolve(ctx, kindLabel, identifier)
	if err != nil {
		return nil, err
	}
	kind, entityID := entity.EntityKind(), entity.EntityID()

	ratings, err := s.ratingStore.ListByEntity(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}
	feedback, err := s.feedbackStore.ListByEntity(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}
	avg, err := s.ratingStore.Average(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	ratingResponses := make([]dto.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		ratingResponses = append(ratingResponses, dto.FromRating(r))
	}
	feedbackResponses := make([]dto.FeedbackResponse, 0, len(feedback))
	for _, f := range feedback {
		feedbackResponses = append(feedbackResponses, dto.FromFeedback(f))
	}

	return &dto.EntityFeedbackResponse{
		EntityKind:    string(kind),
		EntityID:      entityID,
		EntityName:    entity.DisplayName(),
		AverageRating: avg,
		Ratings:       ratingResponses,
		Feedback:      feedbackResponses,
	}, nil
}
