package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/odemir/campusclubs/internal/app/auth"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
	"github.com/odemir/campusclubs/internal/pkg/helpers"
)

// EventStore is the event persistence surface the services need.
type EventStore interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListUpcoming(ctx context.Context, today time.Time, clubSlug, search *string, page, pageSize int) ([]models.Event, int64, error)
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// EventService defines the interface for event operations
type EventService interface {
	GetCalendar(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error)
	GetEvent(ctx context.Context, id int64) (*dto.EventResponse, error)
	CreateEvent(ctx context.Context, principal *models.User, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, principal *models.User, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, principal *models.User, id int64) error
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventStore EventStore
	clubStore  ClubStore
	userStore  UserStore
	logger     zerolog.Logger
	now        func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(eventStore EventStore, clubStore ClubStore, userStore UserStore, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventStore: eventStore,
		clubStore:  clubStore,
		userStore:  userStore,
		logger:     logger,
		now:        time.Now,
	}
}

// GetCalendar retrieves upcoming events, soonest first, optionally filtered
// by hosting club slug and title search.
func (s *eventServiceImpl) GetCalendar(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	now := s.now()
	events, total, err := s.eventStore.ListUpcoming(ctx, now, filter.ClubSlug, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list events")
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp, err := s.buildEventResponse(ctx, &events[i], now)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return &dto.EventListResponse{
		Events:         responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetEvent retrieves one event by ID.
func (s *eventServiceImpl) GetEvent(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := s.buildEventResponse(ctx, event, s.now())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateEvent creates an event. College admins may create any event; club
// officers only for clubs they manage. Events without a hosting club are
// admin territory.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, principal *models.User, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	var club *models.Club
	if req.ClubID != nil {
		var err error
		club, err = s.clubStore.GetByID(ctx, *req.ClubID)
		if err != nil {
			if errors.Is(err, apperrors.ErrClubNotFound) {
				return nil, apperrors.NewResourceNotFoundError("hosting club not found")
			}
			return nil, err
		}
	}

	if err := auth.Authorize(principal, auth.ActionCreate, auth.EventResource{Club: club}).Err(); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be formatted as YYYY-MM-DD")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		CreatedBy:   &principal.ID,
	}
	if club != nil {
		event.ClubID = &club.ID
		event.Club = club
	}

	created, err := s.eventStore.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventId", created.ID).
		Int64("createdBy", principal.ID).
		Msg("Event created")

	resp, err := s.buildEventResponse(ctx, created, s.now())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateEvent modifies an event. Allowed for college admins and the event's
// creator.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, principal *models.User, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			return nil, auth.Authorize(principal, auth.ActionUpdate, auth.EventResource{}).Err()
		}
		return nil, err
	}

	if err := auth.Authorize(principal, auth.ActionUpdate, auth.EventResource{Event: event}).Err(); err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := time.ParseInLocation("2006-01-02", *req.Date, time.Local)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be formatted as YYYY-MM-DD")
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = req.Time
	}
	if req.Location != nil {
		event.Location = req.Location
	}

	if err := s.eventStore.Update(ctx, event); err != nil {
		return nil, err
	}

	resp, err := s.buildEventResponse(ctx, event, s.now())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteEvent removes an event. College admin only.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, principal *models.User, id int64) error {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			return auth.Authorize(principal, auth.ActionDelete, auth.EventResource{}).Err()
		}
		return err
	}

	if err := auth.Authorize(principal, auth.ActionDelete, auth.EventResource{Event: event}).Err(); err != nil {
		return err
	}

	if err := s.eventStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Int64("eventId", id).
		Int64("deletedBy", principal.ID).
		Msg("Event deleted")
	return nil
}

func (s *eventServiceImpl) buildEventResponse(ctx context.Context, event *models.Event, now time.Time) (dto.EventResponse, error) {
	if event.Club == nil && event.ClubID != nil {
		club, err := s.clubStore.GetByID(ctx, *event.ClubID)
		if err == nil {
			event.Club = club
		}
	}
	if event.Creator == nil && event.CreatedBy != nil {
		creator, err := s.userStore.FindByID(ctx, *event.CreatedBy)
		if err == nil {
			event.Creator = creator
		}
	}
	return dto.FromEvent(event, now), nil
}
