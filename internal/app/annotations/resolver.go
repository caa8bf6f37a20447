package annotations

import (
	"context"
	"strconv"

	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

// Entity is a resolved annotation target. Ratings and feedback are keyed only
// by (kind, id); the concrete instance is carried for display.
type Entity interface {
	EntityKind() models.EntityKind
	EntityID() int64
	DisplayName() string
}

// ClubEntity adapts a club as an annotation target.
type ClubEntity struct {
	Club *models.Club
}

func (e ClubEntity) EntityKind() models.EntityKind { return models.KindClub }
func (e ClubEntity) EntityID() int64               { return e.Club.ID }
func (e ClubEntity) DisplayName() string           { return e.Club.Title }

// EventEntity adapts an event as an annotation target.
type EventEntity struct {
	Event *models.Event
}

func (e EventEntity) EntityKind() models.EntityKind { return models.KindEvent }
func (e EventEntity) EntityID() int64               { return e.Event.ID }
func (e EventEntity) DisplayName() string           { return e.Event.Title }

// LookupFunc resolves an identifier to an entity of one kind. Implementations
// return apperrors.ErrResourceNotFound (possibly wrapped) for unknown or
// malformed identifiers.
type LookupFunc func(ctx context.Context, identifier string) (Entity, error)

// Registry maps entity kinds to their lookup functions. Kinds are a closed
// enum; resolving an unregistered or unknown kind is a plain NotFound,
// indistinguishable from a missing entity.
type Registry struct {
	lookups map[models.EntityKind]LookupFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{lookups: make(map[models.EntityKind]LookupFunc)}
}

// Register binds a lookup function to a kind.
func (r *Registry) Register(kind models.EntityKind, fn LookupFunc) {
	r.lookups[kind] = fn
}

// Resolve maps a (kind label, identifier) pair to a concrete entity.
func (r *Registry) Resolve(ctx context.Context, kindLabel, identifier string) (Entity, error) {
	kind, ok := models.ParseEntityKind(kindLabel)
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	lookup, ok := r.lookups[kind]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return lookup(ctx, identifier)
}

// IsNumeric reports whether s is a non-empty string of ASCII digits.
// Identifiers that fail this check are treated as slugs by kinds that have
// one, and as NotFound by kinds that do not.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ClubSource is the minimal club lookup surface the registry needs.
type ClubSource interface {
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	GetBySlug(ctx context.Context, slug string) (*models.Club, error)
}

// EventSource is the minimal event lookup surface the registry needs.
type EventSource interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// ClubLookup resolves clubs by numeric primary key, or by slug when the
// identifier is not purely numeric.
func ClubLookup(src ClubSource) LookupFunc {
	return func(ctx context.Context, identifier string) (Entity, error) {
		var (
			club *models.Club
			err  error
		)
		if IsNumeric(identifier) {
			var id int64
			id, err = strconv.ParseInt(identifier, 10, 64)
			if err != nil {
				return nil, apperrors.ErrResourceNotFound
			}
			club, err = src.GetByID(ctx, id)
		} else {
			club, err = src.GetBySlug(ctx, identifier)
		}
		if err != nil {
			return nil, err
		}
		return ClubEntity{Club: club}, nil
	}
}

// EventLookup resolves events by numeric primary key only; events have no slug.
func EventLookup(src EventSource) LookupFunc {
	return func(ctx context.Context, identifier string) (Entity, error) {
		id, err := strconv.ParseInt(identifier, 10, 64)
		if err != nil {
			return nil, apperrors.ErrResourceNotFound
		}
		event, err := src.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return EventEntity{Event: event}, nil
	}
}
