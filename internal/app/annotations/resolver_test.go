package annotations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

type stubClubSource struct {
	clubs map[int64]*models.Club
}

func (s *stubClubSource) GetByID(_ context.Context, id int64) (*models.Club, error) {
	if club, ok := s.clubs[id]; ok {
		return club, nil
	}
	return nil, apperrors.ErrClubNotFound
}

func (s *stubClubSource) GetBySlug(_ context.Context, slug string) (*models.Club, error) {
	for _, club := range s.clubs {
		if club.Slug == slug {
			return club, nil
		}
	}
	return nil, apperrors.ErrClubNotFound
}

type stubEventSource struct {
	events map[int64]*models.Event
}

func (s *stubEventSource) GetByID(_ context.Context, id int64) (*models.Event, error) {
	if event, ok := s.events[id]; ok {
		return event, nil
	}
	return nil, apperrors.ErrEventNotFound
}

func newTestRegistry() *Registry {
	clubs := &stubClubSource{clubs: map[int64]*models.Club{
		7: {ID: 7, Title: "Robotics Society", Slug: "robotics-society"},
	}}
	events := &stubEventSource{events: map[int64]*models.Event{
		42: {ID: 42, Title: "Demo Night"},
	}}

	r := NewRegistry()
	r.Register(models.KindClub, ClubLookup(clubs))
	r.Register(models.KindEvent, EventLookup(events))
	return r
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"42", true},
		{"0", true},
		{"", false},
		{"-1", false},
		{"1.5", false},
		{"robotics-society", false},
		{"42abc", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNumeric(tt.in), "IsNumeric(%q)", tt.in)
	}
}

func TestRegistryResolveClub(t *testing.T) {
	r := newTestRegistry()
	ctx := context.Background()

	byID, err := r.Resolve(ctx, "club", "7")
	require.NoError(t, err)
	assert.Equal(t, models.KindClub, byID.EntityKind())
	assert.Equal(t, int64(7), byID.EntityID())
	assert.Equal(t, "Robotics Society", byID.DisplayName())

	bySlug, err := r.Resolve(ctx, "club", "robotics-society")
	require.NoError(t, err)
	assert.Equal(t, int64(7), bySlug.EntityID())

	_, err = r.Resolve(ctx, "club", "no-such-club")
	assert.ErrorIs(t, err, apperrors.ErrClubNotFound)
}

func TestRegistryResolveEvent(t *testing.T) {
	r := newTestRegistry()
	ctx := context.Background()

	entity, err := r.Resolve(ctx, "event", "42")
	require.NoError(t, err)
	assert.Equal(t, models.KindEvent, entity.EntityKind())
	assert.Equal(t, "Demo Night", entity.DisplayName())

	// Events have no slug; a non-numeric identifier is simply not found.
	_, err = r.Resolve(ctx, "event", "demo-night")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRegistryResolveUnknownKind(t *testing.T) {
	r := newTestRegistry()
	ctx := context.Background()

	// An unknown kind is indistinguishable from a missing entity.
	_, err := r.Resolve(ctx, "department", "7")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = r.Resolve(ctx, "", "7")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
