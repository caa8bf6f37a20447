package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/odemir/campusclubs/internal/app/annotations"
	"github.com/odemir/campusclubs/internal/app/auth"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
	"github.com/odemir/campusclubs/internal/pkg/helpers"
)

// ClubStore is the club persistence surface the services need.
type ClubStore interface {
	GetAll(ctx context.Context, search *string, page, pageSize int) ([]models.Club, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	GetBySlug(ctx context.Context, slug string) (*models.Club, error)
	Create(ctx context.Context, club *models.Club) (*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id int64) error
	GetFeatured(ctx context.Context, limit int) ([]models.Club, error)
}

// MembershipStore is the membership persistence surface.
type MembershipStore interface {
	IsMember(ctx context.Context, clubID, userID int64) (bool, error)
	Add(ctx context.Context, clubID, userID int64) (int64, error)
	Remove(ctx context.Context, clubID, userID int64) error
	ListMembers(ctx context.Context, clubID int64) ([]*models.ClubMembership, error)
	CountByClub(ctx context.Context, clubID int64) (int, error)
}

// RatingAverager exposes the rating aggregate needed by club views.
type RatingAverager interface {
	Average(ctx context.Context, kind models.EntityKind, entityID int64) (*float64, error)
}

// ClubService defines the interface for club operations
type ClubService interface {
	GetAllClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error)
	GetClub(ctx context.Context, identifier string, viewer *models.User) (*dto.ClubDetailResponse, error)
	CreateClub(ctx context.Context, principal *models.User, req *dto.CreateClubRequest) (*dto.ClubResponse, error)
	UpdateClub(ctx context.Context, principal *models.User, id int64, req *dto.UpdateClubRequest) (*dto.ClubResponse, error)
	DeleteClub(ctx context.Context, principal *models.User, id int64) error
	JoinClub(ctx context.Context, principal *models.User, clubID int64) (alreadyMember bool, err error)
	LeaveClub(ctx context.Context, principal *models.User, clubID int64) (notMember bool, err error)
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	clubStore       ClubStore
	membershipStore MembershipStore
	ratings         RatingAverager
	userStore       UserStore
	logger          zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(clubStore ClubStore, membershipStore MembershipStore, ratings RatingAverager, userStore UserStore, logger zerolog.Logger) ClubService {
	return &clubServiceImpl{
		clubStore:       clubStore,
		membershipStore: membershipStore,
		ratings:         ratings,
		userStore:       userStore,
		logger:          logger,
	}
}

// GetAllClubs retrieves clubs with search and pagination. Every row carries
// its member count and average rating.
func (s *clubServiceImpl) GetAllClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error) {
	clubs, total, err := s.clubStore.GetAll(ctx, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list clubs")
		return nil, err
	}

	responses := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		resp, err := s.buildClubResponse(ctx, &clubs[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return &dto.ClubListResponse{
		Clubs:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetClub retrieves one club by slug or numeric ID, with its member list and
// the viewer's membership state. viewer may be nil.
func (s *clubServiceImpl) GetClub(ctx context.Context, identifier string, viewer *models.User) (*dto.ClubDetailResponse, error) {
	club, err := s.resolveClub(ctx, identifier)
	if err != nil {
		return nil, err
	}

	resp, err := s.buildClubResponse(ctx, club)
	if err != nil {
		return nil, err
	}

	memberships, err := s.membershipStore.ListMembers(ctx, club.ID)
	if err != nil {
		return nil, err
	}
	members := make([]dto.MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		if m.User == nil {
			continue
		}
		members = append(members, dto.MemberResponse{
			User:     dto.FromUser(m.User),
			JoinedAt: m.JoinedAt,
		})
	}

	detail := &dto.ClubDetailResponse{
		ClubResponse: resp,
		Members:      members,
	}
	if viewer != nil {
		isMember, err := s.membershipStore.IsMember(ctx, club.ID, viewer.ID)
		if err != nil {
			return nil, err
		}
		detail.IsMember = isMember
	}
	return detail, nil
}

// CreateClub creates a club. College admin only. The slug is derived from the
// title when not supplied and is immutable afterwards.
func (s *clubServiceImpl) CreateClub(ctx context.Context, principal *models.User, req *dto.CreateClubRequest) (*dto.ClubResponse, error) {
	if err := auth.Authorize(principal, auth.ActionCreate, auth.ClubResource{}).Err(); err != nil {
		return nil, err
	}

	clubSlug := req.Slug
	if clubSlug == "" {
		clubSlug = slug.Make(req.Title)
	}

	club := &models.Club{
		Title:       req.Title,
		Slug:        clubSlug,
		Description: req.Description,
	}

	if req.ManagerID != nil {
		manager, err := s.requireOfficer(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		club.ManagerID = &manager.ID
		club.Manager = manager
	}

	created, err := s.clubStore.Create(ctx, club)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("clubId", created.ID).
		Str("slug", created.Slug).
		Int64("createdBy", principal.ID).
		Msg("Club created")

	resp, err := s.buildClubResponse(ctx, created)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateClub modifies a club's title, description or manager. Allowed for
// college admins and the managing officer. The slug never changes.
func (s *clubServiceImpl) UpdateClub(ctx context.Context, principal *models.User, id int64, req *dto.UpdateClubRequest) (*dto.ClubResponse, error) {
	club, err := s.clubStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNotFound) {
			return nil, auth.Authorize(principal, auth.ActionUpdate, auth.ClubResource{}).Err()
		}
		return nil, err
	}

	if err := auth.Authorize(principal, auth.ActionUpdate, auth.ClubResource{Club: club}).Err(); err != nil {
		return nil, err
	}

	if req.Title != nil {
		club.Title = *req.Title
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	switch {
	case req.ClearManager:
		club.ManagerID = nil
		club.Manager = nil
	case req.ManagerID != nil:
		manager, err := s.requireOfficer(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		club.ManagerID = &manager.ID
		club.Manager = manager
	}

	if err := s.clubStore.Update(ctx, club); err != nil {
		return nil, err
	}

	resp, err := s.buildClubResponse(ctx, club)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteClub removes a club. College admin only.
func (s *clubServiceImpl) DeleteClub(ctx context.Context, principal *models.User, id int64) error {
	club, err := s.clubStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNotFound) {
			return auth.Authorize(principal, auth.ActionDelete, auth.ClubResource{}).Err()
		}
		return err
	}

	if err := auth.Authorize(principal, auth.ActionDelete, auth.ClubResource{Club: club}).Err(); err != nil {
		return err
	}

	if err := s.clubStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Int64("clubId", id).
		Int64("deletedBy", principal.ID).
		Msg("Club deleted")
	return nil
}

// JoinClub adds the principal to a club. Joining a club the user already
// belongs to is not an error; alreadyMember reports that outcome so the
// caller can say so.
func (s *clubServiceImpl) JoinClub(ctx context.Context, principal *models.User, clubID int64) (bool, error) {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNotFound) {
			return false, auth.Authorize(principal, auth.ActionJoin, auth.ClubResource{}).Err()
		}
		return false, err
	}

	if err := auth.Authorize(principal, auth.ActionJoin, auth.ClubResource{Club: club}).Err(); err != nil {
		return false, err
	}

	if _, err := s.membershipStore.Add(ctx, club.ID, principal.ID); err != nil {
		// A concurrent duplicate join collapses to the same benign outcome.
		if errors.Is(err, apperrors.ErrAlreadyMember) {
			return true, nil
		}
		return false, err
	}

	s.logger.Info().
		Int64("clubId", club.ID).
		Int64("userId", principal.ID).
		Msg("User joined club")
	return false, nil
}

// LeaveClub removes the principal from a club. Leaving a club the user never
// joined is not an error; notMember reports that outcome.
func (s *clubServiceImpl) LeaveClub(ctx context.Context, principal *models.User, clubID int64) (bool, error) {
	club, err := s.clubStore.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNotFound) {
			return false, auth.Authorize(principal, auth.ActionLeave, auth.ClubResource{}).Err()
		}
		return false, err
	}

	if err := auth.Authorize(principal, auth.ActionLeave, auth.ClubResource{Club: club}).Err(); err != nil {
		return false, err
	}

	if err := s.membershipStore.Remove(ctx, club.ID, principal.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotMember) {
			return true, nil
		}
		return false, err
	}

	s.logger.Info().
		Int64("clubId", club.ID).
		Int64("userId", principal.ID).
		Msg("User left club")
	return false, nil
}

// resolveClub maps a path identifier to a club: numeric strings are primary
// keys, anything else is a slug.
func (s *clubServiceImpl) resolveClub(ctx context.Context, identifier string) (*models.Club, error) {
	if annotations.IsNumeric(identifier) {
		id, err := strconv.ParseInt(identifier, 10, 64)
		if err != nil {
			return nil, apperrors.ErrClubNotFound
		}
		return s.clubStore.GetByID(ctx, id)
	}
	return s.clubStore.GetBySlug(ctx, identifier)
}

// requireOfficer loads a user and checks they hold the club officer role.
func (s *clubServiceImpl) requireOfficer(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsClubOfficer() {
		return nil, apperrors.ErrManagerNotOfficer
	}
	return user, nil
}

func (s *clubServiceImpl) buildClubResponse(ctx context.Context, club *models.Club) (dto.ClubResponse, error) {
	resp := dto.FromClub(club)

	if club.Manager == nil && club.ManagerID != nil {
		manager, err := s.userStore.FindByID(ctx, *club.ManagerID)
		if err == nil {
			m := dto.FromUser(manager)
			resp.Manager = &m
		}
	}

	count, err := s.membershipStore.CountByClub(ctx, club.ID)
	if err != nil {
		return dto.ClubResponse{}, err
	}
	resp.MemberCount = count

	avg, err := s.ratings.Average(ctx, models.KindClub, club.ID)
	if err != nil {
		return dto.ClubResponse{}, err
	}
	resp.AverageRating = avg

	return resp, nil
}
