package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/odemir/campusclubs/internal/app/auth"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
	"github.com/odemir/campusclubs/internal/pkg/helpers"
)

// AnnouncementStore is the announcement persistence surface.
type AnnouncementStore interface {
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	ListVisibleTo(ctx context.Context, viewer *models.User, page, pageSize int) ([]models.Announcement, int64, error)
	ListLatestGlobal(ctx context.Context, limit int) ([]models.Announcement, error)
	Create(ctx context.Context, a *models.Announcement) (*models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id int64) error
}

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, viewer *models.User, page, pageSize int) (*dto.AnnouncementListResponse, error)
	GetAnnouncement(ctx context.Context, viewer *models.User, id int64) (*dto.AnnouncementResponse, error)
	CreateAnnouncement(ctx context.Context, principal *models.User, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	UpdateAnnouncement(ctx context.Context, principal *models.User, id int64, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, principal *models.User, id int64) error
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	announcementStore AnnouncementStore
	clubStore         ClubStore
	membershipStore   MembershipStore
	userStore         UserStore
	logger            zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	announcementStore AnnouncementStore,
	clubStore ClubStore,
	membershipStore MembershipStore,
	userStore UserStore,
	logger zerolog.Logger,
) AnnouncementService {
	return &announcementServiceImpl{
		announcementStore: announcementStore,
		clubStore:         clubStore,
		membershipStore:   membershipStore,
		userStore:         userStore,
		logger:            logger,
	}
}

// ListAnnouncements retrieves the announcements the viewer may see, most
// recent first. Anonymous viewers get global announcements only; college
// admins everything; everyone else global plus their joined and managed
// clubs' announcements.
func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context, viewer *models.User, page, pageSize int) (*dto.AnnouncementListResponse, error) {
	announcements, total, err := s.announcementStore.ListVisibleTo(ctx, viewer, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list announcements")
		return nil, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		responses = append(responses, s.buildAnnouncementResponse(ctx, &announcements[i]))
	}

	return &dto.AnnouncementListResponse{
		Announcements:  responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetAnnouncement retrieves one announcement, enforcing the visibility rule.
// A club announcement the viewer may not see reads as not found, not as
// forbidden, so its existence leaks nothing.
func (s *announcementServiceImpl) GetAnnouncement(ctx context.Context, viewer *models.User, id int64) (*dto.AnnouncementResponse, error) {
	announcement, err := s.announcementStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := auth.AnnouncementResource{Announcement: announcement}
	if viewer != nil && announcement.ClubID != nil {
		isMember, err := s.membershipStore.IsMember(ctx, *announcement.ClubID, viewer.ID)
		if err != nil {
			return nil, err
		}
		res.IsMember = isMember

		club, err := s.clubStore.GetByID(ctx, *announcement.ClubID)
		if err == nil {
			res.IsManager = club.IsManagedBy(viewer)
		}
	}
	if err := auth.Authorize(viewer, auth.ActionView, res).Err(); err != nil {
		if errors.Is(err, apperrors.ErrPermissionDenied) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, err
	}

	resp := s.buildAnnouncementResponse(ctx, announcement)
	return &resp, nil
}

// CreateAnnouncement creates an announcement. An announcement is either
// global or tied to exactly one club. College admins may post anywhere; club
// officers only to clubs they manage.
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, principal *models.User, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if err := auth.Authorize(principal, auth.ActionCreate, auth.AnnouncementResource{}).Err(); err != nil {
		return nil, err
	}

	if req.IsGlobal == (req.ClubID != nil) {
		return nil, apperrors.ErrAnnouncementScope
	}

	announcement := &models.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: &principal.ID,
		IsGlobal: req.IsGlobal,
	}

	if req.ClubID != nil {
		club, err := s.clubStore.GetByID(ctx, *req.ClubID)
		if err != nil {
			if errors.Is(err, apperrors.ErrClubNotFound) {
				return nil, apperrors.NewResourceNotFoundError("target club not found")
			}
			return nil, err
		}
		if !principal.IsCollegeAdmin() && !club.IsManagedBy(principal) {
			return nil, apperrors.ErrPermissionDenied
		}
		announcement.ClubID = &club.ID
		announcement.Club = club
	} else if !principal.IsCollegeAdmin() {
		// Global announcements are admin territory.
		return nil, apperrors.ErrPermissionDenied
	}

	created, err := s.announcementStore.Create(ctx, announcement)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("announcementId", created.ID).
		Bool("isGlobal", created.IsGlobal).
		Int64("authorId", principal.ID).
		Msg("Announcement created")

	resp := s.buildAnnouncementResponse(ctx, created)
	return &resp, nil
}

// UpdateAnnouncement modifies an announcement's title and content. Allowed
// for college admins and the authoring officer. Scope is immutable.
func (s *announcementServiceImpl) UpdateAnnouncement(ctx context.Context, principal *models.User, id int64, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	announcement, err := s.announcementStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAnnouncementNotFound) {
			return nil, auth.Authorize(principal, auth.ActionUpdate, auth.AnnouncementResource{}).Err()
		}
		return nil, err
	}

	if err := auth.Authorize(principal, auth.ActionUpdate, auth.AnnouncementResource{Announcement: announcement}).Err(); err != nil {
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}

	if err := s.announcementStore.Update(ctx, announcement); err != nil {
		return nil, err
	}

	resp := s.buildAnnouncementResponse(ctx, announcement)
	return &resp, nil
}

// DeleteAnnouncement removes an announcement. Allowed for college admins and
// the authoring officer.
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, principal *models.User, id int64) error {
	announcement, err := s.announcementStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAnnouncementNotFound) {
			return auth.Authorize(principal, auth.ActionDelete, auth.AnnouncementResource{}).Err()
		}
		return err
	}

	if err := auth.Authorize(principal, auth.ActionDelete, auth.AnnouncementResource{Announcement: announcement}).Err(); err != nil {
		return err
	}

	if err := s.announcementStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Int64("announcementId", id).
		Int64("deletedBy", principal.ID).
		Msg("Announcement deleted")
	return nil
}

func (s *announcementServiceImpl) buildAnnouncementResponse(ctx context.Context, a *models.Announcement) dto.AnnouncementResponse {
	if a.Author == nil && a.AuthorID != nil {
		author, err := s.userStore.FindByID(ctx, *a.AuthorID)
		if err == nil {
			a.Author = author
		}
	}
	if a.Club == nil && a.ClubID != nil {
		club, err := s.clubStore.GetByID(ctx, *a.ClubID)
		if err == nil {
			a.Club = club
		}
	}
	return dto.FromAnnouncement(a)
}
