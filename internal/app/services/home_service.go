package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
)

// Landing page windows.
const (
	homeAnnouncementCount = 5
	homeFeaturedClubCount = 3
)

// HomeService assembles the landing page.
type HomeService interface {
	GetHome(ctx context.Context) (*dto.HomeResponse, error)
}

// homeServiceImpl implements HomeService
type homeServiceImpl struct {
	announcementStore AnnouncementStore
	clubStore         ClubStore
	membershipStore   MembershipStore
	ratings           RatingAverager
	userStore         UserStore
	logger            zerolog.Logger
}

// NewHomeService creates a new HomeService
func NewHomeService(
	announcementStore AnnouncementStore,
	clubStore ClubStore,
	membershipStore MembershipStore,
	ratings RatingAverager,
	userStore UserStore,
	logger zerolog.Logger,
) HomeService {
	return &homeServiceImpl{
		announcementStore: announcementStore,
		clubStore:         clubStore,
		membershipStore:   membershipStore,
		ratings:           ratings,
		userStore:         userStore,
		logger:            logger,
	}
}

// GetHome returns the five most recent global announcements and the top three
// clubs ranked by average rating, then member count.
func (s *homeServiceImpl) GetHome(ctx context.Context) (*dto.HomeResponse, error) {
	announcements, err := s.announcementStore.ListLatestGlobal(ctx, homeAnnouncementCount)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load home announcements")
		return nil, err
	}

	announcementResponses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		a := &announcements[i]
		if a.AuthorID != nil {
			author, err := s.userStore.FindByID(ctx, *a.AuthorID)
			if err == nil {
				a.Author = author
			}
		}
		announcementResponses = append(announcementResponses, dto.FromAnnouncement(a))
	}

	clubs, err := s.clubStore.GetFeatured(ctx, homeFeaturedClubCount)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load featured clubs")
		return nil, err
	}

	clubResponses := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		club := &clubs[i]
		resp := dto.FromClub(club)

		count, err := s.membershipStore.CountByClub(ctx, club.ID)
		if err != nil {
			return nil, err
		}
		resp.MemberCount = count

		avg, err := s.ratings.Average(ctx, models.KindClub, club.ID)
		if err != nil {
			return nil, err
		}
		resp.AverageRating = avg

		clubResponses = append(clubResponses, resp)
	}

	return &dto.HomeResponse{
		Announcements: announcementResponses,
		FeaturedClubs: clubResponses,
	}, nil
}
