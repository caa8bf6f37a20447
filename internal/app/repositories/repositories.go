// Package repositories contains the PostgreSQL data access layer. Each
// repository owns the SQL for one aggregate and translates driver errors
// into application errors.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	User         *UserRepository
	Token        *TokenRepository
	Club         *ClubRepository
	Membership   *MembershipRepository
	Event        *EventRepository
	Announcement *AnnouncementRepository
	Rating       *RatingRepository
	Feedback     *FeedbackRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Token:        NewTokenRepository(db),
		Club:         NewClubRepository(db),
		Membership:   NewMembershipRepository(db),
		Event:        NewEventRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Rating:       NewRatingRepository(db),
		Feedback:     NewFeedbackRepository(db),
	}
}
