package models

import "time"

// Announcement represents a global or club-scoped announcement.
// Invariant: IsGlobal and ClubID are mutually exclusive. A global
// announcement carries no club and a club announcement must carry one.
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  *int64    `json:"authorId,omitempty" db:"author_id"` // nil when the author was deleted
	IsGlobal  bool      `json:"isGlobal" db:"is_global"`
	ClubID    *int64    `json:"clubId,omitempty" db:"club_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
	Club   *Club `json:"club,omitempty"`
}

// IsAuthoredBy reports whether the given user wrote the announcement.
func (a *Announcement) IsAuthoredBy(u *User) bool {
	return u != nil && a.AuthorID != nil && *a.AuthorID == u.ID
}
