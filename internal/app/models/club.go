package models

import "time"

// Club represents a student club.
type Club struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"` // unique, immutable once set
	Description string    `json:"description" db:"description"`
	ManagerID   *int64    `json:"managerId,omitempty" db:"manager_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Manager *User   `json:"manager,omitempty"`
	Members []*User `json:"members,omitempty"`
}

// IsManagedBy reports whether the given user is the club's designated manager.
func (c *Club) IsManagedBy(u *User) bool {
	return u != nil && c.ManagerID != nil && *c.ManagerID == u.ID
}

// ClubMembership represents a user's membership in a club.
// The memberships table is the single source of truth for "is member".
type ClubMembership struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"userId" db:"user_id"`
	ClubID   int64     `json:"clubId" db:"club_id"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
