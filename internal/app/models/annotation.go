package models

import "time"

// EntityKind identifies which concrete schema an annotation target belongs to.
// Closed enum; unknown kinds never reach storage.
type EntityKind string

const (
	KindClub  EntityKind = "club"
	KindEvent EntityKind = "event"
)

// ParseEntityKind maps a path label to an EntityKind.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch EntityKind(s) {
	case KindClub:
		return KindClub, true
	case KindEvent:
		return KindEvent, true
	}
	return "", false
}

// Rating scores an entity 1..5. At most one row per (user, kind, entity);
// a resubmission updates the existing row.
type Rating struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"userId" db:"user_id"`
	Kind      EntityKind `json:"entityKind" db:"entity_kind"`
	EntityID  int64      `json:"entityId" db:"entity_id"`
	Score     int        `json:"score" db:"score"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// MinRatingScore and MaxRatingScore bound valid rating submissions.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Feedback is a free-text comment on an entity. No uniqueness; a user may
// comment on the same entity any number of times.
type Feedback struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"userId" db:"user_id"`
	Kind      EntityKind `json:"entityKind" db:"entity_kind"`
	EntityID  int64      `json:"entityId" db:"entity_id"`
	Comment   string     `json:"comment" db:"comment"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
