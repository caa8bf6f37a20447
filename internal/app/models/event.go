package models

import "time"

// Event represents a club or campus event.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"event_date"`
	Time        *string   `json:"time,omitempty" db:"event_time"` // "HH:MM", nil when unset
	Location    *string   `json:"location,omitempty" db:"location"`
	ClubID      *int64    `json:"clubId,omitempty" db:"club_id"`
	CreatedBy   *int64    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Club    *Club `json:"club,omitempty"`
	Creator *User `json:"creator,omitempty"`
}

// IsPast reports whether the event date is before the local date of now.
// Never stored; computed at read time.
func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Before(DateOf(now))
}

// IsUpcoming reports whether the event date is today or later.
func (e *Event) IsUpcoming(now time.Time) bool {
	return !e.IsPast(now)
}

// DateOf truncates a timestamp to its local calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
