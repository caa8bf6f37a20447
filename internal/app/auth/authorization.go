package auth

import (
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

// Action is an operation a principal may request on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionJoin   Action = "join"
	ActionLeave  Action = "leave"
)

// DenyReason is a structured reason code carried by a Deny decision so the
// presentation layer can render an appropriate message. The resolver itself
// never renders text.
type DenyReason string

const (
	ReasonNone             DenyReason = ""
	ReasonNotAuthenticated DenyReason = "not_authenticated"
	ReasonTargetNotFound   DenyReason = "target_not_found"
	ReasonAdminRequired    DenyReason = "college_admin_required"
	ReasonOfficerRequired  DenyReason = "club_officer_required"
	ReasonNotClubManager   DenyReason = "not_club_manager"
	ReasonNotAuthor        DenyReason = "not_author"
	ReasonNotCreator       DenyReason = "not_creator"
	ReasonUnsupported      DenyReason = "unsupported_action"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow is the permitted decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denied decision carrying a reason code.
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err maps a denied decision onto the application error taxonomy. Allowed
// decisions map to nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonTargetNotFound:
		return apperrors.ErrResourceNotFound
	default:
		return apperrors.ErrPermissionDenied
	}
}

// Resource is the target of an authorization check. Concrete resource types
// carry the loaded instance so ownership and management relations can be
// inspected; a nil instance means the lookup failed and authorization is
// denied with ReasonTargetNotFound before any role check runs.
type Resource interface {
	resource()
}

// ClubResource targets a club instance.
type ClubResource struct {
	Club *models.Club
}

func (ClubResource) resource() {}

// AnnouncementResource targets an announcement instance. IsMember and
// IsManager describe the principal's relation to the announcement's club and
// are supplied by the caller, which knows how to query membership.
type AnnouncementResource struct {
	Announcement *models.Announcement
	IsMember     bool
	IsManager    bool
}

func (AnnouncementResource) resource() {}

// EventResource targets an event instance. Club is the event's hosting club
// when one exists, loaded by the caller.
type EventResource struct {
	Event *models.Event
	Club  *models.Club
}

func (EventResource) resource() {}

// Authorize decides whether principal may perform action on resource. It is a
// pure function: no lookups, no side effects. principal is nil for
// unauthenticated callers.
func Authorize(principal *models.User, action Action, resource Resource) Decision {
	switch res := resource.(type) {
	case ClubResource:
		return authorizeClub(principal, action, res)
	case AnnouncementResource:
		return authorizeAnnouncement(principal, action, res)
	case EventResource:
		return authorizeEvent(principal, action, res)
	}
	return Deny(ReasonUnsupported)
}

func authorizeClub(principal *models.User, action Action, res ClubResource) Decision {
	switch action {
	case ActionCreate:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if principal.IsCollegeAdmin() {
			return Allow()
		}
		return Deny(ReasonAdminRequired)

	case ActionView:
		// Club listings and detail pages are public.
		if res.Club == nil {
			return Deny(ReasonTargetNotFound)
		}
		return Allow()

	case ActionUpdate:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if res.Club == nil {
			return Deny(ReasonTargetNotFound)
		}
		if principal.IsCollegeAdmin() {
			return Allow()
		}
		if principal.IsClubOfficer() && res.Club.IsManagedBy(principal) {
			return Allow()
		}
		return Deny(ReasonNotClubManager)

	case ActionDelete:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if res.Club == nil {
			return Deny(ReasonTargetNotFound)
		}
		if principal.IsCollegeAdmin() {
			return Allow()
		}
		return Deny(ReasonAdminRequired)

	case ActionJoin, ActionLeave:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if res.Club == nil {
			return Deny(ReasonTargetNotFound)
		}
		return Allow()
	}
	return Deny(ReasonUnsupported)
}

func authorizeAnnouncement(principal *models.User, action Action, res AnnouncementResource) Decision {
	switch action {
	case ActionCreate:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if principal.IsCollegeAdmin() || principal.IsClubOfficer() {
			return Allow()
		}
		return Deny(ReasonOfficerRequired)

	case ActionView:
		if res.Announcement == nil {
			return Deny(ReasonTargetNotFound)
		}
		if res.Announcement.IsGlobal {
			return Allow()
		}
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if principal.IsCollegeAdmin() || res.IsMember || res.IsManager {
			return Allow()
		}
		return Deny(ReasonTargetNotFound)

	case ActionUpdate, ActionDelete:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if res.Announcement == nil {
			return Deny(ReasonTargetNotFound)
		}
		if principal.IsCollegeAdmin() {
			return Allow()
		}
		if principal.IsClubOfficer() && res.Announcement.IsAuthoredBy(principal) {
			return Allow()
		}
		return Deny(ReasonNotAuthor)
	}
	return Deny(ReasonUnsupported)
}

func authorizeEvent(principal *models.User, action Action, res EventResource) Decision {
	switch action {
	case ActionCreate:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if principal.IsCollegeAdmin() {
			return Allow()
		}
		// Officers may create events only for clubs they manage. Club-less
		// events stay admin territory.
		if res.Club != nil && principal.IsClubOfficer() && res.Club.IsManagedBy(principal) {
			return Allow()
		}
		return Deny(ReasonNotClubManager)

	case ActionView:
		if res.Event == nil {
			return Deny(ReasonTargetNotFound)
		}
		return Allow()

	case ActionUpdate:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if res.Event == nil {
			return Deny(ReasonTargetNotFound)
		}
		if principal.IsCollegeAdmin() {
			return Allow()
		}
		if res.Event.CreatedBy != nil && *res.Event.CreatedBy == principal.ID {
			return Allow()
		}
		return Deny(ReasonNotCreator)

	case ActionDelete:
		if principal == nil {
			return Deny(ReasonNotAuthenticated)
		}
		if res.Event == nil {
			return Deny(ReasonTargetNotFound)
		}
		if principal.IsCollegeAdmin() {
			return Allow()
		}
		return Deny(ReasonAdminRequired)
	}
	return Deny(ReasonUnsupported)
}
