package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

var (
	student   = &models.User{ID: 1, Role: models.RoleStudent, IsActive: true}
	officer   = &models.User{ID: 2, Role: models.RoleClubOfficer, IsActive: true}
	admin     = &models.User{ID: 3, Role: models.RoleCollegeAdmin, IsActive: true}
	staff     = &models.User{ID: 4, Role: models.RoleStudent, IsStaff: true, IsActive: true}
	superuser = &models.User{ID: 5, Role: models.RoleStudent, IsSuperuser: true, IsActive: true}
)

func managedClub(managerID int64) *models.Club {
	return &models.Club{ID: 10, Title: "Chess Club", Slug: "chess-club", ManagerID: &managerID}
}

func TestAuthorizeClub(t *testing.T) {
	club := managedClub(officer.ID)

	tests := []struct {
		name       string
		principal  *models.User
		action     Action
		resource   ClubResource
		want       bool
		wantReason DenyReason
	}{
		{name: "create anonymous", action: ActionCreate, want: false, wantReason: ReasonNotAuthenticated},
		{name: "create student", principal: student, action: ActionCreate, want: false, wantReason: ReasonAdminRequired},
		{name: "create officer", principal: officer, action: ActionCreate, want: false, wantReason: ReasonAdminRequired},
		{name: "create admin", principal: admin, action: ActionCreate, want: true},
		{name: "create staff flag", principal: staff, action: ActionCreate, want: true},
		{name: "create superuser flag", principal: superuser, action: ActionCreate, want: true},

		{name: "view anonymous", action: ActionView, resource: ClubResource{Club: club}, want: true},
		{name: "view missing", action: ActionView, want: false, wantReason: ReasonTargetNotFound},

		{name: "update anonymous", action: ActionUpdate, resource: ClubResource{Club: club}, want: false, wantReason: ReasonNotAuthenticated},
		{name: "update missing", principal: admin, action: ActionUpdate, want: false, wantReason: ReasonTargetNotFound},
		{name: "update admin", principal: admin, action: ActionUpdate, resource: ClubResource{Club: club}, want: true},
		{name: "update managing officer", principal: officer, action: ActionUpdate, resource: ClubResource{Club: club}, want: true},
		{name: "update other officer", principal: &models.User{ID: 99, Role: models.RoleClubOfficer}, action: ActionUpdate, resource: ClubResource{Club: club}, want: false, wantReason: ReasonNotClubManager},
		{name: "update student member", principal: student, action: ActionUpdate, resource: ClubResource{Club: club}, want: false, wantReason: ReasonNotClubManager},

		{name: "delete managing officer", principal: officer, action: ActionDelete, resource: ClubResource{Club: club}, want: false, wantReason: ReasonAdminRequired},
		{name: "delete admin", principal: admin, action: ActionDelete, resource: ClubResource{Club: club}, want: true},

		{name: "join anonymous", action: ActionJoin, resource: ClubResource{Club: club}, want: false, wantReason: ReasonNotAuthenticated},
		{name: "join student", principal: student, action: ActionJoin, resource: ClubResource{Club: club}, want: true},
		{name: "leave student", principal: student, action: ActionLeave, resource: ClubResource{Club: club}, want: true},
		{name: "join missing club", principal: student, action: ActionJoin, want: false, wantReason: ReasonTargetNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.principal, tt.action, tt.resource)
			assert.Equal(t, tt.want, got.Allowed)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestAuthorizeAnnouncement(t *testing.T) {
	clubID := int64(10)
	global := &models.Announcement{ID: 1, IsGlobal: true}
	scoped := &models.Announcement{ID: 2, ClubID: &clubID, AuthorID: &officer.ID}

	tests := []struct {
		name       string
		principal  *models.User
		action     Action
		resource   AnnouncementResource
		want       bool
		wantReason DenyReason
	}{
		{name: "create student", principal: student, action: ActionCreate, want: false, wantReason: ReasonOfficerRequired},
		{name: "create officer", principal: officer, action: ActionCreate, want: true},
		{name: "create admin", principal: admin, action: ActionCreate, want: true},

		{name: "view global anonymous", action: ActionView, resource: AnnouncementResource{Announcement: global}, want: true},
		{name: "view scoped anonymous", action: ActionView, resource: AnnouncementResource{Announcement: scoped}, want: false, wantReason: ReasonNotAuthenticated},
		{name: "view scoped admin", principal: admin, action: ActionView, resource: AnnouncementResource{Announcement: scoped}, want: true},
		{name: "view scoped member", principal: student, action: ActionView, resource: AnnouncementResource{Announcement: scoped, IsMember: true}, want: true},
		{name: "view scoped manager", principal: officer, action: ActionView, resource: AnnouncementResource{Announcement: scoped, IsManager: true}, want: true},
		// Hidden announcements read as missing, never as forbidden.
		{name: "view scoped outsider", principal: student, action: ActionView, resource: AnnouncementResource{Announcement: scoped}, want: false, wantReason: ReasonTargetNotFound},

		{name: "update author", principal: officer, action: ActionUpdate, resource: AnnouncementResource{Announcement: scoped}, want: true},
		{name: "update other officer", principal: &models.User{ID: 99, Role: models.RoleClubOfficer}, action: ActionUpdate, resource: AnnouncementResource{Announcement: scoped}, want: false, wantReason: ReasonNotAuthor},
		{name: "update admin", principal: admin, action: ActionUpdate, resource: AnnouncementResource{Announcement: scoped}, want: true},
		{name: "delete author", principal: officer, action: ActionDelete, resource: AnnouncementResource{Announcement: scoped}, want: true},
		{name: "delete student", principal: student, action: ActionDelete, resource: AnnouncementResource{Announcement: scoped}, want: false, wantReason: ReasonNotAuthor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.principal, tt.action, tt.resource)
			assert.Equal(t, tt.want, got.Allowed)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestAuthorizeEvent(t *testing.T) {
	club := managedClub(officer.ID)
	event := &models.Event{ID: 20, Title: "Open Tournament", ClubID: &club.ID, CreatedBy: &officer.ID}
	orphan := &models.Event{ID: 21, Title: "Orientation Day"}

	tests := []struct {
		name       string
		principal  *models.User
		action     Action
		resource   EventResource
		want       bool
		wantReason DenyReason
	}{
		{name: "create admin without club", principal: admin, action: ActionCreate, want: true},
		// Club-less events are admin territory.
		{name: "create officer without club", principal: officer, action: ActionCreate, want: false, wantReason: ReasonNotClubManager},
		{name: "create managing officer", principal: officer, action: ActionCreate, resource: EventResource{Club: club}, want: true},
		{name: "create other officer", principal: &models.User{ID: 99, Role: models.RoleClubOfficer}, action: ActionCreate, resource: EventResource{Club: club}, want: false, wantReason: ReasonNotClubManager},
		{name: "create student", principal: student, action: ActionCreate, resource: EventResource{Club: club}, want: false, wantReason: ReasonNotClubManager},

		{name: "view anonymous", action: ActionView, resource: EventResource{Event: event}, want: true},
		{name: "view missing", action: ActionView, want: false, wantReason: ReasonTargetNotFound},

		{name: "update creator", principal: officer, action: ActionUpdate, resource: EventResource{Event: event}, want: true},
		{name: "update admin", principal: admin, action: ActionUpdate, resource: EventResource{Event: event}, want: true},
		{name: "update stranger", principal: student, action: ActionUpdate, resource: EventResource{Event: event}, want: false, wantReason: ReasonNotCreator},
		{name: "update orphan creatorless", principal: student, action: ActionUpdate, resource: EventResource{Event: orphan}, want: false, wantReason: ReasonNotCreator},

		{name: "delete creator", principal: officer, action: ActionDelete, resource: EventResource{Event: event}, want: false, wantReason: ReasonAdminRequired},
		{name: "delete admin", principal: admin, action: ActionDelete, resource: EventResource{Event: event}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.principal, tt.action, tt.resource)
			assert.Equal(t, tt.want, got.Allowed)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow().Err())
	assert.ErrorIs(t, Deny(ReasonTargetNotFound).Err(), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, Deny(ReasonNotAuthenticated).Err(), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, Deny(ReasonAdminRequired).Err(), apperrors.ErrPermissionDenied)
}
