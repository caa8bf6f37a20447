package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

type announcementServiceFixture struct {
	svc           AnnouncementService
	announcements *fakeAnnouncementStore
	clubs         *fakeClubStore
	memberships   *fakeMembershipStore
	users         *fakeUserStore

	admin   *models.User
	officer *models.User
	student *models.User
	club    *models.Club
}

func newAnnouncementServiceFixture() *announcementServiceFixture {
	users := newFakeUserStore()
	clubs := newFakeClubStore()
	memberships := newFakeMembershipStore(users)
	announcements := newFakeAnnouncementStore(memberships, clubs)

	f := &announcementServiceFixture{
		svc:           NewAnnouncementService(announcements, clubs, memberships, users, zerolog.Nop()),
		announcements: announcements,
		clubs:         clubs,
		memberships:   memberships,
		users:         users,
	}
	f.admin = users.add(&models.User{Username: "admin", Email: "admin@college.edu", Role: models.RoleCollegeAdmin, IsActive: true})
	f.officer = users.add(&models.User{Username: "officer", Email: "officer@college.edu", Role: models.RoleClubOfficer, IsActive: true})
	f.student = users.add(&models.User{Username: "student", Email: "student@college.edu", Role: models.RoleStudent, IsActive: true})
	f.club = clubs.add(&models.Club{Title: "Chess Club", Slug: "chess-club", ManagerID: &f.officer.ID})
	return f
}

func (f *announcementServiceFixture) seedGlobal(title string) *models.Announcement {
	a, _ := f.announcements.Create(context.Background(), &models.Announcement{
		Title: title, Content: "c", IsGlobal: true, AuthorID: &f.admin.ID,
	})
	return a
}

func (f *announcementServiceFixture) seedScoped(title string, authorID int64) *models.Announcement {
	a, _ := f.announcements.Create(context.Background(), &models.Announcement{
		Title: title, Content: "c", ClubID: &f.club.ID, AuthorID: &authorID,
	})
	return a
}

func TestCreateAnnouncementScope(t *testing.T) {
	f := newAnnouncementServiceFixture()
	ctx := context.Background()

	// Global and club-scoped at once, or neither, is malformed.
	_, err := f.svc.CreateAnnouncement(ctx, f.admin, &dto.CreateAnnouncementRequest{
		Title: "t", Content: "c", IsGlobal: true, ClubID: &f.club.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrAnnouncementScope)

	_, err = f.svc.CreateAnnouncement(ctx, f.admin, &dto.CreateAnnouncementRequest{
		Title: "t", Content: "c",
	})
	assert.ErrorIs(t, err, apperrors.ErrAnnouncementScope)
}

func TestCreateGlobalAnnouncementAdminOnly(t *testing.T) {
	f := newAnnouncementServiceFixture()
	ctx := context.Background()
	req := &dto.CreateAnnouncementRequest{Title: "Campus closed", Content: "c", IsGlobal: true}

	_, err := f.svc.CreateAnnouncement(ctx, f.officer, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := f.svc.CreateAnnouncement(ctx, f.admin, req)
	require.NoError(t, err)
	assert.True(t, resp.IsGlobal)
	require.NotNil(t, resp.Author)
	assert.Equal(t, f.admin.ID, resp.Author.ID)
}

func TestCreateClubAnnouncementManagerOnly(t *testing.T) {
	f := newAnnouncementServiceFixture()
	ctx := context.Background()
	req := &dto.CreateAnnouncementRequest{Title: "Meeting moved", Content: "c", ClubID: &f.club.ID}

	resp, err := f.svc.CreateAnnouncement(ctx, f.officer, req)
	require.NoError(t, err)
	assert.False(t, resp.IsGlobal)
	require.NotNil(t, resp.Club)
	assert.Equal(t, f.club.ID, resp.Club.ID)

	otherOfficer := f.users.add(&models.User{Username: "other", Email: "other@college.edu", Role: models.RoleClubOfficer, IsActive: true})
	_, err = f.svc.CreateAnnouncement(ctx, otherOfficer, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.CreateAnnouncement(ctx, f.student, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	missing := int64(404)
	_, err = f.svc.CreateAnnouncement(ctx, f.admin, &dto.CreateAnnouncementRequest{Title: "t", Content: "c", ClubID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetAnnouncementVisibility(t *testing.T) {
	f := newAnnouncementServiceFixture()
	ctx := context.Background()
	global := f.seedGlobal("Campus closed")
	scoped := f.seedScoped("Meeting moved", f.officer.ID)

	// Global announcements are public.
	resp, err := f.svc.GetAnnouncement(ctx, nil, global.ID)
	require.NoError(t, err)
	assert.Equal(t, global.ID, resp.ID)

	// A hidden club announcement reads as missing, never as forbidden.
	_, err = f.svc.GetAnnouncement(ctx, nil, scoped.ID)
	assert.ErrorIs(t, err, apperrors.ErrAnnouncementNotFound)
	_, err = f.svc.GetAnnouncement(ctx, f.student, scoped.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = f.memberships.Add(ctx, f.club.ID, f.student.ID)
	require.NoError(t, err)
	resp, err = f.svc.GetAnnouncement(ctx, f.student, scoped.ID)
	require.NoError(t, err)
	assert.Equal(t, scoped.ID, resp.ID)

	_, err = f.svc.GetAnnouncement(ctx, f.officer, scoped.ID)
	require.NoError(t, err)
	_, err = f.svc.GetAnnouncement(ctx, f.admin, scoped.ID)
	require.NoError(t, err)
}

func TestListAnnouncementsVisibility(t *testing.T) {
	f := newAnnouncementServiceFixture()
	ctx := context.Background()
	f.seedGlobal("Campus closed")
	f.seedScoped("Meeting moved", f.officer.ID)

	anon, err := f.svc.ListAnnouncements(ctx, nil, 1, 20)
	require.NoError(t, err)
	assert.Len(t, anon.Announcements, 1)

	asStudent, err := f.svc.ListAnnouncements(ctx, f.student, 1, 20)
	require.NoError(t, err)
	assert.Len(t, asStudent.Announcements, 1)

	_, err = f.memberships.Add(ctx, f.club.ID, f.student.ID)
	require.NoError(t, err)
	asMember, err := f.svc.ListAnnouncements(ctx, f.student, 1, 20)
	require.NoError(t, err)
	assert.Len(t, asMember.Announcements, 2)

	asAdmin, err := f.svc.ListAnnouncements(ctx, f.admin, 1, 20)
	require.NoError(t, err)
	assert.Len(t, asAdmin.Announcements, 2)
}

func TestUpdateAnnouncementAuthorship(t *testing.T) {
	f := newAnnouncementServiceFixture()
	ctx := context.Background()
	scoped := f.seedScoped("Meeting moved", f.officer.ID)
	newTitle := "Meeting moved again"

	resp, err := f.svc.UpdateAnnouncement(ctx, f.officer, scoped.ID, &dto.UpdateAnnouncementRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, resp.Title)
	// Scope never changes on update.
	assert.False(t, resp.IsGlobal)

	otherOfficer := f.users.add(&models.User{Username: "other", Email: "other@college.edu", Role: models.RoleClubOfficer, IsActive: true})
	_, err = f.svc.UpdateAnnouncement(ctx, otherOfficer, scoped.ID, &dto.UpdateAnnouncementRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.UpdateAnnouncement(ctx, f.admin, scoped.ID, &dto.UpdateAnnouncementRequest{Title: &newTitle})
	require.NoError(t, err)

	_, err = f.svc.UpdateAnnouncement(ctx, f.admin, 404, &dto.UpdateAnnouncementRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteAnnouncement(t *testing.T) {
	f := newAnnouncementServiceFixture()
	ctx := context.Background()
	scoped := f.seedScoped("Meeting moved", f.officer.ID)

	err := f.svc.DeleteAnnouncement(ctx, f.student, scoped.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = f.svc.DeleteAnnouncement(ctx, f.officer, scoped.ID)
	require.NoError(t, err)

	err = f.svc.DeleteAnnouncement(ctx, f.officer, scoped.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
