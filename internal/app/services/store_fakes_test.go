package services

// In-memory fakes for the store interfaces. Each fake honors the same error
// contract as its pgx-backed counterpart so services are exercised against
// the behavior they see in production.

import (
	"context"
	"strings"
	"time"

	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) add(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		if u.Email == user.Email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	return f.add(user), nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (f *fakeTokenStore) Store(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	// One live refresh token per user.
	for t, rt := range f.tokens {
		if rt.UserID == userID {
			delete(f.tokens, t)
		}
	}
	f.tokens[token] = &models.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	f.nextID++
	return nil
}

func (f *fakeTokenStore) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}
	return rt, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	if _, ok := f.tokens[token]; !ok {
		return apperrors.ErrTokenNotFound
	}
	delete(f.tokens, token)
	return nil
}

type fakeClubStore struct {
	clubs  map[int64]*models.Club
	nextID int64
}

func newFakeClubStore() *fakeClubStore {
	return &fakeClubStore{clubs: make(map[int64]*models.Club), nextID: 1}
}

func (f *fakeClubStore) add(c *models.Club) *models.Club {
	if c.ID == 0 {
		c.ID = f.nextID
	}
	if c.ID >= f.nextID {
		f.nextID = c.ID + 1
	}
	f.clubs[c.ID] = c
	return c
}

func (f *fakeClubStore) GetAll(_ context.Context, search *string, page, pageSize int) ([]models.Club, int64, error) {
	out := make([]models.Club, 0, len(f.clubs))
	for _, c := range f.clubs {
		if search != nil && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(*search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClubStore) GetByID(_ context.Context, id int64) (*models.Club, error) {
	if c, ok := f.clubs[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrClubNotFound
}

func (f *fakeClubStore) GetBySlug(_ context.Context, slug string) (*models.Club, error) {
	for _, c := range f.clubs {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperrors.ErrClubNotFound
}

func (f *fakeClubStore) Create(_ context.Context, club *models.Club) (*models.Club, error) {
	for _, c := range f.clubs {
		if c.Title == club.Title || c.Slug == club.Slug {
			return nil, apperrors.ErrClubAlreadyExists
		}
	}
	club.CreatedAt = time.Now()
	club.UpdatedAt = club.CreatedAt
	return f.add(club), nil
}

func (f *fakeClubStore) Update(_ context.Context, club *models.Club) error {
	if _, ok := f.clubs[club.ID]; !ok {
		return apperrors.ErrClubNotFound
	}
	club.UpdatedAt = time.Now()
	f.clubs[club.ID] = club
	return nil
}

func (f *fakeClubStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.clubs[id]; !ok {
		return apperrors.ErrClubNotFound
	}
	delete(f.clubs, id)
	return nil
}

func (f *fakeClubStore) GetFeatured(_ context.Context, limit int) ([]models.Club, error) {
	out := make([]models.Club, 0, limit)
	for _, c := range f.clubs {
		if len(out) == limit {
			break
		}
		out = append(out, *c)
	}
	return out, nil
}

type membershipKey struct {
	clubID int64
	userID int64
}

type fakeMembershipStore struct {
	members map[membershipKey]*models.ClubMembership
	users   *fakeUserStore
	nextID  int64
}

func newFakeMembershipStore(users *fakeUserStore) *fakeMembershipStore {
	return &fakeMembershipStore{
		members: make(map[membershipKey]*models.ClubMembership),
		users:   users,
		nextID:  1,
	}
}

func (f *fakeMembershipStore) IsMember(_ context.Context, clubID, userID int64) (bool, error) {
	_, ok := f.members[membershipKey{clubID, userID}]
	return ok, nil
}

func (f *fakeMembershipStore) Add(_ context.Context, clubID, userID int64) (int64, error) {
	key := membershipKey{clubID, userID}
	if _, ok := f.members[key]; ok {
		return 0, apperrors.ErrAlreadyMember
	}
	m := &models.ClubMembership{
		ID:       f.nextID,
		UserID:   userID,
		ClubID:   clubID,
		JoinedAt: time.Now(),
	}
	f.nextID++
	f.members[key] = m
	return m.ID, nil
}

func (f *fakeMembershipStore) Remove(_ context.Context, clubID, userID int64) error {
	key := membershipKey{clubID, userID}
	if _, ok := f.members[key]; !ok {
		return apperrors.ErrNotMember
	}
	delete(f.members, key)
	return nil
}

func (f *fakeMembershipStore) ListMembers(_ context.Context, clubID int64) ([]*models.ClubMembership, error) {
	var out []*models.ClubMembership
	for _, m := range f.members {
		if m.ClubID != clubID {
			continue
		}
		if m.User == nil && f.users != nil {
			m.User = f.users.users[m.UserID]
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMembershipStore) CountByClub(_ context.Context, clubID int64) (int, error) {
	count := 0
	for _, m := range f.members {
		if m.ClubID == clubID {
			count++
		}
	}
	return count, nil
}

type ratingKey struct {
	userID   int64
	kind     models.EntityKind
	entityID int64
}

type fakeRatingStore struct {
	ratings map[ratingKey]*models.Rating
	nextID  int64

	// insertErr, when set, fails the next Insert once. Simulates losing a
	// unique constraint race.
	insertErr error
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: make(map[ratingKey]*models.Rating), nextID: 1}
}

func (f *fakeRatingStore) GetByUserAndEntity(_ context.Context, userID int64, kind models.EntityKind, entityID int64) (*models.Rating, error) {
	if r, ok := f.ratings[ratingKey{userID, kind, entityID}]; ok {
		return r, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeRatingStore) Insert(_ context.Context, rating *models.Rating) (*models.Rating, error) {
	key := ratingKey{rating.UserID, rating.Kind, rating.EntityID}
	if f.insertErr != nil {
		err := f.insertErr
		f.insertErr = nil
		// The winning writer's row is visible by the time the loser sees the
		// constraint violation.
		f.ratings[key] = &models.Rating{
			ID:       f.nextID,
			UserID:   rating.UserID,
			Kind:     rating.Kind,
			EntityID: rating.EntityID,
			Score:    1,
		}
		f.nextID++
		return nil, err
	}
	if _, ok := f.ratings[key]; ok {
		return nil, apperrors.ErrConflict
	}
	rating.ID = f.nextID
	f.nextID++
	rating.CreatedAt = time.Now()
	f.ratings[key] = rating
	return rating, nil
}

func (f *fakeRatingStore) UpdateScore(_ context.Context, userID int64, kind models.EntityKind, entityID int64, score int) error {
	r, ok := f.ratings[ratingKey{userID, kind, entityID}]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	r.Score = score
	return nil
}

func (f *fakeRatingStore) Average(_ context.Context, kind models.EntityKind, entityID int64) (*float64, error) {
	sum, count := 0, 0
	for _, r := range f.ratings {
		if r.Kind == kind && r.EntityID == entityID {
			sum += r.Score
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(count)
	return &avg, nil
}

func (f *fakeRatingStore) ListByEntity(_ context.Context, kind models.EntityKind, entityID int64) ([]*models.Rating, error) {
	var out []*models.Rating
	for _, r := range f.ratings {
		if r.Kind == kind && r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeFeedbackStore struct {
	feedback []*models.Feedback
	nextID   int64
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{nextID: 1}
}

func (f *fakeFeedbackStore) Insert(_ context.Context, fb *models.Feedback) (*models.Feedback, error) {
	fb.ID = f.nextID
	f.nextID++
	fb.CreatedAt = time.Now()
	f.feedback = append(f.feedback, fb)
	return fb, nil
}

func (f *fakeFeedbackStore) ListByEntity(_ context.Context, kind models.EntityKind, entityID int64) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range f.feedback {
		if fb.Kind == kind && fb.EntityID == entityID {
			out = append(out, fb)
		}
	}
	return out, nil
}

type fakeEventStore struct {
	events map[int64]*models.Event
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event), nextID: 1}
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEventNotFound
}

func (f *fakeEventStore) ListUpcoming(_ context.Context, today time.Time, clubSlug, search *string, page, pageSize int) ([]models.Event, int64, error) {
	var out []models.Event
	for _, e := range f.events {
		if e.IsPast(today) {
			continue
		}
		if search != nil && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(*search)) {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) (*models.Event, error) {
	event.ID = f.nextID
	f.nextID++
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	event.UpdatedAt = time.Now()
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeAnnouncementStore struct {
	announcements map[int64]*models.Announcement
	memberships   *fakeMembershipStore
	clubs         *fakeClubStore
	nextID        int64
}

func newFakeAnnouncementStore(memberships *fakeMembershipStore, clubs *fakeClubStore) *fakeAnnouncementStore {
	return &fakeAnnouncementStore{
		announcements: make(map[int64]*models.Announcement),
		memberships:   memberships,
		clubs:         clubs,
		nextID:        1,
	}
}

func (f *fakeAnnouncementStore) GetByID(_ context.Context, id int64) (*models.Announcement, error) {
	if a, ok := f.announcements[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAnnouncementNotFound
}

func (f *fakeAnnouncementStore) visibleTo(viewer *models.User, a *models.Announcement) bool {
	if a.IsGlobal {
		return true
	}
	if viewer == nil {
		return false
	}
	if viewer.IsCollegeAdmin() {
		return true
	}
	if a.ClubID == nil {
		return false
	}
	if _, ok := f.memberships.members[membershipKey{*a.ClubID, viewer.ID}]; ok {
		return true
	}
	if club, ok := f.clubs.clubs[*a.ClubID]; ok && club.IsManagedBy(viewer) {
		return true
	}
	return false
}

func (f *fakeAnnouncementStore) ListVisibleTo(_ context.Context, viewer *models.User, page, pageSize int) ([]models.Announcement, int64, error) {
	var out []models.Announcement
	for _, a := range f.announcements {
		if f.visibleTo(viewer, a) {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAnnouncementStore) ListLatestGlobal(_ context.Context, limit int) ([]models.Announcement, error) {
	var out []models.Announcement
	for _, a := range f.announcements {
		if !a.IsGlobal || len(out) == limit {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAnnouncementStore) Create(_ context.Context, a *models.Announcement) (*models.Announcement, error) {
	a.ID = f.nextID
	f.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.announcements[a.ID] = a
	return a, nil
}

func (f *fakeAnnouncementStore) Update(_ context.Context, a *models.Announcement) error {
	if _, ok := f.announcements[a.ID]; !ok {
		return apperrors.ErrAnnouncementNotFound
	}
	a.UpdatedAt = time.Now()
	f.announcements[a.ID] = a
	return nil
}

func (f *fakeAnnouncementStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.announcements[id]; !ok {
		return apperrors.ErrAnnouncementNotFound
	}
	delete(f.announcements, id)
	return nil
}
