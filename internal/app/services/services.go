// Package services contains the business logic layer.
//
// Services defined in this package:
// - AuthService: registration, login and token lifecycle
// - ClubService: club catalogue, membership join/leave and management
// - EventService: the event calendar and event management
// - AnnouncementService: global and club-scoped announcements
// - FeedbackService: ratings and comments on clubs and events
// - HomeService: the landing page aggregate
//
// Each service declares the narrow store interfaces it needs so tests can
// substitute in-memory fakes for the repositories.
package services
