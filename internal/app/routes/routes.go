package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/odemir/campusclubs/internal/app/controllers"
	"github.com/odemir/campusclubs/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	homeController *controllers.HomeController,
	authController *controllers.AuthController,
	clubController *controllers.ClubController,
	eventController *controllers.EventController,
	announcementController *controllers.AnnouncementController,
	feedbackController *controllers.FeedbackController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---

	// Landing page aggregate
	v1.GET("/home", homeController.GetHome)

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", authMiddleware.JWTAuth(), authController.Me)
	}

	// Club catalogue (public; the detail page picks up the caller when a
	// token is presented)
	clubs := v1.Group("/clubs")
	{
		clubs.GET("", clubController.GetAllClubs)
		clubs.GET("/:identifier", authMiddleware.OptionalJWTAuth(), clubController.GetClub)
	}

	// Event calendar (public)
	events := v1.Group("/events")
	{
		events.GET("", eventController.GetCalendar)
		events.GET("/:id", eventController.GetEvent)
	}

	// Announcement feed; content depends on who is asking, so the token is
	// optional rather than required
	announcements := v1.Group("/announcements")
	announcements.Use(authMiddleware.OptionalJWTAuth())
	{
		announcements.GET("", announcementController.ListAnnouncements)
		announcements.GET("/:id", announcementController.GetAnnouncement)
	}

	// Feedback aggregates (public)
	feedback := v1.Group("/feedback")
	{
		feedback.GET("/:kind/:identifier", feedbackController.GetEntityFeedback)
		feedback.GET("/:kind/:identifier/ratings", feedbackController.GetAverageRating)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Club management and membership. Role checks live in the services;
		// the policy differs per action so a blanket role middleware would
		// not fit.
		clubsProtected := authenticated.Group("/clubs")
		{
			clubsProtected.POST("", clubController.CreateClub)
			clubsProtected.PUT("/:id", clubController.UpdateClub)
			clubsProtected.DELETE("/:id", clubController.DeleteClub)
			clubsProtected.POST("/:id/join", clubController.JoinClub)
			clubsProtected.POST("/:id/leave", clubController.LeaveClub)
		}

		// Event management
		eventsProtected := authenticated.Group("/events")
		{
			eventsProtected.POST("", eventController.CreateEvent)
			eventsProtected.PUT("/:id", eventController.UpdateEvent)
			eventsProtected.DELETE("/:id", eventController.DeleteEvent)
		}

		// Announcement management
		announcementsProtected := authenticated.Group("/announcements")
		{
			announcementsProtected.POST("", announcementController.CreateAnnouncement)
			announcementsProtected.PUT("/:id", announcementController.UpdateAnnouncement)
			announcementsProtected.DELETE("/:id", announcementController.DeleteAnnouncement)
		}

		// Rating and comment submission
		feedbackProtected := authenticated.Group("/feedback")
		{
			feedbackProtected.POST("/:kind/:identifier/ratings", feedbackController.SubmitRating)
			feedbackProtected.POST("/:kind/:identifier/comments", feedbackController.SubmitFeedback)
		}
	}
}
