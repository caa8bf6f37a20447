package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/app/services"
	"github.com/odemir/campusclubs/internal/middleware"
)

// FeedbackController handles rating and feedback operations. Targets are
// addressed as /{kind}/{identifier}: clubs by slug or ID, events by ID.
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
	}
}

// SubmitRating handles rating submission
// @Summary Rate an entity
// @Description Records a 1..5 score for a club or event. One rating per user per entity; resubmitting replaces the previous score.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Entity kind" Enums(club, event)
// @Param identifier path string true "Entity slug or ID"
// @Param request body dto.SubmitRatingRequest true "Score"
// @Success 200 {object} dto.APIResponse{data=dto.RatingSubmittedResponse} "Rating recorded"
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown kind or entity"
// @Router /feedback/{kind}/{identifier}/ratings [post]
func (c *FeedbackController) SubmitRating(ctx *gin.Context) {
	var req dto.SubmitRatingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.feedbackService.SubmitRating(
		ctx.Request.Context(),
		middleware.CurrentUser(ctx),
		ctx.Param("kind"),
		ctx.Param("identifier"),
		&req,
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SubmitFeedback handles comment submission
// @Summary Comment on an entity
// @Description Records a free-text comment on a club or event. Blank comments are rejected; multiple comments per user are allowed.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Entity kind" Enums(club, event)
// @Param identifier path string true "Entity slug or ID"
// @Param request body dto.SubmitFeedbackRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.FeedbackResponse} "Comment recorded"
// @Failure 400 {object} dto.ErrorResponse "Blank comment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown kind or entity"
// @Router /feedback/{kind}/{identifier}/comments [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.feedbackService.SubmitFeedback(
		ctx.Request.Context(),
		middleware.CurrentUser(ctx),
		ctx.Param("kind"),
		ctx.Param("identifier"),
		&req,
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetAverageRating handles the rating aggregate
// @Summary Get an entity's average rating
// @Description Returns the average score and rating count. The average is null when no ratings exist. Public.
// @Tags feedback
// @Produce json
// @Param kind path string true "Entity kind" Enums(club, event)
// @Param identifier path string true "Entity slug or ID"
// @Success 200 {object} dto.APIResponse{data=dto.AverageRatingResponse} "Aggregate retrieved"
// @Failure 404 {object} dto.ErrorResponse "Unknown kind or entity"
// @Router /feedback/{kind}/{identifier}/ratings [get]
func (c *FeedbackController) GetAverageRating(ctx *gin.Context) {
	resp, err := c.feedbackService.GetAverageRating(
		ctx.Request.Context(),
		ctx.Param("kind"),
		ctx.Param("identifier"),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetEntityFeedback handles the full feedback view
// @Summary Get everything attached to an entity
// @Description Returns the entity's ratings, comments and average score. Public.
// @Tags feedback
// @Produce json
// @Param kind path string true "Entity kind" Enums(club, event)
// @Param identifier path string true "Entity slug or ID"
// @Success 200 {object} dto.APIResponse{data=dto.EntityFeedbackResponse} "Feedback retrieved"
// @Failure 404 {object} dto.ErrorResponse "Unknown kind or entity"
// @Router /feedback/{kind}/{identifier} [get]
func (c *FeedbackController) GetEntityFeedback(ctx *gin.Context) {
	resp, err := c.feedbackService.GetEntityFeedback(
		ctx.Request.Context(),
		ctx.Param("kind"),
		ctx.Param("identifier"),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
