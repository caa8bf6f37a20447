package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/app/services"
	"github.com/odemir/campusclubs/internal/middleware"
	"github.com/odemir/campusclubs/internal/pkg/helpers"
)

// AnnouncementController handles announcement related operations
type AnnouncementController struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
	}
}

// ListAnnouncements handles the announcement feed
// @Summary List announcements
// @Description Retrieves announcements visible to the caller, most recent first. Anonymous callers see global announcements only; college admins see everything; everyone else sees global plus their joined and managed clubs' announcements.
// @Tags announcements
// @Produce json
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementListResponse} "Announcements retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements [get]
func (c *AnnouncementController) ListAnnouncements(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.announcementService.ListAnnouncements(ctx.Request.Context(), middleware.CurrentUser(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetAnnouncement handles the announcement detail page
// @Summary Get an announcement
// @Description Retrieves one announcement. Club announcements the caller may not see read as not found.
// @Tags announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement retrieved"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [get]
func (c *AnnouncementController) GetAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.announcementService.GetAnnouncement(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateAnnouncement handles announcement creation
// @Summary Create an announcement
// @Description Creates a global or club announcement. Exactly one scope must be chosen. College admins may post anywhere; club officers only to clubs they manage.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement details"
// @Success 201 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement created"
// @Failure 400 {object} dto.ErrorResponse "Scope missing or doubled"
// @Failure 403 {object} dto.ErrorResponse "Not allowed for this scope"
// @Router /announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.announcementService.CreateAnnouncement(ctx.Request.Context(), middleware.CurrentUser(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateAnnouncement handles announcement modification
// @Summary Update an announcement
// @Description Updates an announcement's title and content. College admins and the authoring officer only. Scope cannot change.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body dto.UpdateAnnouncementRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author or an admin"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [put]
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.announcementService.UpdateAnnouncement(ctx.Request.Context(), middleware.CurrentUser(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteAnnouncement handles announcement removal
// @Summary Delete an announcement
// @Description Deletes an announcement. College admins and the authoring officer only.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Announcement deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author or an admin"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.announcementService.DeleteAnnouncement(ctx.Request.Context(), middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Announcement deleted"}))
}
