package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/app/services"
	"github.com/odemir/campusclubs/internal/middleware"
	"github.com/odemir/campusclubs/internal/pkg/helpers"
)

// ClubController handles club related operations
type ClubController struct {
	clubService services.ClubService
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService) *ClubController {
	return &ClubController{
		clubService: clubService,
	}
}

// GetAllClubs handles the public club listing
// @Summary List clubs
// @Description Retrieves clubs ordered by title with optional search over title and slug. Public.
// @Tags clubs
// @Produce json
// @Param search query string false "Search by title or slug"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse} "Clubs retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /clubs [get]
func (c *ClubController) GetAllClubs(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	filter := &dto.ClubFilterRequest{
		Page:     page,
		PageSize: pageSize,
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}

	resp, err := c.clubService.GetAllClubs(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetClub handles the club detail page
// @Summary Get a club
// @Description Retrieves one club by slug or numeric ID, with members, member count and average rating. Public; the membership flag reflects the caller when authenticated.
// @Tags clubs
// @Produce json
// @Param identifier path string true "Club slug or ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubDetailResponse} "Club retrieved"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{identifier} [get]
func (c *ClubController) GetClub(ctx *gin.Context) {
	identifier := ctx.Param("identifier")

	resp, err := c.clubService.GetClub(ctx.Request.Context(), identifier, middleware.CurrentUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateClub handles club creation
// @Summary Create a club
// @Description Creates a club. College admin only. The slug derives from the title when omitted.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club details"
// @Success 201 {object} dto.APIResponse{data=dto.ClubResponse} "Club created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or manager not an officer"
// @Failure 403 {object} dto.ErrorResponse "College admin required"
// @Failure 409 {object} dto.ErrorResponse "Title or slug already taken"
// @Router /clubs [post]
func (c *ClubController) CreateClub(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.clubService.CreateClub(ctx.Request.Context(), middleware.CurrentUser(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateClub handles club modification
// @Summary Update a club
// @Description Updates a club's title, description or manager. College admins and the managing officer only. The slug never changes.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ClubResponse} "Club updated"
// @Failure 403 {object} dto.ErrorResponse "Not the manager or an admin"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [put]
func (c *ClubController) UpdateClub(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.clubService.UpdateClub(ctx.Request.Context(), middleware.CurrentUser(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteClub handles club removal
// @Summary Delete a club
// @Description Deletes a club and everything attached to it. College admin only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Club deleted"
// @Failure 403 {object} dto.ErrorResponse "College admin required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [delete]
func (c *ClubController) DeleteClub(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.DeleteClub(ctx.Request.Context(), middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Club deleted"}))
}

// JoinClub handles club membership creation
// @Summary Join a club
// @Description Adds the caller to the club. Joining twice is harmless and reported as already a member.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Joined, or already a member"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/join [post]
func (c *ClubController) JoinClub(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	alreadyMember, err := c.clubService.JoinClub(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Joined club"
	if alreadyMember {
		message = "Already a member"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: message}))
}

// LeaveClub handles club membership removal
// @Summary Leave a club
// @Description Removes the caller from the club. Leaving a club never joined is harmless and reported as not a member.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Left, or was not a member"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/leave [post]
func (c *ClubController) LeaveClub(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	notMember, err := c.clubService.LeaveClub(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Left club"
	if notMember {
		message = "Not a member"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: message}))
}

// parseIDParam reads a numeric path parameter, writing a 400 when malformed.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
