package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/app/services"
	"github.com/odemir/campusclubs/internal/middleware"
)

// HomeController serves the landing page aggregate
type HomeController struct {
	homeService services.HomeService
}

// NewHomeController creates a new HomeController
func NewHomeController(homeService services.HomeService) *HomeController {
	return &HomeController{
		homeService: homeService,
	}
}

// GetHome handles the landing page
// @Summary Landing page
// @Description Returns the latest five global announcements and the top three clubs by average rating, then member count. Public.
// @Tags home
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HomeResponse} "Home retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /home [get]
func (c *HomeController) GetHome(ctx *gin.Context) {
	resp, err := c.homeService.GetHome(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
