package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/app/services"
	"github.com/tatame/academy/internal/middleware"
)

// DashboardController handles the aggregate read-only endpoints
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// Overview handles GET /dashboard/overview
func (c *DashboardController) Overview(ctx *gin.Context) {
	profileID, ok := middleware.ProfileID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	overview, err := c.dashboardService.Overview(ctx, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview))
}

// RecentActivity handles GET /dashboard/activity
func (c *DashboardController) RecentActivity(ctx *gin.Context) {
	entries, err := c.dashboardService.RecentActivity(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries))
}
