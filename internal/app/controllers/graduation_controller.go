package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/app/services"
	"github.com/tatame/academy/internal/middleware"
)

// GraduationController handles belt promotion endpoints
type GraduationController struct {
	graduationService *services.GraduationService
}

// NewGraduationController creates a new GraduationController
func NewGraduationController(graduationService *services.GraduationService) *GraduationController {
	return &GraduationController{
		graduationService: graduationService,
	}
}

func toGraduationResponse(g *models.Graduation) dto.GraduationResponse {
	resp := dto.GraduationResponse{
		ID:             g.ID,
		StudentID:      g.StudentID,
		StudentName:    models.PlaceholderName,
		BeltColor:      string(g.BeltColor),
		BeltDegree:     g.BeltDegree,
		GraduationDate: g.GraduationDate,
		Notes:          g.Notes,
		CreatedAt:      g.CreatedAt,
	}
	if g.Student != nil {
		resp.StudentName = g.Student.DisplayName()
	}
	if g.Instructor != nil {
		resp.InstructorName = g.Instructor.FullName
	}
	return resp
}

func toGraduationResponses(graduations []*models.Graduation) []dto.GraduationResponse {
	out := make([]dto.GraduationResponse, 0, len(graduations))
	for _, g := range graduations {
		out = append(out, toGraduationResponse(g))
	}
	return out
}

// ListGraduations handles GET /graduations, optionally filtered by
// studentId.
func (c *GraduationController) ListGraduations(ctx *gin.Context) {
	if studentIDStr := ctx.Query("studentId"); studentIDStr != "" {
		studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
			errorDetail = errorDetail.WithDetails("studentId must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}

		graduations, err := c.graduationService.ListByStudent(ctx, studentID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.NewAPIResponse(toGraduationResponses(graduations)))
		return
	}

	graduations, err := c.graduationService.ListGraduations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toGraduationResponses(graduations)))
}

// GetGraduation handles GET /graduations/:id
func (c *GraduationController) GetGraduation(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid graduation ID")
		errorDetail = errorDetail.WithDetails("Graduation ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	graduation, err := c.graduationService.GetGraduation(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toGraduationResponse(graduation)))
}

// CreateGraduation handles POST /graduations. The authenticated
// principal instructor is recorded as the awarding instructor.
func (c *GraduationController) CreateGraduation(ctx *gin.Context) {
	var req dto.CreateGraduationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid graduation data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	instructorID, _ := middleware.ProfileID(ctx)

	graduation, warning, err := c.graduationService.RecordGraduation(ctx, instructorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if warning != "" {
		ctx.JSON(http.StatusCreated, dto.NewAPIResponseWithWarning(toGraduationResponse(graduation), warning))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toGraduationResponse(graduation)))
}

// DeleteGraduation handles DELETE /graduations/:id. This is a physical
// delete and the student's current belt is left untouched.
func (c *GraduationController) DeleteGraduation(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid graduation ID")
		errorDetail = errorDetail.WithDetails("Graduation ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.graduationService.DeleteGraduation(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Graduation deleted"}))
}
