package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tatame/academy/internal/app/controllers"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/middleware"
)

// SetupRouter configures all application routes. Every group under the
// authenticated tree passes the JWT gate; write operations on the
// roster and promotion history are restricted to the principal
// instructor.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	studentController *controllers.StudentController,
	graduationController *controllers.GraduationController,
	messageController *controllers.MessageController,
	attendanceController *controllers.AttendanceController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.PUT("/auth/password", authController.UpdatePassword)

		me := authenticated.Group("/me")
		{
			me.GET("", profileController.GetMe)
			me.PUT("", profileController.UpdateMe)
			me.GET("/student", authMiddleware.RolesAllowed(models.RoleStudent), profileController.GetMyStudent)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", authMiddleware.RolesAllowed(models.RolePrincipalInstructor), studentController.ListStudents)
			students.GET("/:id", authMiddleware.RolesAllowed(models.RolePrincipalInstructor), studentController.GetStudent)

			studentsWrite := students.Group("")
			studentsWrite.Use(authMiddleware.RolesAllowed(models.RolePrincipalInstructor))
			{
				studentsWrite.POST("", studentController.CreateStudent)
				studentsWrite.PUT("/:id", studentController.UpdateStudent)
				studentsWrite.DELETE("/:id", studentController.DeleteStudent)
			}
		}

		graduations := authenticated.Group("/graduations")
		{
			graduations.GET("", graduationController.ListGraduations)
			graduations.GET("/:id", graduationController.GetGraduation)

			graduationsWrite := graduations.Group("")
			graduationsWrite.Use(authMiddleware.RolesAllowed(models.RolePrincipalInstructor))
			{
				graduationsWrite.POST("", graduationController.CreateGraduation)
				graduationsWrite.DELETE("/:id", graduationController.DeleteGraduation)
			}
		}

		messages := authenticated.Group("/messages")
		{
			messages.POST("", messageController.Send)
			messages.GET("", messageController.Inbox)
			messages.GET("/unread-count", messageController.UnreadCount)
			messages.GET("/:id", messageController.Get)
			messages.PUT("/:id/read", messageController.MarkRead)
		}

		classes := authenticated.Group("/classes")
		{
			classes.GET("", attendanceController.ListClassSessions)
			classes.POST("", authMiddleware.RolesAllowed(models.RolePrincipalInstructor), attendanceController.CreateClassSession)
		}

		attendance := authenticated.Group("/attendance")
		attendance.Use(authMiddleware.RolesAllowed(models.RolePrincipalInstructor))
		{
			attendance.POST("", attendanceController.Record)
			attendance.GET("/students/:id/rate", attendanceController.StudentRate)
		}

		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(authMiddleware.RolesAllowed(models.RolePrincipalInstructor))
		{
			dashboard.GET("/overview", dashboardController.Overview)
			dashboard.GET("/activity", dashboardController.RecentActivity)
		}
	}
}
