package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jyhan-dev/seodang/internal/app/controllers"
	"github.com/jyhan-dev/seodang/internal/app/models/dto"
	"github.com/jyhan-dev/seodang/internal/middleware"
	"github.com/jyhan-dev/seodang/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	reportController *controllers.ReportController,
	progressHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		reports := authenticated.Group("/reports")
		{
			reports.GET("", reportController.ListReports)
			reports.POST("", reportController.GenerateReport)
			reports.POST("/batch", reportController.GenerateBatch)
			reports.POST("/archive", reportController.DownloadArchive)
			reports.GET("/progress", progressHandler.HandleConnection)
			reports.GET("/:id", reportController.GetReport)
			reports.POST("/:id/archive-state", reportController.ArchiveReport)
		}

		students := authenticated.Group("/students")
		{
			students.GET("/:id/report-view", reportController.GetStudentReportView)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
