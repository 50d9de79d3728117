// Package rest exposes the media service's REST API.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/dealerpress/media-library/internal/api/middleware"
)

// SetupRoutes configures all REST API routes. Destructive routes require an
// API key; reads and uploads are open to the dealership's internal network.
func SetupRoutes(router *gin.Engine, handler *Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.APIKeyAuth(authCfg)

	v1 := router.Group("/api/v1")
	{
		// File endpoints
		v1.GET("/files", handler.ListFiles)
		v1.GET("/files/:id", handler.GetFile)
		v1.POST("/files", handler.UploadFile)
		v1.PATCH("/files/:id", handler.UpdateFile)
		v1.POST("/files/move", handler.MoveFiles)
		v1.DELETE("/files/:id", auth, handler.DeleteFile)
		v1.POST("/files/delete", auth, handler.DeleteFiles)

		// Folder endpoints
		v1.GET("/folders", handler.ListFolders)
		v1.POST("/folders", handler.CreateFolder)
		v1.PATCH("/folders/:id", handler.UpdateFolder)
		v1.DELETE("/folders/:id", auth, handler.DeleteFolder)
	}
}
