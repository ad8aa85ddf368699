package tag

import (
	"net/http"

	"taskboard/controller"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TagController(router *gin.Engine, db *gorm.DB) {
	svc := services.NewTagService(db)
	authed := router.Group("/tags", middleware.AccessTokenMiddleware())

	authed.POST("", func(c *gin.Context) {
		var req dto.CreateTagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		created, err := svc.Create(controller.UserID(c), req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	authed.GET("/project/:projectId", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		tags, err := svc.List(controller.UserID(c), projectID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, tags)
	})

	authed.GET("/:id", func(c *gin.Context) {
		tagID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		found, err := svc.Get(controller.UserID(c), tagID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	})

	authed.PATCH("/:id", func(c *gin.Context) {
		tagID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		var req dto.UpdateTagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		updated, err := svc.Update(controller.UserID(c), tagID, req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	authed.DELETE("/:id", func(c *gin.Context) {
		tagID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Remove(controller.UserID(c), tagID); err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "tag deleted successfully"})
	})
}
