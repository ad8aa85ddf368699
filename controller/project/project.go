package project

import (
	"net/http"

	"taskboard/controller"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ProjectController(router *gin.Engine, db *gorm.DB) {
	svc := services.NewProjectService(db)
	authed := router.Group("/projects", middleware.AccessTokenMiddleware())

	authed.POST("", func(c *gin.Context) {
		var req dto.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		project, err := svc.Create(controller.UserID(c), req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, project)
	})

	authed.GET("", func(c *gin.Context) {
		projects, err := svc.ListForUser(controller.UserID(c))
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
	})

	authed.GET("/:projectId", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		project, err := svc.Get(projectID, controller.UserID(c))
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, project)
	})

	authed.PATCH("/:projectId", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		var req dto.UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		project, err := svc.Update(projectID, controller.UserID(c), req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, project)
	})

	authed.DELETE("/:projectId", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		if err := svc.Remove(projectID, controller.UserID(c)); err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
	})
}
