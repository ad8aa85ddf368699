package task

import (
	"net/http"

	"taskboard/controller"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TaskController(router *gin.Engine, db *gorm.DB) {
	svc := services.NewTaskService(db)
	authed := router.Group("/tasks", middleware.AccessTokenMiddleware())

	authed.POST("", func(c *gin.Context) {
		var req dto.CreateTaskRequest
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
		tasks, err := svc.List(controller.UserID(c), projectID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	})

	authed.GET("/column/:columnId", func(c *gin.Context) {
		columnID, ok := controller.UintParam(c, "columnId")
		if !ok {
			return
		}
		tasks, err := svc.FindByColumn(controller.UserID(c), columnID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	})

	authed.GET("/:id", func(c *gin.Context) {
		taskID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		found, err := svc.Get(controller.UserID(c), taskID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	})

	authed.PATCH("/:id", func(c *gin.Context) {
		taskID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		var req dto.UpdateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		updated, err := svc.Update(controller.UserID(c), taskID, req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	authed.DELETE("/:id", func(c *gin.Context) {
		taskID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Remove(controller.UserID(c), taskID); err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
	})
}
