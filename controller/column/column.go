package column

import (
	"net/http"

	"taskboard/controller"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ColumnController(router *gin.Engine, db *gorm.DB) {
	svc := services.NewColumnService(db)
	authed := router.Group("/columns", middleware.AccessTokenMiddleware())

	authed.POST("", func(c *gin.Context) {
		var req dto.CreateColumnRequest
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
		columns, err := svc.List(controller.UserID(c), projectID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, columns)
	})

	authed.GET("/:id", func(c *gin.Context) {
		columnID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		col, err := svc.Get(controller.UserID(c), columnID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, col)
	})

	authed.PATCH("/:id", func(c *gin.Context) {
		columnID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		var req dto.UpdateColumnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		updated, err := svc.Update(controller.UserID(c), columnID, req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	authed.DELETE("/:id", func(c *gin.Context) {
		columnID, ok := controller.UintParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Remove(controller.UserID(c), columnID); err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "column deleted successfully"})
	})
}
