package member

import (
	"net/http"

	"taskboard/controller"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/model"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func MemberController(router *gin.Engine, db *gorm.DB) {
	svc := services.NewMemberService(db)
	authed := router.Group("/projects/:projectId/members", middleware.AccessTokenMiddleware())

	authed.GET("", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		members, err := svc.List(controller.UserID(c), projectID)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, members)
	})

	authed.POST("", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		var req dto.AddMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		added, err := svc.Add(controller.UserID(c), projectID, req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, added)
	})

	authed.PATCH("/:userId", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		targetID, ok := controller.UintParam(c, "userId")
		if !ok {
			return
		}
		var req dto.UpdateMemberRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		updated, err := svc.UpdateRole(controller.UserID(c), projectID, targetID, model.Role(req.Role))
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	authed.DELETE("/:userId", func(c *gin.Context) {
		projectID, ok := controller.UintParam(c, "projectId")
		if !ok {
			return
		}
		targetID, ok := controller.UintParam(c, "userId")
		if !ok {
			return
		}
		if err := svc.Remove(controller.UserID(c), projectID, targetID); err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "member removed successfully"})
	})
}
