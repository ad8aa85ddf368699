package user

import (
	"net/http"

	"taskboard/controller"
	"taskboard/middleware"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func UserController(router *gin.Engine, db *gorm.DB) {
	svc := services.NewAuthService(db)

	router.GET("/users/me", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		profile, err := svc.Profile(controller.UserID(c))
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	})
}
