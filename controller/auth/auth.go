package auth

import (
	"net/http"

	"taskboard/controller"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthController(router *gin.Engine, db *gorm.DB) {
	svc := services.NewAuthService(db)

	router.POST("/auth/register", func(c *gin.Context) {
		var req dto.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		tokens, err := svc.Register(req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, tokens)
	})

	router.POST("/auth/login", func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		tokens, err := svc.Login(req)
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, tokens)
	})

	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		tokens, err := svc.Refresh(controller.UserID(c), c.MustGet("refreshToken").(string))
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, tokens)
	})

	router.POST("/auth/logout", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		if err := svc.Logout(controller.UserID(c), c.MustGet("refreshToken").(string)); err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
	})

	router.GET("/auth/me", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		user, err := svc.Profile(controller.UserID(c))
		if err != nil {
			controller.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	})
}
