package connection

import (
	"log"
	"os"

	"taskboard/controller/auth"
	"taskboard/controller/column"
	"taskboard/controller/member"
	"taskboard/controller/project"
	"taskboard/controller/tag"
	"taskboard/controller/task"
	"taskboard/controller/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	router := gin.Default()

	db, err := DBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	corsConfig := cors.DefaultConfig()
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		corsConfig.AllowOrigins = []string{frontend}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	auth.AuthController(router, db)
	user.UserController(router, db)

	project.ProjectController(router, db)
	member.MemberController(router, db)

	column.ColumnController(router, db)
	task.TaskController(router, db)
	tag.TagController(router, db)

	router.Run()
}
