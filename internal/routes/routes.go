package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Recovery and request logging
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	// Auth routes
	AuthRoutes(r)
	AdminRoutes(r)
	PadreRoutes(r)
	ConductorRoutes(r)

	return r
}
