package routes

import (
	"ruta_segura/internal/controllers"
	"ruta_segura/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ConductorRoutes(r *gin.Engine) {
	conductor := r.Group("/conductor")
	conductor.Use(middleware.RequireAuthWithRole("conductor"))
	{
		// The conductor's daily manifest: rutas with students and paradas
		conductor.GET("/rutas", controllers.ListRutasByConductor)
	}
}
