package routes

import (
	"ruta_segura/internal/controllers"
	"ruta_segura/internal/middleware"

	"github.com/gin-gonic/gin"
)

func PadreRoutes(r *gin.Engine) {
	padre := r.Group("/padre")
	padre.Use(middleware.RequireAuthWithRole("padre"))
	{
		padre.GET("/estudiantes", controllers.ListMisEstudiantes)

		padre.POST("/estudiantes/:id/paradas", controllers.CreateParada)
		padre.GET("/estudiantes/:id/paradas", controllers.ListParadasByEstudiante)
		padre.GET("/estudiantes/:id/paradas/activa", controllers.GetParadaActiva)
		padre.PUT("/paradas/:id", controllers.UpdateParada)
		padre.DELETE("/paradas/:id", controllers.DeleteParada)

		padre.POST("/incidentes", controllers.CreateIncidente)
		padre.GET("/incidentes", controllers.ListMisIncidentes)
	}
}
