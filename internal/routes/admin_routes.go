package routes

import (
	"ruta_segura/internal/controllers"
	"ruta_segura/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/colegios", controllers.CreateColegio)
		admin.GET("/colegios", controllers.ListColegios)
		admin.GET("/colegios/:id", controllers.GetColegio)
		admin.PUT("/colegios/:id", controllers.UpdateColegio)
		admin.DELETE("/colegios/:id", controllers.DeleteColegio)

		admin.POST("/estudiantes", controllers.CreateEstudiante)
		admin.GET("/estudiantes", controllers.ListEstudiantes)
		admin.GET("/estudiantes/:id", controllers.GetEstudiante)
		admin.PUT("/estudiantes/:id", controllers.UpdateEstudiante)
		admin.PATCH("/estudiantes/:id/activo", controllers.DeactivateEstudiante)

		admin.POST("/estudiantes/:id/paradas", controllers.CreateParada)
		admin.GET("/estudiantes/:id/paradas", controllers.ListParadasByEstudiante)
		admin.GET("/estudiantes/:id/paradas/activa", controllers.GetParadaActiva)
		admin.PUT("/paradas/:id", controllers.UpdateParada)
		admin.DELETE("/paradas/:id", controllers.DeleteParada)

		admin.POST("/rutas", controllers.CreateRuta)
		admin.GET("/rutas", controllers.ListRutas)
		admin.GET("/rutas/:id", controllers.GetRuta)
		admin.PUT("/rutas/:id", controllers.UpdateRuta)
		admin.DELETE("/rutas/:id", controllers.DeleteRuta)
		admin.POST("/rutas/:id/estudiantes", controllers.AsignarEstudiantes)

		admin.POST("/autobuses", controllers.CreateAutobus)
		admin.GET("/autobuses", controllers.ListAutobuses)
		admin.PUT("/autobuses/:id", controllers.UpdateAutobus)
		admin.DELETE("/autobuses/:id", controllers.DeleteAutobus)

		admin.GET("/conductores", controllers.ListConductores)
		admin.GET("/conductores/:id", controllers.GetConductor)
		admin.PUT("/conductores/:id", controllers.UpdateConductor)
		admin.DELETE("/conductores/:id", controllers.DeleteConductor)

		admin.GET("/padres", controllers.ListPadres)
		admin.GET("/incidentes", controllers.ListIncidentes)
		admin.PATCH("/incidentes/:id", controllers.UpdateIncidenteEstado)
	}
}
