package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
)

// ListConductores lists every driver (admin view).
func ListConductores(c *gin.Context) {
	var conductores []models.Conductor
	if err := config.DB.Find(&conductores).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing conductores: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": conductores})
}

// GetConductor retrieves one driver by ID
func GetConductor(c *gin.Context) {
	id := c.Param("id")
	var conductor models.Conductor
	if err := config.DB.First(&conductor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conductor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conductor": conductor})
}

// UpdateConductor modifies a driver's contact details or colegio.
func UpdateConductor(c *gin.Context) {
	id := c.Param("id")
	var conductor models.Conductor
	if err := config.DB.First(&conductor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conductor not found"})
		return
	}

	var input struct {
		Nombre    *string `json:"nombre"`
		Telefono  *string `json:"telefono"`
		Licencia  *string `json:"licencia"`
		ColegioID *uint   `json:"colegio_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Nombre != nil {
		conductor.Nombre = *input.Nombre
	}
	if input.Telefono != nil {
		conductor.Telefono = *input.Telefono
	}
	if input.Licencia != nil {
		conductor.Licencia = *input.Licencia
	}
	if input.ColegioID != nil {
		conductor.ColegioID = *input.ColegioID
	}

	config.DB.Save(&conductor)
	c.JSON(http.StatusOK, gin.H{"conductor": conductor})
}

// DeleteConductor removes a driver record by ID
func DeleteConductor(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Conductor{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conductor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conductor deleted"})
}
