package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
)

// CreateAutobus registers a new bus for a colegio; defaults EnServicio to true
func CreateAutobus(c *gin.Context) {
	var input struct {
		Matricula string `json:"matricula" binding:"required"`
		Modelo    string `json:"modelo"`
		Capacidad int    `json:"capacidad" binding:"required"`
		ColegioID uint   `json:"colegio_id" binding:"required"`
	}

	// Parse JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid autobus input: " + err.Error()})
		return
	}

	autobus := models.Autobus{
		Matricula:  input.Matricula,
		Modelo:     input.Modelo,
		Capacidad:  input.Capacidad,
		ColegioID:  input.ColegioID,
		EnServicio: true,
	}

	// Save to DB
	if err := config.DB.Create(&autobus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create autobus: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"autobus": autobus})
}

func ListAutobuses(c *gin.Context) {
	var autobuses []models.Autobus
	if err := config.DB.Find(&autobuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing autobuses: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": autobuses})
}

func UpdateAutobus(c *gin.Context) {
	id := c.Param("id")

	var autobus models.Autobus
	if err := config.DB.First(&autobus, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Autobus not found"})
		return
	}

	var input struct {
		Matricula   *string `json:"matricula"`
		Modelo      *string `json:"modelo"`
		Capacidad   *int    `json:"capacidad"`
		ConductorID *uint   `json:"conductor_id"`
		EnServicio  *bool   `json:"en_servicio"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	if input.Matricula != nil {
		autobus.Matricula = *input.Matricula
	}
	if input.Modelo != nil {
		autobus.Modelo = *input.Modelo
	}
	if input.Capacidad != nil {
		autobus.Capacidad = *input.Capacidad
	}
	if input.ConductorID != nil {
		autobus.ConductorID = *input.ConductorID
	}
	if input.EnServicio != nil {
		autobus.EnServicio = *input.EnServicio
	}

	if err := config.DB.Save(&autobus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update autobus"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"autobus": autobus})
}

func DeleteAutobus(c *gin.Context) {
	id := c.Param("id")

	var autobus models.Autobus
	if err := config.DB.First(&autobus, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Autobus not found"})
		return
	}

	config.DB.Delete(&autobus)
	c.JSON(http.StatusOK, gin.H{"message": "Autobus deleted"})
}
