package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
)

// CreateColegio registers a new Colegio
func CreateColegio(c *gin.Context) {
	var input models.Colegio
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create colegio: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"colegio": input})
}

// GetColegio retrieves a Colegio by ID
func GetColegio(c *gin.Context) {
	id := c.Param("id")
	var colegio models.Colegio
	if err := config.DB.Preload("Rutas").Preload("Autobuses").First(&colegio, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Colegio not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"colegio": colegio})
}

// ListColegios lists all Colegios
func ListColegios(c *gin.Context) {
	var colegios []models.Colegio
	if err := config.DB.Find(&colegios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch colegios"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": colegios})
}

// UpdateColegio modifies an existing Colegio
func UpdateColegio(c *gin.Context) {
	id := c.Param("id")
	var colegio models.Colegio
	if err := config.DB.First(&colegio, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Colegio not found"})
		return
	}

	var input struct {
		Nombre    *string `json:"nombre"`
		Direccion *string `json:"direccion"`
		Telefono  *string `json:"telefono"`
		Email     *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Nombre != nil {
		colegio.Nombre = *input.Nombre
	}
	if input.Direccion != nil {
		colegio.Direccion = *input.Direccion
	}
	if input.Telefono != nil {
		colegio.Telefono = *input.Telefono
	}
	if input.Email != nil {
		colegio.Email = *input.Email
	}

	config.DB.Save(&colegio)
	c.JSON(http.StatusOK, gin.H{"colegio": colegio})
}

// DeleteColegio removes a Colegio by ID
func DeleteColegio(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Colegio{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete colegio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Colegio deleted"})
}
