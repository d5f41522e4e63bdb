package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
)

// CreateEstudiante registers a student for a colegio and links the parent account.
func CreateEstudiante(c *gin.Context) {
	var input struct {
		Nombre    string `json:"nombre" binding:"required"`
		Codigo    string `json:"codigo" binding:"required"`
		Curso     string `json:"curso"`
		ColegioID uint   `json:"colegio_id" binding:"required"`
		PadreID   uint   `json:"padre_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estudiante input: " + err.Error()})
		return
	}

	var padre models.User
	if err := config.DB.First(&padre, input.PadreID).Error; err != nil || padre.Role != "padre" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "padre_id does not name a padre account"})
		return
	}

	estudiante := models.Estudiante{
		Nombre:    input.Nombre,
		Codigo:    input.Codigo,
		Curso:     input.Curso,
		ColegioID: input.ColegioID,
		PadreID:   input.PadreID,
		Activo:    true,
	}
	if err := config.DB.Create(&estudiante).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create estudiante: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"estudiante": estudiante})
}

// ListEstudiantes lists students, optionally filtered by colegio.
func ListEstudiantes(c *gin.Context) {
	query := config.DB.Model(&models.Estudiante{})
	if colegioID := c.Query("colegio_id"); colegioID != "" {
		cID, err := strconv.ParseUint(colegioID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid colegio_id"})
			return
		}
		query = query.Where("colegio_id = ?", cID)
	}

	var estudiantes []models.Estudiante
	if err := query.Find(&estudiantes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing estudiantes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": estudiantes})
}

// GetEstudiante returns one student with their paradas.
func GetEstudiante(c *gin.Context) {
	eID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estudiante ID"})
		return
	}

	var estudiante models.Estudiante
	if err := config.DB.Preload("Paradas").First(&estudiante, eID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estudiante not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"estudiante": estudiante})
}

// UpdateEstudiante applies partial updates to a student record.
func UpdateEstudiante(c *gin.Context) {
	eID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estudiante ID"})
		return
	}

	var estudiante models.Estudiante
	if err := config.DB.First(&estudiante, eID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estudiante not found"})
		return
	}

	var input struct {
		Nombre  *string `json:"nombre"`
		Codigo  *string `json:"codigo"`
		Curso   *string `json:"curso"`
		PadreID *uint   `json:"padre_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Nombre != nil {
		estudiante.Nombre = *input.Nombre
	}
	if input.Codigo != nil {
		estudiante.Codigo = *input.Codigo
	}
	if input.Curso != nil {
		estudiante.Curso = *input.Curso
	}
	if input.PadreID != nil {
		estudiante.PadreID = *input.PadreID
	}

	config.DB.Save(&estudiante)
	c.JSON(http.StatusOK, gin.H{"estudiante": estudiante})
}

// DeactivateEstudiante soft-deactivates a student. Students are never hard
// deleted; their paradas stay but rutas will drop them on the next reconcile.
func DeactivateEstudiante(c *gin.Context) {
	eID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estudiante ID"})
		return
	}

	var estudiante models.Estudiante
	if err := config.DB.First(&estudiante, eID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estudiante not found"})
		return
	}

	var input struct {
		Activo *bool `json:"activo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&estudiante).Update("activo", *input.Activo).Error; err != nil {
		logrus.WithError(err).Error("DeactivateEstudiante: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update estudiante"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"estudiante": estudiante})
}

// ListMisEstudiantes returns the authenticated parent's children.
func ListMisEstudiantes(c *gin.Context) {
	padreID := uint(c.MustGet("user_id").(float64))

	var estudiantes []models.Estudiante
	if err := config.DB.Preload("Paradas").Where("padre_id = ?", padreID).Find(&estudiantes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching estudiantes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"estudiantes": estudiantes})
}
