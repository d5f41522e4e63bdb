package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
)

// CreateIncidente lets a parent report a problem with a trip. The generated
// folio is the reference code the parent quotes to staff.
func CreateIncidente(c *gin.Context) {
	padreID := uint(c.MustGet("user_id").(float64))

	var input struct {
		EstudianteID uint   `json:"estudiante_id" binding:"required"`
		RutaID       uint   `json:"ruta_id"`
		Tipo         string `json:"tipo" binding:"required"`
		Descripcion  string `json:"descripcion" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incidente input: " + err.Error()})
		return
	}

	var estudiante models.Estudiante
	if err := config.DB.First(&estudiante, input.EstudianteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estudiante not found"})
		return
	}
	if estudiante.PadreID != padreID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Estudiante does not belong to this padre"})
		return
	}

	incidente := models.Incidente{
		Folio:        uuid.NewString(),
		EstudianteID: input.EstudianteID,
		RutaID:       input.RutaID,
		PadreID:      padreID,
		Tipo:         input.Tipo,
		Descripcion:  input.Descripcion,
		Estado:       models.IncidenteAbierto,
	}
	if err := config.DB.Create(&incidente).Error; err != nil {
		logrus.WithError(err).Error("CreateIncidente: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create incidente: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"incidente": incidente})
}

// ListMisIncidentes returns the authenticated parent's reports.
func ListMisIncidentes(c *gin.Context) {
	padreID := uint(c.MustGet("user_id").(float64))

	var incidentes []models.Incidente
	if err := config.DB.Where("padre_id = ?", padreID).Order("id DESC").Find(&incidentes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching incidentes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incidentes": incidentes})
}

// ListIncidentes lists every report, optionally filtered by estado (admin view).
func ListIncidentes(c *gin.Context) {
	query := config.DB.Model(&models.Incidente{})
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var incidentes []models.Incidente
	if err := query.Order("id DESC").Find(&incidentes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing incidentes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": incidentes})
}

// UpdateIncidenteEstado moves a report through abierto -> en_revision -> resuelto.
func UpdateIncidenteEstado(c *gin.Context) {
	iID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incidente ID"})
		return
	}

	var incidente models.Incidente
	if err := config.DB.First(&incidente, iID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incidente not found"})
		return
	}

	var input struct {
		Estado string `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Estado {
	case models.IncidenteAbierto, models.IncidenteEnRevision, models.IncidenteResuelto:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid estado"})
		return
	}

	if err := config.DB.Model(&incidente).Update("estado", input.Estado).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incidente"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incidente": incidente})
}
