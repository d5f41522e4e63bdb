package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
	"ruta_segura/internal/paradas"
)

type paradaInput struct {
	Tipo      string  `json:"tipo"`
	Subtipo   string  `json:"subtipo"`
	Direccion string  `json:"direccion"`
	Calle     string  `json:"calle"`
	Numero    string  `json:"numero"`
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
	Activa    bool    `json:"activa"`
}

func paradaRegistry() *paradas.Registry {
	return paradas.NewRegistry(paradas.NewStore(config.DB))
}

// renderParadaError maps the registry's typed errors onto HTTP statuses.
func renderParadaError(c *gin.Context, err error) {
	var vErr *paradas.ValidationError
	var cErr *paradas.ConflictError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "campo": vErr.Campo})
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, gin.H{"error": cErr.Error()})
	case errors.Is(err, paradas.ErrParadaNoEncontrada):
		c.JSON(http.StatusNotFound, gin.H{"error": "Parada not found"})
	default:
		logrus.WithError(err).Error("parada operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure: " + err.Error()})
	}
}

// estudianteForCaller loads the student and, for padre callers, checks the
// student belongs to them.
func estudianteForCaller(c *gin.Context, estudianteID uint) (*models.Estudiante, bool) {
	var estudiante models.Estudiante
	if err := config.DB.First(&estudiante, estudianteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estudiante not found"})
		return nil, false
	}

	if role, _ := c.Get("role"); role == "padre" {
		padreID := uint(c.MustGet("user_id").(float64))
		if estudiante.PadreID != padreID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Estudiante does not belong to this padre"})
			return nil, false
		}
	}
	return &estudiante, true
}

// CreateParada adds a parada into a free (tipo, subtipo) slot of the student.
// An occupied slot is a 409; the caller should edit the existing parada.
func CreateParada(c *gin.Context) {
	eID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estudiante ID"})
		return
	}

	estudiante, ok := estudianteForCaller(c, uint(eID))
	if !ok {
		return
	}

	var input paradaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parada input: " + err.Error()})
		return
	}

	parada, err := paradaRegistry().Upsert(paradas.UpsertInput{
		EstudianteID: estudiante.ID,
		ColegioID:    estudiante.ColegioID,
		Tipo:         input.Tipo,
		Subtipo:      input.Subtipo,
		Direccion:    input.Direccion,
		Calle:        input.Calle,
		Numero:       input.Numero,
		Latitud:      input.Latitud,
		Longitud:     input.Longitud,
		Activa:       input.Activa,
	})
	if err != nil {
		renderParadaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"parada": parada})
}

// UpdateParada edits an existing parada in place, keeping the slot and
// single-active invariants.
func UpdateParada(c *gin.Context) {
	pID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parada ID"})
		return
	}

	var existing models.Parada
	if err := config.DB.First(&existing, pID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parada not found"})
		return
	}

	estudiante, ok := estudianteForCaller(c, existing.EstudianteID)
	if !ok {
		return
	}

	var input paradaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parada input: " + err.Error()})
		return
	}

	paradaID := uint(pID)
	parada, err := paradaRegistry().Upsert(paradas.UpsertInput{
		ParadaID:     &paradaID,
		EstudianteID: estudiante.ID,
		ColegioID:    estudiante.ColegioID,
		Tipo:         input.Tipo,
		Subtipo:      input.Subtipo,
		Direccion:    input.Direccion,
		Calle:        input.Calle,
		Numero:       input.Numero,
		Latitud:      input.Latitud,
		Longitud:     input.Longitud,
		Activa:       input.Activa,
	})
	if err != nil {
		renderParadaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parada": parada})
}

// DeleteParada removes a parada unconditionally; any ruta assignments using
// it go with it.
func DeleteParada(c *gin.Context) {
	pID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parada ID"})
		return
	}

	var existing models.Parada
	if err := config.DB.First(&existing, pID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parada not found"})
		return
	}

	if _, ok := estudianteForCaller(c, existing.EstudianteID); !ok {
		return
	}

	if err := paradaRegistry().Delete(uint(pID)); err != nil {
		renderParadaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Parada deleted"})
}

// ListParadasByEstudiante returns every parada of one student.
func ListParadasByEstudiante(c *gin.Context) {
	eID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estudiante ID"})
		return
	}

	if _, ok := estudianteForCaller(c, uint(eID)); !ok {
		return
	}

	var lista []models.Parada
	if err := config.DB.Where("estudiante_id = ?", eID).Order("id").Find(&lista).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching paradas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paradas": lista})
}

// GetParadaActiva returns the student's single activa parada for ?tipo=.
func GetParadaActiva(c *gin.Context) {
	eID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estudiante ID"})
		return
	}

	tipo := c.Query("tipo")
	if tipo != models.TipoRecogida && tipo != models.TipoEntrega {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tipo must be recogida or entrega"})
		return
	}

	if _, ok := estudianteForCaller(c, uint(eID)); !ok {
		return
	}

	parada, err := paradaRegistry().ActiveFor(uint(eID), tipo)
	if err != nil {
		renderParadaError(c, err)
		return
	}
	if parada == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No parada activa for this tipo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"parada": parada})
}
