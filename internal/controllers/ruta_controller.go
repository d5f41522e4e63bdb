package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
	"ruta_segura/internal/rutas"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RutaResponse mirrors models.Ruta but carries Geometry as a GeoJSON string
// for API output.
type RutaResponse struct {
	ID           uint                    `json:"ID"`
	CreatedAt    time.Time               `json:"CreatedAt"`
	UpdatedAt    time.Time               `json:"UpdatedAt"`
	DeletedAt    gorm.DeletedAt          `json:"DeletedAt,omitempty"`
	Nombre       string                  `json:"nombre"`
	Descripcion  string                  `json:"descripcion"`
	ColegioID    uint                    `json:"colegio_id"`
	Turno        string                  `json:"turno"`
	HoraSalida   string                  `json:"hora_salida"`
	AutobusID    uint                    `json:"autobus_id"`
	Geometry     string                  `json:"geometry"`
	Asignaciones []models.RutaEstudiante `json:"asignaciones"`
}

func toRutaResponse(ruta models.Ruta) RutaResponse {
	jsonGeom, _ := convertWKBToGeoJSON(ruta.Geometry)
	return RutaResponse{
		ID:           ruta.ID,
		CreatedAt:    ruta.CreatedAt,
		UpdatedAt:    ruta.UpdatedAt,
		DeletedAt:    ruta.DeletedAt,
		Nombre:       ruta.Nombre,
		Descripcion:  ruta.Descripcion,
		ColegioID:    ruta.ColegioID,
		Turno:        ruta.Turno,
		HoraSalida:   ruta.HoraSalida,
		AutobusID:    ruta.AutobusID,
		Geometry:     jsonGeom,
		Asignaciones: ruta.Asignaciones,
	}
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateRuta creates a new ruta for a colegio, with an optional GeoJSON
// LineString for the path the bus drives.
func CreateRuta(c *gin.Context) {
	var input struct {
		Nombre      string `json:"nombre" binding:"required"`
		Descripcion string `json:"descripcion"`
		ColegioID   uint   `json:"colegio_id" binding:"required"`
		Turno       string `json:"turno" binding:"required"`
		HoraSalida  string `json:"hora_salida"`
		AutobusID   uint   `json:"autobus_id"`
		Geometry    string `json:"geometry"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRuta: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Turno != models.TipoRecogida && input.Turno != models.TipoEntrega {
		c.JSON(http.StatusBadRequest, gin.H{"error": "turno must be recogida or entrega"})
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	ruta := models.Ruta{
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
		ColegioID:   input.ColegioID,
		Turno:       input.Turno,
		HoraSalida:  input.HoraSalida,
		AutobusID:   input.AutobusID,
		Geometry:    wkbGeom,
	}
	if err := config.DB.Create(&ruta).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create ruta failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ruta": toRutaResponse(ruta)})
}

// ListRutas returns rutas with their asignaciones, optionally per colegio.
func ListRutas(c *gin.Context) {
	query := config.DB.Preload("Asignaciones").Preload("Asignaciones.Estudiante").Preload("Asignaciones.Parada")
	if colegioID := c.Query("colegio_id"); colegioID != "" {
		cID, err := strconv.ParseUint(colegioID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid colegio_id"})
			return
		}
		query = query.Where("colegio_id = ?", cID)
	}

	var lista []models.Ruta
	if err := query.Find(&lista).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rutas: " + err.Error()})
		return
	}

	var rutaResponses []RutaResponse
	for _, r := range lista {
		rutaResponses = append(rutaResponses, toRutaResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"rutas": rutaResponses})
}

// GetRuta returns a single ruta with asignaciones, estudiantes and paradas.
func GetRuta(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ruta ID"})
		return
	}

	var ruta models.Ruta
	if err := config.DB.
		Preload("Asignaciones").
		Preload("Asignaciones.Estudiante").
		Preload("Asignaciones.Parada").
		First(&ruta, rID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ruta not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ruta": toRutaResponse(ruta)})
}

// UpdateRuta handles updating an existing ruta's metadata.
func UpdateRuta(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRuta: Invalid ruta ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ruta ID"})
		return
	}

	var existingRuta models.Ruta
	if err := config.DB.First(&existingRuta, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ruta not found"})
		} else {
			logrus.WithError(err).Error("UpdateRuta: Database error fetching ruta")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Nombre      *string `json:"nombre"`
		Descripcion *string `json:"descripcion"`
		Turno       *string `json:"turno"`
		HoraSalida  *string `json:"hora_salida"`
		AutobusID   *uint   `json:"autobus_id"`
		Geometry    *string `json:"geometry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRuta: Invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := applyRutaUpdates(&existingRuta, input.Nombre, input.Descripcion, input.Turno, input.HoraSalida, input.AutobusID, input.Geometry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&existingRuta).Error; err != nil {
		logrus.WithError(err).Error("UpdateRuta: Failed to save updated ruta")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ruta": toRutaResponse(existingRuta)})
}

func applyRutaUpdates(ruta *models.Ruta, nombre, descripcion, turno, horaSalida *string, autobusID *uint, geometry *string) error {
	if nombre != nil {
		ruta.Nombre = *nombre
	}
	if descripcion != nil {
		ruta.Descripcion = *descripcion
	}
	if turno != nil {
		if *turno != models.TipoRecogida && *turno != models.TipoEntrega {
			return errors.New("turno must be recogida or entrega")
		}
		ruta.Turno = *turno
	}
	if horaSalida != nil {
		ruta.HoraSalida = *horaSalida
	}
	if autobusID != nil {
		ruta.AutobusID = *autobusID
	}
	if geometry != nil {
		if *geometry == "" {
			ruta.Geometry = nil
		} else {
			wkbGeom, err := parseAndConvertGeometry(*geometry)
			if err != nil {
				return errors.New("Invalid geometry: " + err.Error())
			}
			ruta.Geometry = wkbGeom
		}
	}
	return nil
}

// DeleteRuta removes a ruta and its asignaciones.
func DeleteRuta(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ruta ID"})
		return
	}

	var ruta models.Ruta
	if err := config.DB.First(&ruta, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ruta not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Unscoped().Where("ruta_id = ?", ruta.ID).Delete(&models.RutaEstudiante{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asignaciones: " + err.Error()})
		return
	}

	if err := tx.Delete(&ruta).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ruta: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ruta deleted successfully"})
}

// AsignarEstudiantes converges the ruta's membership to the posted student
// list. Partial success is a 200: students without an activa parada for the
// ruta's turno come back in no_asignables instead of failing the call.
func AsignarEstudiantes(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ruta ID"})
		return
	}

	var input struct {
		EstudianteIDs []uint `json:"estudiante_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	reconciler := rutas.NewReconciler(rutas.NewStore(config.DB))
	resultado, err := reconciler.Reconcile(uint(rID), input.EstudianteIDs)
	if err != nil {
		if errors.Is(err, rutas.ErrRutaNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ruta not found"})
			return
		}
		logrus.WithError(err).Error("AsignarEstudiantes: reconcile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconcile failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resultado": resultado})
}

// ListRutasByConductor returns the rutas whose autobus the authenticated
// conductor drives, with each student's parada: the pickup manifest.
func ListRutasByConductor(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))

	var conductor models.Conductor
	if err := config.DB.Where("user_id = ?", userID).First(&conductor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conductor not found"})
		return
	}

	var autobuses []models.Autobus
	if err := config.DB.Where("conductor_id = ?", conductor.ID).Find(&autobuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching autobuses"})
		return
	}

	busIDs := make([]uint, 0, len(autobuses))
	for _, a := range autobuses {
		busIDs = append(busIDs, a.ID)
	}

	var lista []models.Ruta
	if len(busIDs) > 0 {
		if err := config.DB.
			Preload("Asignaciones").
			Preload("Asignaciones.Estudiante").
			Preload("Asignaciones.Parada").
			Where("autobus_id IN ?", busIDs).
			Find(&lista).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching rutas"})
			return
		}
	}

	var rutaResponses []RutaResponse
	for _, r := range lista {
		rutaResponses = append(rutaResponses, toRutaResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"rutas": rutaResponses})
}
