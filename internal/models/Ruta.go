package models

import (
	"gorm.io/gorm"
)

// Ruta represents one service path a bus drives for a colegio, either a
// morning pickup run or an afternoon dropoff run (Turno). Students are
// attached through RutaEstudiante rows managed by internal/rutas.
type Ruta struct {
	gorm.Model

	Nombre      string `json:"nombre" binding:"required" gorm:"index:idx_colegio_nombre,unique"`
	Descripcion string `json:"descripcion"`
	ColegioID   uint   `json:"colegio_id" gorm:"index:idx_colegio_nombre,unique"`
	Turno       string `json:"turno"` // TipoRecogida or TipoEntrega
	HoraSalida  string `json:"hora_salida"`
	AutobusID   uint   `json:"autobus_id"`

	// Geometry stored as a WKB LINESTRING; the API speaks GeoJSON.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	Asignaciones []RutaEstudiante `gorm:"foreignKey:RutaID" json:"asignaciones,omitempty"`
}
