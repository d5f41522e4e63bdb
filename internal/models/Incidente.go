package models

import (
	"gorm.io/gorm"
)

const (
	IncidenteAbierto    = "abierto"
	IncidenteEnRevision = "en_revision"
	IncidenteResuelto   = "resuelto"
)

// Incidente is a parent-reported problem with a trip (missed pickup, delay,
// behaviour on the bus). Folio is the reference code parents quote to staff.
type Incidente struct {
	gorm.Model

	Folio        string `json:"folio" gorm:"uniqueIndex"`
	EstudianteID uint   `json:"estudiante_id" gorm:"index"`
	RutaID       uint   `json:"ruta_id"`
	PadreID      uint   `json:"padre_id" gorm:"index"`
	Tipo         string `json:"tipo"`
	Descripcion  string `json:"descripcion"`
	Estado       string `json:"estado" gorm:"default:abierto"`
}
