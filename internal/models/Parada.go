package models

import (
	"gorm.io/gorm"
)

const (
	// Tipo of a parada, matching the turno of the rutas that may use it.
	TipoRecogida = "recogida"
	TipoEntrega  = "entrega"

	// Subtipo distinguishes the two slots a student has per tipo.
	SubtipoPrincipal = "principal"
	SubtipoFamiliar  = "familiar"
)

// Parada is one pickup or dropoff location for one student.
// A student owns at most one parada per (tipo, subtipo) slot, and at most
// one parada per tipo may be activa at a time; internal/paradas enforces both.
type Parada struct {
	gorm.Model

	EstudianteID uint    `json:"estudiante_id" gorm:"index"`
	ColegioID    uint    `json:"colegio_id" gorm:"index"`
	Tipo         string  `json:"tipo"`
	Subtipo      string  `json:"subtipo"`
	Direccion    string  `json:"direccion"`
	Calle        string  `json:"calle"`
	Numero       string  `json:"numero"`
	Latitud      float64 `json:"latitud"`
	Longitud     float64 `json:"longitud"`
	Activa       bool    `json:"activa"`
}
