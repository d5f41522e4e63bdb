package models

import (
	"gorm.io/gorm"
)

// RutaEstudiante links one estudiante to one ruta through the parada the bus
// serves for them. Rows are created and removed only by the reconciler in
// internal/rutas; an assignment is never edited in place, it is replaced.
type RutaEstudiante struct {
	gorm.Model

	RutaID       uint `json:"ruta_id" gorm:"index:idx_ruta_estudiante,unique"`
	EstudianteID uint `json:"estudiante_id" gorm:"index:idx_ruta_estudiante,unique"`
	ParadaID     uint `json:"parada_id"`

	Estudiante Estudiante `gorm:"foreignKey:EstudianteID" json:"estudiante,omitempty"`
	Parada     Parada     `gorm:"foreignKey:ParadaID" json:"parada,omitempty"`
}
