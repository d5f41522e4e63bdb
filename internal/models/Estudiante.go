package models

import (
	"gorm.io/gorm"
)

type Estudiante struct {
	gorm.Model
	Nombre    string `json:"nombre" binding:"required"`
	Codigo    string `json:"codigo" gorm:"index:idx_colegio_codigo,unique"` // school-scoped student code
	Curso     string `json:"curso"`
	ColegioID uint   `json:"colegio_id" gorm:"index:idx_colegio_codigo,unique"`
	PadreID   uint   `json:"padre_id" gorm:"index"`
	// Staff deactivate students instead of deleting them; an inactive
	// student keeps their paradas but cannot be assigned to rutas.
	Activo bool `json:"activo" gorm:"default:true"`

	Paradas []Parada `gorm:"foreignKey:EstudianteID" json:"paradas,omitempty"`
}
