package models

import (
	"gorm.io/gorm"
)

// Colegio represents a school whose transport the platform manages.
// Every estudiante, ruta and autobus belongs to exactly one colegio.
type Colegio struct {
	gorm.Model

	Nombre    string `json:"nombre" binding:"required"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Email     string `gorm:"unique" json:"email"`

	Estudiantes []Estudiante `gorm:"foreignKey:ColegioID" json:"estudiantes,omitempty"`
	Rutas       []Ruta       `gorm:"foreignKey:ColegioID" json:"rutas,omitempty"`
	Autobuses   []Autobus    `gorm:"foreignKey:ColegioID" json:"autobuses,omitempty"`
}
