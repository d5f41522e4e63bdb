package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "padre", "conductor", "admin"

	// Actor-specific relations
	Conductor   *Conductor   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"conductor,omitempty"`
	Estudiantes []Estudiante `gorm:"foreignKey:PadreID" json:"estudiantes,omitempty"`
}
