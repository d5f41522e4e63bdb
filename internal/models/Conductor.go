package models

import (
	"gorm.io/gorm"
)

type Conductor struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"unique"` // Foreign key to User
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Licencia  string `json:"licencia"`
	ColegioID uint   `json:"colegio_id" gorm:"index"`
}
