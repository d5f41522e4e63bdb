package models

import (
	"gorm.io/gorm"
)

type Autobus struct {
	gorm.Model
	Matricula   string `json:"matricula" gorm:"unique"`
	Modelo      string `json:"modelo"`
	Capacidad   int    `json:"capacidad"`
	ColegioID   uint   `json:"colegio_id" gorm:"index"`
	ConductorID uint   `json:"conductor_id"`
	EnServicio  bool   `json:"en_servicio" gorm:"default:true"`
}
