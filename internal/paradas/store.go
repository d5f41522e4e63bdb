package paradas

import (
	"gorm.io/gorm"

	"ruta_segura/internal/models"
)

// Store is the storage port the registry writes through. Insert and Update
// run "deactivate same-tipo siblings, then write self" as one transaction so
// two concurrent activations cannot both leave their parada activa.
type Store interface {
	ListForEstudiante(estudianteID uint) ([]models.Parada, error)
	Insert(p *models.Parada, deactivateSiblings bool) error
	Update(p *models.Parada, deactivateSiblings bool) error
	Delete(id uint) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ListForEstudiante(estudianteID uint) ([]models.Parada, error) {
	var paradas []models.Parada
	err := s.db.Where("estudiante_id = ?", estudianteID).Order("id").Find(&paradas).Error
	return paradas, err
}

func (s *gormStore) Insert(p *models.Parada, deactivateSiblings bool) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if deactivateSiblings {
		if err := tx.Model(&models.Parada{}).
			Where("estudiante_id = ? AND tipo = ?", p.EstudianteID, p.Tipo).
			Update("activa", false).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Create(p).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *gormStore) Update(p *models.Parada, deactivateSiblings bool) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if deactivateSiblings {
		if err := tx.Model(&models.Parada{}).
			Where("estudiante_id = ? AND tipo = ? AND id <> ?", p.EstudianteID, p.Tipo, p.ID).
			Update("activa", false).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	// Save writes every column, so a false Activa lands too.
	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Delete removes the parada and any ruta assignments that reference it, so no
// assignment ever points at a parada that is gone.
func (s *gormStore) Delete(id uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Unscoped().Where("parada_id = ?", id).Delete(&models.RutaEstudiante{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	res := tx.Delete(&models.Parada{}, id)
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrParadaNoEncontrada
	}

	return tx.Commit().Error
}
