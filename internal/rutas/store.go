package rutas

import (
	"errors"

	"gorm.io/gorm"

	"ruta_segura/internal/models"
)

// ErrRutaNoEncontrada is returned when a reconciliation targets a ruta that
// does not exist.
var ErrRutaNoEncontrada = errors.New("ruta no encontrada")

// Store is the storage port the reconciler reads and writes through.
type Store interface {
	GetRuta(rutaID uint) (*models.Ruta, error)
	ListAsignaciones(rutaID uint) ([]models.RutaEstudiante, error)
	GetEstudiantes(ids []uint) ([]models.Estudiante, error)
	// ActiveParada returns the activa parada of the given tipo, or nil.
	ActiveParada(estudianteID uint, tipo string) (*models.Parada, error)
	// Apply removes the named students' assignments and batch-inserts the
	// staged ones in one transaction.
	Apply(rutaID uint, removeEstudianteIDs []uint, inserts []models.RutaEstudiante) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetRuta(rutaID uint) (*models.Ruta, error) {
	var ruta models.Ruta
	if err := s.db.First(&ruta, rutaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRutaNoEncontrada
		}
		return nil, err
	}
	return &ruta, nil
}

func (s *gormStore) ListAsignaciones(rutaID uint) ([]models.RutaEstudiante, error) {
	var asignaciones []models.RutaEstudiante
	err := s.db.Where("ruta_id = ?", rutaID).Find(&asignaciones).Error
	return asignaciones, err
}

func (s *gormStore) GetEstudiantes(ids []uint) ([]models.Estudiante, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var estudiantes []models.Estudiante
	err := s.db.Where("id IN ?", ids).Find(&estudiantes).Error
	return estudiantes, err
}

func (s *gormStore) ActiveParada(estudianteID uint, tipo string) (*models.Parada, error) {
	var parada models.Parada
	err := s.db.Where("estudiante_id = ? AND tipo = ? AND activa = ?", estudianteID, tipo, true).
		First(&parada).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parada, nil
}

func (s *gormStore) Apply(rutaID uint, removeEstudianteIDs []uint, inserts []models.RutaEstudiante) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// Hard delete: an assignment is replaced, never resurrected, and the
	// unique (ruta, estudiante) index must not trip over soft-deleted rows.
	if len(removeEstudianteIDs) > 0 {
		if err := tx.Unscoped().Where("ruta_id = ? AND estudiante_id IN ?", rutaID, removeEstudianteIDs).
			Delete(&models.RutaEstudiante{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if len(inserts) > 0 {
		if err := tx.Create(&inserts).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}
