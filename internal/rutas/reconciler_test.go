package rutas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ruta_segura/internal/models"
	"ruta_segura/internal/rutas"
	"ruta_segura/internal/testdb"
)

func seedRuta(t *testing.T, db *gorm.DB, turno string) models.Ruta {
	t.Helper()
	ruta := models.Ruta{Nombre: "Ruta Centro", ColegioID: 1, Turno: turno}
	require.NoError(t, db.Create(&ruta).Error)
	return ruta
}

// seedEstudiante creates a student, optionally with an activa parada of the
// given tipo.
func seedEstudiante(t *testing.T, db *gorm.DB, nombre, codigo string, conParada string) (models.Estudiante, uint) {
	t.Helper()
	estudiante := models.Estudiante{Nombre: nombre, Codigo: codigo, ColegioID: 1, PadreID: 1, Activo: true}
	require.NoError(t, db.Create(&estudiante).Error)

	if conParada == "" {
		return estudiante, 0
	}
	parada := models.Parada{
		EstudianteID: estudiante.ID,
		ColegioID:    1,
		Tipo:         conParada,
		Subtipo:      models.SubtipoPrincipal,
		Direccion:    "Calle Real 1",
		Latitud:      -33.4,
		Longitud:     -70.6,
		Activa:       true,
	}
	require.NoError(t, db.Create(&parada).Error)
	return estudiante, parada.ID
}

func memberIDs(t *testing.T, db *gorm.DB, rutaID uint) []uint {
	t.Helper()
	var asignaciones []models.RutaEstudiante
	require.NoError(t, db.Where("ruta_id = ?", rutaID).Order("estudiante_id").Find(&asignaciones).Error)
	ids := make([]uint, 0, len(asignaciones))
	for _, a := range asignaciones {
		ids = append(ids, a.EstudianteID)
	}
	return ids
}

// The literal happy path: assign one student, then empty the ruta.
func TestReconcileAssignAndClear(t *testing.T) {
	db := testdb.Open(t)
	reconciler := rutas.NewReconciler(rutas.NewStore(db))
	ruta := seedRuta(t, db, models.TipoRecogida)
	s1, paradaID := seedEstudiante(t, db, "Lucía Pérez", "A-101", models.TipoRecogida)

	res, err := reconciler.Reconcile(ruta.ID, []uint{s1.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Agregados)
	assert.Equal(t, 0, res.Eliminados)
	assert.Empty(t, res.NoAsignables)

	var asignacion models.RutaEstudiante
	require.NoError(t, db.Where("ruta_id = ? AND estudiante_id = ?", ruta.ID, s1.ID).First(&asignacion).Error)
	assert.Equal(t, paradaID, asignacion.ParadaID)

	res, err = reconciler.Reconcile(ruta.ID, []uint{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Agregados)
	assert.Equal(t, 1, res.Eliminados)
	assert.Empty(t, res.NoAsignables)
	assert.Empty(t, memberIDs(t, db, ruta.ID))
}

func TestReconcileIdempotent(t *testing.T) {
	db := testdb.Open(t)
	reconciler := rutas.NewReconciler(rutas.NewStore(db))
	ruta := seedRuta(t, db, models.TipoRecogida)
	s1, _ := seedEstudiante(t, db, "Lucía Pérez", "A-101", models.TipoRecogida)
	s2, _ := seedEstudiante(t, db, "Marco Díaz", "A-102", models.TipoRecogida)

	target := []uint{s1.ID, s2.ID}
	res, err := reconciler.Reconcile(ruta.ID, target)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Agregados)

	res, err = reconciler.Reconcile(ruta.ID, target)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Agregados)
	assert.Equal(t, 0, res.Eliminados)
	assert.Empty(t, res.NoAsignables)
	assert.Equal(t, []uint{s1.ID, s2.ID}, memberIDs(t, db, ruta.ID))
}

func TestReconcileDiff(t *testing.T) {
	db := testdb.Open(t)
	reconciler := rutas.NewReconciler(rutas.NewStore(db))
	ruta := seedRuta(t, db, models.TipoRecogida)
	a, _ := seedEstudiante(t, db, "Ana", "A-1", models.TipoRecogida)
	b, paradaB := seedEstudiante(t, db, "Bruno", "A-2", models.TipoRecogida)
	c, _ := seedEstudiante(t, db, "Carla", "A-3", models.TipoRecogida)
	d, _ := seedEstudiante(t, db, "Diego", "A-4", models.TipoRecogida)

	_, err := reconciler.Reconcile(ruta.ID, []uint{a.ID, b.ID, c.ID})
	require.NoError(t, err)

	// {A,B,C} -> {B,C,D}: remove exactly A, add exactly D.
	res, err := reconciler.Reconcile(ruta.ID, []uint{b.ID, c.ID, d.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Agregados)
	assert.Equal(t, 1, res.Eliminados)
	assert.Empty(t, res.NoAsignables)
	assert.Equal(t, []uint{b.ID, c.ID, d.ID}, memberIDs(t, db, ruta.ID))

	// Unchanged members keep their original assignment rows.
	var asignacion models.RutaEstudiante
	require.NoError(t, db.Where("ruta_id = ? AND estudiante_id = ?", ruta.ID, b.ID).First(&asignacion).Error)
	assert.Equal(t, paradaB, asignacion.ParadaID)
}

func TestReconcileUnassignable(t *testing.T) {
	db := testdb.Open(t)
	reconciler := rutas.NewReconciler(rutas.NewStore(db))
	ruta := seedRuta(t, db, models.TipoRecogida)
	s1, _ := seedEstudiante(t, db, "Lucía Pérez", "A-101", models.TipoRecogida)
	// Diego only has an entrega parada, the ruta needs recogida.
	d, _ := seedEstudiante(t, db, "Diego Soto", "A-104", models.TipoEntrega)

	res, err := reconciler.Reconcile(ruta.ID, []uint{s1.ID, d.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Agregados)
	assert.Equal(t, 0, res.Eliminados)
	require.Len(t, res.NoAsignables, 1)
	assert.Equal(t, d.ID, res.NoAsignables[0].EstudianteID)
	assert.Equal(t, "Diego Soto", res.NoAsignables[0].Nombre)
	assert.Equal(t, []uint{s1.ID}, memberIDs(t, db, ruta.ID))
}

func TestReconcileUnknownAndInactive(t *testing.T) {
	db := testdb.Open(t)
	reconciler := rutas.NewReconciler(rutas.NewStore(db))
	ruta := seedRuta(t, db, models.TipoRecogida)
	inactivo, _ := seedEstudiante(t, db, "Pablo Ruiz", "A-105", models.TipoRecogida)
	require.NoError(t, db.Model(&models.Estudiante{}).Where("id = ?", inactivo.ID).Update("activo", false).Error)

	res, err := reconciler.Reconcile(ruta.ID, []uint{inactivo.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Agregados)
	assert.Len(t, res.NoAsignables, 2)
	assert.Empty(t, memberIDs(t, db, ruta.ID))
}

func TestReconcileRutaNotFound(t *testing.T) {
	db := testdb.Open(t)
	reconciler := rutas.NewReconciler(rutas.NewStore(db))

	_, err := reconciler.Reconcile(9999, []uint{1})
	assert.ErrorIs(t, err, rutas.ErrRutaNoEncontrada)
}

func TestReconcileDeduplicatesTarget(t *testing.T) {
	db := testdb.Open(t)
	reconciler := rutas.NewReconciler(rutas.NewStore(db))
	ruta := seedRuta(t, db, models.TipoRecogida)
	s1, _ := seedEstudiante(t, db, "Lucía Pérez", "A-101", models.TipoRecogida)

	res, err := reconciler.Reconcile(ruta.ID, []uint{s1.ID, s1.ID, s1.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Agregados)
	assert.Equal(t, []uint{s1.ID}, memberIDs(t, db, ruta.ID))
}
