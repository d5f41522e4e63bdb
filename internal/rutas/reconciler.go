package rutas

import (
	"ruta_segura/internal/models"
)

// NoAsignable names one student the reconciler could not place on the ruta.
type NoAsignable struct {
	EstudianteID uint   `json:"estudiante_id"`
	Nombre       string `json:"nombre"`
	Motivo       string `json:"motivo"`
}

// Resultado reports one reconciliation run. NoAsignables is never nil, so a
// partial result always enumerates who was skipped.
type Resultado struct {
	Agregados    int           `json:"agregados"`
	Eliminados   int           `json:"eliminados"`
	NoAsignables []NoAsignable `json:"no_asignables"`
}

// Reconciler converges a ruta's persisted assignments to a caller-supplied
// target set of students. It is idempotent: reconciling the same target twice
// performs no writes the second time.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile diffs the ruta's current members against target, removes students
// no longer listed and adds new ones using their activa parada for the ruta's
// turno. Students that are unknown, inactive, or lack such a parada end up in
// NoAsignables instead of failing the call. Students present in both sets are
// untouched.
func (r *Reconciler) Reconcile(rutaID uint, target []uint) (*Resultado, error) {
	ruta, err := r.store.GetRuta(rutaID)
	if err != nil {
		return nil, err
	}

	current, err := r.store.ListAsignaciones(rutaID)
	if err != nil {
		return nil, err
	}

	currentSet := make(map[uint]bool, len(current))
	for _, a := range current {
		currentSet[a.EstudianteID] = true
	}
	targetSet := make(map[uint]bool, len(target))
	for _, id := range target {
		targetSet[id] = true
	}

	var toRemove []uint
	for _, a := range current {
		if !targetSet[a.EstudianteID] {
			toRemove = append(toRemove, a.EstudianteID)
		}
	}
	var toAdd []uint
	staged := make(map[uint]bool, len(target))
	for _, id := range target {
		if !currentSet[id] && !staged[id] {
			toAdd = append(toAdd, id)
			staged[id] = true
		}
	}

	estudiantes, err := r.store.GetEstudiantes(toAdd)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Estudiante, len(estudiantes))
	for _, e := range estudiantes {
		byID[e.ID] = e
	}

	res := &Resultado{NoAsignables: []NoAsignable{}}
	var inserts []models.RutaEstudiante
	for _, id := range toAdd {
		est, ok := byID[id]
		if !ok {
			res.NoAsignables = append(res.NoAsignables, NoAsignable{
				EstudianteID: id,
				Motivo:       "el estudiante no existe",
			})
			continue
		}
		if !est.Activo {
			res.NoAsignables = append(res.NoAsignables, NoAsignable{
				EstudianteID: id,
				Nombre:       est.Nombre,
				Motivo:       "el estudiante está inactivo",
			})
			continue
		}
		parada, err := r.store.ActiveParada(id, ruta.Turno)
		if err != nil {
			return nil, err
		}
		if parada == nil {
			res.NoAsignables = append(res.NoAsignables, NoAsignable{
				EstudianteID: id,
				Nombre:       est.Nombre,
				Motivo:       "sin parada activa de " + ruta.Turno,
			})
			continue
		}
		inserts = append(inserts, models.RutaEstudiante{
			RutaID:       rutaID,
			EstudianteID: id,
			ParadaID:     parada.ID,
		})
	}

	if len(toRemove) > 0 || len(inserts) > 0 {
		if err := r.store.Apply(rutaID, toRemove, inserts); err != nil {
			return nil, err
		}
	}

	res.Agregados = len(inserts)
	res.Eliminados = len(toRemove)
	return res, nil
}
