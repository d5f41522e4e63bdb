package paradas

import (
	"strings"

	"ruta_segura/internal/models"
)

// Registry enforces the parada invariants: a student holds at most one parada
// per (tipo, subtipo) slot, and at most one parada per tipo is activa.
// Activating a parada deactivates its same-tipo siblings in the same write;
// deactivating the last one is allowed, the registry never auto-promotes.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// UpsertInput carries one create or update request.
// ParadaID nil means create; set, it names the parada to update.
type UpsertInput struct {
	ParadaID     *uint
	EstudianteID uint
	ColegioID    uint
	Tipo         string
	Subtipo      string
	Direccion    string
	Calle        string
	Numero       string
	Latitud      float64
	Longitud     float64
	Activa       bool
}

func (in *UpsertInput) validate() error {
	switch in.Tipo {
	case models.TipoRecogida, models.TipoEntrega:
	default:
		return &ValidationError{Campo: "tipo", Detalle: "debe ser recogida o entrega"}
	}
	switch in.Subtipo {
	case models.SubtipoPrincipal, models.SubtipoFamiliar:
	default:
		return &ValidationError{Campo: "subtipo", Detalle: "debe ser principal o familiar"}
	}
	if strings.TrimSpace(in.Direccion) == "" {
		return &ValidationError{Campo: "direccion", Detalle: "es obligatoria"}
	}
	if in.Latitud < -90 || in.Latitud > 90 {
		return &ValidationError{Campo: "latitud", Detalle: "fuera de rango"}
	}
	if in.Longitud < -180 || in.Longitud > 180 {
		return &ValidationError{Campo: "longitud", Detalle: "fuera de rango"}
	}
	return nil
}

// Upsert creates or updates one parada for the student named in the input.
// Creating into an occupied (tipo, subtipo) slot fails with ConflictError, as
// does moving an existing parada onto a slot another parada occupies.
func (r *Registry) Upsert(in UpsertInput) (*models.Parada, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := r.store.ListForEstudiante(in.EstudianteID)
	if err != nil {
		return nil, err
	}

	if in.ParadaID == nil {
		for i := range existing {
			if existing[i].Tipo == in.Tipo && existing[i].Subtipo == in.Subtipo {
				return nil, &ConflictError{Tipo: in.Tipo, Subtipo: in.Subtipo}
			}
		}
		parada := &models.Parada{
			EstudianteID: in.EstudianteID,
			ColegioID:    in.ColegioID,
			Tipo:         in.Tipo,
			Subtipo:      in.Subtipo,
			Direccion:    in.Direccion,
			Calle:        in.Calle,
			Numero:       in.Numero,
			Latitud:      in.Latitud,
			Longitud:     in.Longitud,
			Activa:       in.Activa,
		}
		if err := r.store.Insert(parada, in.Activa); err != nil {
			return nil, err
		}
		return parada, nil
	}

	var target *models.Parada
	for i := range existing {
		if existing[i].ID == *in.ParadaID {
			target = &existing[i]
			break
		}
	}
	if target == nil {
		return nil, ErrParadaNoEncontrada
	}
	for i := range existing {
		p := &existing[i]
		if p.ID != target.ID && p.Tipo == in.Tipo && p.Subtipo == in.Subtipo {
			return nil, &ConflictError{Tipo: in.Tipo, Subtipo: in.Subtipo}
		}
	}

	target.Tipo = in.Tipo
	target.Subtipo = in.Subtipo
	target.Direccion = in.Direccion
	target.Calle = in.Calle
	target.Numero = in.Numero
	target.Latitud = in.Latitud
	target.Longitud = in.Longitud
	target.Activa = in.Activa

	if err := r.store.Update(target, in.Activa); err != nil {
		return nil, err
	}
	return target, nil
}

// Delete removes the parada unconditionally; assignments referencing it are
// removed by the store in the same transaction.
func (r *Registry) Delete(id uint) error {
	return r.store.Delete(id)
}

// ActiveFor returns the single activa parada for the (estudiante, tipo) pair,
// or nil when the student has none.
func (r *Registry) ActiveFor(estudianteID uint, tipo string) (*models.Parada, error) {
	existing, err := r.store.ListForEstudiante(estudianteID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Tipo == tipo && existing[i].Activa {
			return &existing[i], nil
		}
	}
	return nil, nil
}
