package paradas

import (
	"errors"
	"fmt"
)

// ErrParadaNoEncontrada is returned when an operation targets a parada that
// does not exist or does not belong to the given student.
var ErrParadaNoEncontrada = errors.New("parada no encontrada")

// ConflictError means the (tipo, subtipo) slot is already occupied for the
// student; the caller should edit the existing parada instead.
type ConflictError struct {
	Tipo    string
	Subtipo string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ya existe una parada %s/%s para este estudiante", e.Tipo, e.Subtipo)
}

// ValidationError identifies the offending field of a malformed input.
type ValidationError struct {
	Campo   string
	Detalle string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s: %s", e.Campo, e.Detalle)
}
