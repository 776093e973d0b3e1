package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los cinco primeros son los "tipos" de error que ve el llamador; el resto son causas
// más específicas que siempre viajan envueltas en uno de ellos.
var (
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrStore          = errors.New("falla de persistencia")
	ErrPartialFailure = errors.New("movimiento registrado, saldo sin actualizar")
	ErrConflict       = errors.New("conflicto de concurrencia en el saldo")

	ErrDuplicate = errors.New("recurso duplicado")
)

// Error es el error que cruza la frontera del núcleo de inventario.
// Kind es uno de los sentinels de arriba; MovementID solo se llena en ErrPartialFailure.
type Error struct {
	Kind       error
	Message    string
	MovementID string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.MovementID != "" {
		msg = fmt.Sprintf("%s (movimiento %s)", msg, e.MovementID)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap expone el tipo y la causa para que errors.Is funcione con ambos.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Validation construye un ErrInvalidInput con mensaje legible.
func Validation(msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

// NotFound construye un ErrNotFound.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Store envuelve una falla del almacenamiento subyacente.
func Store(msg string, err error) error {
	return &Error{Kind: ErrStore, Message: msg, Err: err}
}

// Conflict indica que el saldo no pudo actualizarse dentro del presupuesto de reintentos.
func Conflict(msg string, err error) error {
	return &Error{Kind: ErrConflict, Message: msg, Err: err}
}

// PartialFailure indica que el libro quedó escrito pero la proyección de saldo no.
func PartialFailure(movementID string, err error) error {
	return &Error{
		Kind:       ErrPartialFailure,
		Message:    "el saldo quedó desactualizado; ejecutar reparación",
		MovementID: movementID,
		Err:        err,
	}
}

var kinds = []error{ErrPartialFailure, ErrInvalidInput, ErrNotFound, ErrConflict, ErrStore}

// KindOf devuelve el tipo de error. ErrPartialFailure gana sobre la causa que envuelve;
// errores no clasificados se tratan como ErrStore.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrStore
}

// MovementIDOf devuelve el ID del movimiento asociado a un ErrPartialFailure, si existe.
func MovementIDOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.MovementID
	}
	return ""
}
