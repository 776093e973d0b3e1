package dto

// ListResponse envoltorio de listados. Items nunca es null: una lectura fallida se entrega vacía.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye la respuesta de listado.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// ErrorResponse cuerpo de error HTTP.
// MovementID solo viaja cuando el movimiento quedó escrito pero el saldo no (code PARTIAL_FAILURE).
type ErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	MovementID string `json:"movement_id,omitempty"`
}
