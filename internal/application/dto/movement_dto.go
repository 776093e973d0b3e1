package dto

import "time"

// RecordMovementRequest body para POST /api/movements/{direction}.
// Date en formato YYYY-MM-DD; vacío toma el día actual.
type RecordMovementRequest struct {
	Date     string `json:"date,omitempty"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Note     string `json:"note,omitempty"`
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Direction string    `json:"direction"`
	Date      string    `json:"date"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
