package entity

import "time"

// Warehouse representa una bodega física de la distribuidora.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
