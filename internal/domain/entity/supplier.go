package entity

import "time"

// Supplier es un proveedor de mercancía: una marca o una fábrica (Kind).
// Las órdenes de compra lo referencian vía SupplierRef, que exige que el
// Kind de la referencia coincida con el del proveedor.
type Supplier struct {
	ID        string
	Kind      SupplierKind
	Name      string
	TaxID     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
