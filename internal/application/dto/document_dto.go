package dto

import "github.com/shopspring/decimal"

// PrintLine es la línea que consume el colaborador de impresión de
// documentos. La forma de estos campos es contrato exacto con esa capa:
// no renombrar ni reordenar sin coordinar con las plantillas.
type PrintLine struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCode    string          `json:"unitCode"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	PalletCount decimal.Decimal `json:"palletCount"`
	BoxCount    decimal.Decimal `json:"boxCount"`
}
