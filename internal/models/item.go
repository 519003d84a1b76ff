// Package models provides the data structures used throughout the application.
package models

// ItemRecord represents one parsed product line from a receipt.
// The csv tags match the column headers of the original export format,
// so generated files can be re-imported by the classify command.
// UnitPrice carries omitempty so an empty "P. Unit" field reads back as
// nil instead of failing decimal parsing.
type ItemRecord struct {
	Quantity    int    `csv:"Número de artículos"`
	Description string `csv:"Descripción"`
	UnitPrice   *Price `csv:"P. Unit,omitempty"`
	Amount      Price  `csv:"Importe"`
	Date        string `csv:"Fecha"`
	Time        string `csv:"Hora"`
	Category    string `csv:"Clasificación"`
}

// HasUnitPrice reports whether the receipt line carried a separate unit
// price token. A nil UnitPrice is preserved as-is; it is never derived
// from Amount and Quantity.
func (i ItemRecord) HasUnitPrice() bool {
	return i.UnitPrice != nil
}
