package entity

// ShippingTerm condición de envío.
type ShippingTerm struct {
	Code        string
	Description string
}

// ShippingTermPatch campos modificables; nil = sin cambio.
type ShippingTermPatch struct {
	Description *string
}
