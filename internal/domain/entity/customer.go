package entity

// Customer representa un cliente. Code es la clave de negocio (inmutable tras la creación);
// ID lo asigna el servidor y nunca se usa para dirigir una mutación.
type Customer struct {
	ID                string
	Code              string
	Name              string
	Email             string
	Phone             string // opcional
	BillingTermsCode  string // referencia a BillingTerm.Code
	ShippingTermsCode string // referencia a ShippingTerm.Code
}

// CustomerPatch campos modificables de un cliente; nil = sin cambio.
type CustomerPatch struct {
	Name              *string
	Email             *string
	Phone             *string
	BillingTermsCode  *string
	ShippingTermsCode *string
}
