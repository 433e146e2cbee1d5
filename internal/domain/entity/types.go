package entity

// Type identifica una colección de registros; la caché de respuestas se invalida por tipo.
type Type string

const (
	TypeCustomer     Type = "customer"
	TypeBillingTerm  Type = "billing_term"
	TypeShippingTerm Type = "shipping_term"
)
