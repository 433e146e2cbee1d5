package entity

// BillingTerm condición de pago (p. ej. NET30: vence a los 30 días).
type BillingTerm struct {
	Code        string
	Description string
	DueDays     int // entero positivo
}

// BillingTermPatch campos modificables; nil = sin cambio.
type BillingTermPatch struct {
	Description *string
	DueDays     *int
}
