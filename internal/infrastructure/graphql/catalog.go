// Package graphql contiene el cliente de la API de datos: catálogo tipado de operaciones,
// transporte HTTP, caché de respuestas con invalidación explícita y los adaptadores de
// repositorio que usan los casos de uso.
package graphql

import "github.com/mdaskas/customer-console/internal/domain/entity"

// Kind tipo de operación GraphQL.
type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Operation entrada del catálogo. V es la forma de las variables y R la forma de la respuesta
// (el objeto "data"). Entities son los tipos que la operación lee (query) o modifica (mutation).
type Operation[V any, R any] struct {
	Name     string
	Kind     Kind
	Document string
	Entities []entity.Type
}

// OperationInfo metadatos de una operación sin sus tipos genéricos.
type OperationInfo struct {
	Name     string
	Kind     Kind
	Document string
	Entities []entity.Type
}

// Info devuelve los metadatos de la operación.
func (op Operation[V, R]) Info() OperationInfo {
	return OperationInfo{Name: op.Name, Kind: op.Kind, Document: op.Document, Entities: op.Entities}
}

// ── Formas de variables ───────────────────────────────────────────────────────

// NoVars operaciones sin variables.
type NoVars struct{}

type IDVars struct {
	ID string `json:"id"`
}

type IDsVars struct {
	IDs []string `json:"ids"`
}

type CodeVars struct {
	Code string `json:"code"`
}

// CreateCustomerInput se envía completo: phone viaja aunque esté vacío.
type CreateCustomerInput struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	BillingTermsCode  string `json:"billingTermsCode"`
	ShippingTermsCode string `json:"shippingTermsCode"`
}

type CreateCustomerVars struct {
	Input CreateCustomerInput `json:"input"`
}

// UpdateCustomerInput solo lleva los campos que cambian.
type UpdateCustomerInput struct {
	Name              *string `json:"name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	BillingTermsCode  *string `json:"billingTermsCode,omitempty"`
	ShippingTermsCode *string `json:"shippingTermsCode,omitempty"`
}

type UpdateCustomerVars struct {
	Code  string              `json:"code"`
	Input UpdateCustomerInput `json:"input"`
}

type CreateBillingTermInput struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	DueDays     int    `json:"dueDays"`
}

type CreateBillingTermVars struct {
	Input CreateBillingTermInput `json:"input"`
}

type UpdateBillingTermInput struct {
	Description *string `json:"description,omitempty"`
	DueDays     *int    `json:"dueDays,omitempty"`
}

type UpdateBillingTermVars struct {
	Code  string                 `json:"code"`
	Input UpdateBillingTermInput `json:"input"`
}

type CreateShippingTermInput struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type CreateShippingTermVars struct {
	Input CreateShippingTermInput `json:"input"`
}

type UpdateShippingTermInput struct {
	Description *string `json:"description,omitempty"`
}

type UpdateShippingTermVars struct {
	Code  string                  `json:"code"`
	Input UpdateShippingTermInput `json:"input"`
}

// ── Formas de respuesta ───────────────────────────────────────────────────────

type CustomerNode struct {
	ID                string `json:"id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	BillingTermsCode  string `json:"billingTermsCode"`
	ShippingTermsCode string `json:"shippingTermsCode"`
}

type BillingTermNode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	DueDays     int    `json:"dueDays"`
}

type ShippingTermNode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type CustomersData struct {
	Customers []CustomerNode `json:"customers"`
}

type CustomerData struct {
	Customer *CustomerNode `json:"customer"`
}

type CreateCustomerData struct {
	CreateCustomer CustomerNode `json:"createCustomer"`
}

type UpdateCustomerData struct {
	UpdateCustomer *CustomerNode `json:"updateCustomer"`
}

type BillingTermsData struct {
	BillingTerms []BillingTermNode `json:"billingTerms"`
}

type BillingTermData struct {
	BillingTerm *BillingTermNode `json:"billingTerm"`
}

type CreateBillingTermData struct {
	CreateBillingTerms BillingTermNode `json:"createBillingTerms"`
}

type UpdateBillingTermData struct {
	UpdateBillingTerms *BillingTermNode `json:"updateBillingTerms"`
}

type ShippingTermsData struct {
	ShippingTerms []ShippingTermNode `json:"shippingTerms"`
}

type ShippingTermData struct {
	ShippingTerm *ShippingTermNode `json:"shippingTerm"`
}

type CreateShippingTermData struct {
	CreateShippingTerms ShippingTermNode `json:"createShippingTerms"`
}

type UpdateShippingTermData struct {
	UpdateShippingTerms *ShippingTermNode `json:"updateShippingTerms"`
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

var customerTypes = []entity.Type{entity.TypeCustomer}
var billingTypes = []entity.Type{entity.TypeBillingTerm}
var shippingTypes = []entity.Type{entity.TypeShippingTerm}

var GetCustomersForListing = Operation[NoVars, CustomersData]{
	Name:     "GetCustomersForListing",
	Kind:     KindQuery,
	Entities: customerTypes,
	Document: `query GetCustomersForListing {
	customers {
		id
		code
		name
		email
		phone
	}
}`,
}

var GetCustomerByID = Operation[IDVars, CustomerData]{
	Name:     "GetCustomerById",
	Kind:     KindQuery,
	Entities: customerTypes,
	Document: `query GetCustomerById($id: ID!) {
	customer(id: $id) {
		id
		code
		name
		email
		phone
		billingTermsCode
		shippingTermsCode
	}
}`,
}

var GetCustomersByIDs = Operation[IDsVars, CustomersData]{
	Name:     "GetCustomersById",
	Kind:     KindQuery,
	Entities: customerTypes,
	Document: `query GetCustomersById($ids: [ID!]!) {
	customers(ids: $ids) {
		id
		code
		name
		email
		phone
	}
}`,
}

var CreateCustomer = Operation[CreateCustomerVars, CreateCustomerData]{
	Name:     "CreateCustomer",
	Kind:     KindMutation,
	Entities: customerTypes,
	Document: `mutation CreateCustomer($input: CreateCustomerInput!) {
	createCustomer(input: $input) {
		id
		code
		name
		email
		phone
		billingTermsCode
		shippingTermsCode
	}
}`,
}

var UpdateCustomer = Operation[UpdateCustomerVars, UpdateCustomerData]{
	Name:     "UpdateCustomer",
	Kind:     KindMutation,
	Entities: customerTypes,
	Document: `mutation UpdateCustomer($code: ID!, $input: UpdateCustomerInput!) {
	updateCustomer(code: $code, input: $input) {
		id
		code
		name
		email
		phone
		billingTermsCode
		shippingTermsCode
	}
}`,
}

var GetBillingTerms = Operation[NoVars, BillingTermsData]{
	Name:     "GetBillingTerms",
	Kind:     KindQuery,
	Entities: billingTypes,
	Document: `query GetBillingTerms {
	billingTerms {
		code
		description
		dueDays
	}
}`,
}

var GetBillingTerm = Operation[CodeVars, BillingTermData]{
	Name:     "GetBillingTerm",
	Kind:     KindQuery,
	Entities: billingTypes,
	Document: `query GetBillingTerm($code: ID!) {
	billingTerm(code: $code) {
		code
		description
		dueDays
	}
}`,
}

var CreateBillingTerm = Operation[CreateBillingTermVars, CreateBillingTermData]{
	Name:     "CreateBillingTerms",
	Kind:     KindMutation,
	Entities: billingTypes,
	Document: `mutation CreateBillingTerms($input: CreateBillingTermsInput!) {
	createBillingTerms(input: $input) {
		code
		description
		dueDays
	}
}`,
}

var UpdateBillingTerm = Operation[UpdateBillingTermVars, UpdateBillingTermData]{
	Name:     "UpdateBillingTerms",
	Kind:     KindMutation,
	Entities: billingTypes,
	Document: `mutation UpdateBillingTerms($code: ID!, $input: UpdateBillingTermsInput!) {
	updateBillingTerms(code: $code, input: $input) {
		code
		description
		dueDays
	}
}`,
}

var GetShippingTerms = Operation[NoVars, ShippingTermsData]{
	Name:     "GetShippingTerms",
	Kind:     KindQuery,
	Entities: shippingTypes,
	Document: `query GetShippingTerms {
	shippingTerms {
		code
		description
	}
}`,
}

var GetShippingTerm = Operation[CodeVars, ShippingTermData]{
	Name:     "GetShippingTerm",
	Kind:     KindQuery,
	Entities: shippingTypes,
	Document: `query GetShippingTerm($code: ID!) {
	shippingTerm(code: $code) {
		code
		description
	}
}`,
}

var CreateShippingTerm = Operation[CreateShippingTermVars, CreateShippingTermData]{
	Name:     "CreateShippingTerm",
	Kind:     KindMutation,
	Entities: shippingTypes,
	Document: `mutation CreateShippingTerm($input: CreateShippingTermsInput!) {
	createShippingTerms(input: $input) {
		code
		description
	}
}`,
}

var UpdateShippingTerm = Operation[UpdateShippingTermVars, UpdateShippingTermData]{
	Name:     "UpdateShippingTerms",
	Kind:     KindMutation,
	Entities: shippingTypes,
	Document: `mutation UpdateShippingTerms($code: ID!, $input: UpdateShippingTermsInput!) {
	updateShippingTerms(code: $code, input: $input) {
		code
		description
	}
}`,
}

// Catalog lista todas las operaciones conocidas por la consola.
func Catalog() []OperationInfo {
	return []OperationInfo{
		GetCustomersForListing.Info(),
		GetCustomerByID.Info(),
		GetCustomersByIDs.Info(),
		CreateCustomer.Info(),
		UpdateCustomer.Info(),
		GetBillingTerms.Info(),
		GetBillingTerm.Info(),
		CreateBillingTerm.Info(),
		UpdateBillingTerm.Info(),
		GetShippingTerms.Info(),
		GetShippingTerm.Info(),
		CreateShippingTerm.Info(),
		UpdateShippingTerm.Info(),
	}
}
