package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/auth"
	"github.com/mdaskas/customer-console/internal/application/customers"
	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/terms"
	"github.com/mdaskas/customer-console/internal/application/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *customers.UseCase
	BillingUC  *terms.BillingUseCase
	ShippingUC *terms.ShippingUseCase
	AuthUC     *auth.UseCase
	Validator  *validation.Validator
	Sessions   *SessionStore
}

// Router registra páginas y API.
func Router(app *fiber.App, deps RouterDeps) {
	// Públicas
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Post("/api/auth/login", authHandler.APILogin)
	app.Get("/about", AboutPage)

	// Protegidas (si el login está habilitado)
	protected := app.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/customers", fiber.StatusSeeOther)
	})

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	cust := protected.Group("/customers")
	cust.Get("/", customerHandler.List)
	cust.Post("/", customerHandler.Create)
	cust.Get("/new", customerHandler.New)
	cust.Get("/export.xlsx", customerHandler.Export)
	cust.Post("/import", customerHandler.Import)
	cust.Get("/:id/pdf", customerHandler.PDF)
	cust.Get("/:id", customerHandler.Detail)

	// Billing terms
	billingHandler := NewBillingTermHandler(deps.BillingUC, deps.Sessions)
	bt := protected.Group("/billing-terms")
	bt.Get("/", billingHandler.List)
	bt.Post("/", billingHandler.Create)
	bt.Get("/export.xlsx", billingHandler.Export)
	bt.Post("/import", billingHandler.Import)
	bt.Post("/:code/edit", billingHandler.Edit)
	bt.Post("/:code/save", billingHandler.Save)
	bt.Post("/:code/cancel", billingHandler.Cancel)

	// Shipping terms
	shippingHandler := NewShippingTermHandler(deps.ShippingUC, deps.Sessions)
	st := protected.Group("/shipping-terms")
	st.Get("/", shippingHandler.List)
	st.Post("/", shippingHandler.Create)
	st.Get("/export.xlsx", shippingHandler.Export)
	st.Post("/import", shippingHandler.Import)
	st.Post("/:code/edit", shippingHandler.Edit)
	st.Post("/:code/save", shippingHandler.Save)
	st.Post("/:code/cancel", shippingHandler.Cancel)

	// API JSON
	apiHandler := NewAPIHandler(deps.CustomerUC, deps.BillingUC, deps.ShippingUC)
	api := protected.Group("/api")
	api.Get("/customers", apiHandler.ListCustomers)
	api.Post("/customers", apiHandler.CreateCustomer)
	api.Get("/customers/:id", apiHandler.GetCustomer)
	api.Put("/customers/:code", apiHandler.UpdateCustomer)
	api.Get("/billing-terms", apiHandler.ListBillingTerms)
	api.Post("/billing-terms", apiHandler.CreateBillingTerm)
	api.Get("/billing-terms/:code", apiHandler.GetBillingTerm)
	api.Put("/billing-terms/:code", apiHandler.UpdateBillingTerm)
	api.Get("/shipping-terms", apiHandler.ListShippingTerms)
	api.Post("/shipping-terms", apiHandler.CreateShippingTerm)
	api.Get("/shipping-terms/:code", apiHandler.GetShippingTerm)
	api.Put("/shipping-terms/:code", apiHandler.UpdateShippingTerm)
}
