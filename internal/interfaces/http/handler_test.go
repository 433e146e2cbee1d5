package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdaskas/customer-console/internal/application/auth"
	"github.com/mdaskas/customer-console/internal/application/customers"
	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/internal/application/terms"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/infrastructure/graphql"
	"github.com/mdaskas/customer-console/internal/infrastructure/graphql/graphqltest"
	"github.com/mdaskas/customer-console/internal/infrastructure/pdf"
	apphttp "github.com/mdaskas/customer-console/internal/interfaces/http"
	"github.com/mdaskas/customer-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type consoleFixture struct {
	srv *graphqltest.Server
	app *fiber.App
}

func newConsole(t *testing.T, authCfg auth.Config) consoleFixture {
	t.Helper()
	srv := graphqltest.NewServer()
	t.Cleanup(srv.Close)
	client := graphql.NewClient(graphql.ClientConfig{Endpoint: srv.URL}, graphql.NewMemoryCache(0), logger.Nop())
	t.Cleanup(client.Close)

	val := validation.New()
	customerRepo := graphql.NewCustomerRepository(client)
	billingRepo := graphql.NewBillingTermRepository(client)
	shippingRepo := graphql.NewShippingTermRepository(client)
	billingUC := terms.NewBillingUseCase(billingRepo, client, val, logger.Nop())
	shippingUC := terms.NewShippingUseCase(shippingRepo, client, val, logger.Nop())
	customerUC := customers.NewUseCase(customerRepo, billingRepo, shippingRepo, client, val, pdf.NewMarotoCustomerSheet("test"), logger.Nop())

	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", Log: logger.Nop()})
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: customerUC,
		BillingUC:  billingUC,
		ShippingUC: shippingUC,
		AuthUC:     auth.NewUseCase(authCfg),
		Validator:  val,
		Sessions: apphttp.NewSessionStore(time.Minute,
			apphttp.TermEditors(billingUC, shippingUC, editor.ErrorPolicySurface, logger.Nop())),
	})
	return consoleFixture{srv: srv, app: app}
}

func (f consoleFixture) do(t *testing.T, req *http.Request, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func get(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func diffVars(t *testing.T, want, got map[string]interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variables (-want +got):\n%s", diff)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomersPage_ListaVaciaContenedorVacio(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetCustomersForListing", map[string]interface{}{"customers": []interface{}{}})

	resp, body := f.do(t, get("/customers"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<ul id="customers">`)
	assert.NotContains(t, body, `class="row"`)
	assert.Equal(t, 1, f.srv.Count("GetCustomersForListing"))
}

func TestCustomersPage_PintaFilas(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetCustomersForListing", map[string]interface{}{"customers": []map[string]interface{}{
		{"id": "1", "code": "ACME", "name": "Acme Corp", "email": "ops@acme.test", "phone": "555"},
	}})

	resp, body := f.do(t, get("/customers"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Acme Corp (ops@acme.test) - 555")
	assert.Contains(t, body, `href="/customers/1"`)
}

func TestCustomersPage_FalloDelServidorMuestraMensaje(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Fail("GetCustomersForListing", "database unavailable", "INTERNAL_SERVER_ERROR")

	resp, body := f.do(t, get("/customers"))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "database unavailable")
	assert.NotContains(t, body, `<ul id="customers">`)
	assert.Equal(t, 1, f.srv.Count("GetCustomersForListing"), "sin reintentos")
}

func TestCustomerDetail_IDDesconocido404(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetCustomerById", map[string]interface{}{"customer": nil})

	resp, body := f.do(t, get("/customers/999"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Customer not found")
}

func TestCustomerCreate_ValidacionRetieneValores(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetBillingTerms", map[string]interface{}{"billingTerms": []interface{}{}})
	f.srv.Reply("GetShippingTerms", map[string]interface{}{"shippingTerms": []interface{}{}})

	resp, body := f.do(t, postForm("/customers", url.Values{"code": {"ACME"}, "email": {"not-an-email"}}))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Name is required")
	assert.Contains(t, body, "Enter a valid email address")
	assert.Contains(t, body, `value="ACME"`)
	assert.Equal(t, 0, f.srv.Count("CreateCustomer"))
}

func TestCustomerExport_DevuelveXLSX(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetCustomersForListing", map[string]interface{}{"customers": []map[string]interface{}{
		{"id": "1", "code": "ACME", "name": "Acme Corp", "email": "ops@acme.test"},
	}})

	resp, body := f.do(t, get("/customers/export.xlsx"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "customers.xlsx")
	assert.True(t, strings.HasPrefix(body, "PK"), "un xlsx es un zip")
}

// ──────────────────────────────────────────────────────────────────────────────
// Condiciones de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestBillingTermsCreate_NET30RedirigeYRefresca(t *testing.T) {
	f := newConsole(t, auth.Config{})
	var created atomic.Bool
	f.srv.Handle("GetBillingTerms", func(graphqltest.Call) (int, interface{}) {
		list := []map[string]interface{}{}
		if created.Load() {
			list = append(list, map[string]interface{}{"code": "NET30", "description": "Net 30 days", "dueDays": 30})
		}
		return http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"billingTerms": list}}
	})
	f.srv.Handle("CreateBillingTerms", func(call graphqltest.Call) (int, interface{}) {
		created.Store(true)
		return http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"createBillingTerms": call.Variables["input"]}}
	})

	_, body := f.do(t, get("/billing-terms"))
	assert.NotContains(t, body, "Net 30 days")

	resp, _ := f.do(t, postForm("/billing-terms", url.Values{
		"code": {"NET30"}, "description": {"Net 30 days"}, "dueDays": {"30"},
	}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/billing-terms?created=NET30", resp.Header.Get("Location"))

	require.Equal(t, 1, f.srv.Count("CreateBillingTerms"))
	diffVars(t, map[string]interface{}{
		"input": map[string]interface{}{"code": "NET30", "description": "Net 30 days", "dueDays": float64(30)},
	}, f.srv.Calls("CreateBillingTerms")[0].Variables)

	resp, body = f.do(t, get("/billing-terms?created=NET30"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Net 30 days (30 days)")
	assert.Equal(t, 2, f.srv.Count("GetBillingTerms"), "el alta invalida el listado en caché")
	assert.Contains(t, body, `id="code" name="code" type="text" value=""`, "formulario reiniciado")
}

func TestBillingTermsCreate_InvalidoSinRed(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetBillingTerms", map[string]interface{}{"billingTerms": []interface{}{}})

	resp, body := f.do(t, postForm("/billing-terms", url.Values{
		"code": {"NET30"}, "description": {""}, "dueDays": {"0"},
	}))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Description is required")
	assert.Contains(t, body, "Due days must be a positive integer")
	assert.Contains(t, body, `value="NET30"`)
	assert.Equal(t, 0, f.srv.Count("CreateBillingTerms"))
}

func TestBillingTermsCreate_ErrorDelServidorConValores(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetBillingTerms", map[string]interface{}{"billingTerms": []interface{}{}})
	f.srv.Fail("CreateBillingTerms", "code NET30 already exists", "DUPLICATE")

	resp, body := f.do(t, postForm("/billing-terms", url.Values{
		"code": {"NET30"}, "description": {"Net 30 days"}, "dueDays": {"30"},
	}))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "code NET30 already exists")
	assert.Contains(t, body, `value="Net 30 days"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Condiciones de envío: edición en línea
// ──────────────────────────────────────────────────────────────────────────────

func replyShipping(srv *graphqltest.Server) {
	srv.Reply("GetShippingTerms", map[string]interface{}{"shippingTerms": []map[string]interface{}{
		{"code": "STD", "description": "Standard"},
	}})
	srv.Reply("GetShippingTerm", map[string]interface{}{"shippingTerm": map[string]interface{}{
		"code": "STD", "description": "Standard",
	}})
	srv.Reply("UpdateShippingTerms", map[string]interface{}{"updateShippingTerms": map[string]interface{}{
		"code": "STD", "description": "Standard Ground",
	}})
}

func TestShippingTermsInline_EnterGuardaUnaMutacion(t *testing.T) {
	f := newConsole(t, auth.Config{})
	replyShipping(f.srv)

	resp, _ := f.do(t, postForm("/shipping-terms/STD/edit", nil))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	sid := cookieNamed(resp, "sid")
	require.NotNil(t, sid)

	_, body := f.do(t, get("/shipping-terms"), sid)
	assert.Contains(t, body, `action="/shipping-terms/STD/save"`)
	assert.Contains(t, body, `value="Standard"`)

	resp, _ = f.do(t, postForm("/shipping-terms/STD/save", url.Values{
		"description": {"Standard Ground"}, "key": {"Enter"},
	}), sid)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/shipping-terms#row-STD", resp.Header.Get("Location"))

	require.Equal(t, 1, f.srv.Count("UpdateShippingTerms"))
	diffVars(t, map[string]interface{}{
		"code":  "STD",
		"input": map[string]interface{}{"description": "Standard Ground"},
	}, f.srv.Calls("UpdateShippingTerms")[0].Variables)

	_, body = f.do(t, get("/shipping-terms"), sid)
	assert.NotContains(t, body, `action="/shipping-terms/STD/save"`, "la fila vuelve a Display")
}

func TestShippingTermsInline_CodigoConEspacioLlegaDecodificado(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetShippingTerms", map[string]interface{}{"shippingTerms": []map[string]interface{}{
		{"code": "EXP AIR", "description": "Express"},
	}})
	f.srv.Reply("GetShippingTerm", map[string]interface{}{"shippingTerm": map[string]interface{}{
		"code": "EXP AIR", "description": "Express",
	}})
	f.srv.Reply("UpdateShippingTerms", map[string]interface{}{"updateShippingTerms": map[string]interface{}{
		"code": "EXP AIR", "description": "Express 2",
	}})

	resp, _ := f.do(t, postForm("/shipping-terms/EXP%20AIR/edit", nil))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	sid := cookieNamed(resp, "sid")
	require.NotNil(t, sid)
	require.Equal(t, 1, f.srv.Count("GetShippingTerm"))
	assert.Equal(t, "EXP AIR", f.srv.Calls("GetShippingTerm")[0].Variables["code"])

	_, body := f.do(t, get("/shipping-terms"), sid)
	assert.Contains(t, body, `action="/shipping-terms/EXP%20AIR/save"`)

	resp, _ = f.do(t, postForm("/shipping-terms/EXP%20AIR/save", url.Values{
		"description": {"Express 2"}, "key": {"Enter"},
	}), sid)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/shipping-terms#row-EXP%20AIR", resp.Header.Get("Location"))

	require.Equal(t, 1, f.srv.Count("UpdateShippingTerms"))
	diffVars(t, map[string]interface{}{
		"code":  "EXP AIR",
		"input": map[string]interface{}{"description": "Express 2"},
	}, f.srv.Calls("UpdateShippingTerms")[0].Variables)
}

func TestAPI_ShippingTermConEspacioEnElCodigo(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetShippingTerm", map[string]interface{}{"shippingTerm": map[string]interface{}{
		"code": "EXP AIR", "description": "Express",
	}})

	resp, body := f.do(t, get("/api/shipping-terms/EXP%20AIR"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"code":"EXP AIR"`)
	assert.Equal(t, "EXP AIR", f.srv.Calls("GetShippingTerm")[0].Variables["code"])
}

func TestShippingTermsInline_EscapeDescartaSinMutacion(t *testing.T) {
	f := newConsole(t, auth.Config{})
	replyShipping(f.srv)

	resp, _ := f.do(t, postForm("/shipping-terms/STD/edit", nil))
	sid := cookieNamed(resp, "sid")
	require.NotNil(t, sid)

	resp, _ = f.do(t, postForm("/shipping-terms/STD/cancel", url.Values{"key": {"Escape"}}), sid)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 0, f.srv.Count("UpdateShippingTerms"))

	_, body := f.do(t, get("/shipping-terms"), sid)
	assert.NotContains(t, body, `action="/shipping-terms/STD/save"`)
	assert.Contains(t, body, `action="/shipping-terms/STD/edit"`)
}

func TestShippingTermsInline_DescripcionVaciaSigueEditando(t *testing.T) {
	f := newConsole(t, auth.Config{})
	replyShipping(f.srv)

	resp, _ := f.do(t, postForm("/shipping-terms/STD/edit", nil))
	sid := cookieNamed(resp, "sid")
	require.NotNil(t, sid)

	resp, body := f.do(t, postForm("/shipping-terms/STD/save", url.Values{"description": {""}}), sid)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Description is required")
	assert.Contains(t, body, `action="/shipping-terms/STD/save"`)
	assert.Equal(t, 0, f.srv.Count("UpdateShippingTerms"))
}

func TestShippingTermsInline_SesionesIndependientes(t *testing.T) {
	f := newConsole(t, auth.Config{})
	replyShipping(f.srv)

	resp, _ := f.do(t, postForm("/shipping-terms/STD/edit", nil))
	require.NotNil(t, cookieNamed(resp, "sid"))

	// Otro navegador (sin cookie) ve la fila en Display.
	_, body := f.do(t, get("/shipping-terms"))
	assert.NotContains(t, body, `action="/shipping-terms/STD/save"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ListBillingTerms(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetBillingTerms", map[string]interface{}{"billingTerms": []map[string]interface{}{
		{"code": "NET30", "description": "Net 30 days", "dueDays": 30},
	}})

	resp, body := f.do(t, get("/api/billing-terms"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.BillingTermListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, []dto.BillingTermResponse{{Code: "NET30", Description: "Net 30 days", DueDays: 30}}, out.BillingTerms)
}

func TestAPI_CreateBillingTermInvalido400ConCampos(t *testing.T) {
	f := newConsole(t, auth.Config{})

	resp, body := f.do(t, postJSON("/api/billing-terms", `{"code":"NET30","description":"","dueDays":0}`))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "Description is required", out.Fields["description"])
	assert.Equal(t, "Due days must be a positive integer", out.Fields["dueDays"])
	assert.Equal(t, 0, f.srv.Count(""))
}

func TestAPI_CustomerNoEncontrado(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetCustomerById", map[string]interface{}{"customer": nil})

	resp, body := f.do(t, get("/api/customers/42"))
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"code":"NOT_FOUND"`)
}

func TestAPI_CustomersPorIDs(t *testing.T) {
	f := newConsole(t, auth.Config{})
	f.srv.Reply("GetCustomersById", map[string]interface{}{"customers": []map[string]interface{}{
		{"id": "1", "code": "ACME", "name": "Acme Corp", "email": "ops@acme.test"},
	}})

	resp, _ := f.do(t, get("/api/customers?ids=1,%202"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, f.srv.Count("GetCustomersById"))
	diffVars(t, map[string]interface{}{"ids": []interface{}{"1", "2"}}, f.srv.Calls("GetCustomersById")[0].Variables)
}

func TestHealth(t *testing.T) {
	f := newConsole(t, auth.Config{})
	resp, body := f.do(t, get("/health"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func withLogin(t *testing.T) auth.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.Config{Operator: "ops", PasswordHash: string(hash), JWTSecret: "test-secret", Issuer: "console-test"}
}

func TestLogin_CredencialesValidasFijanCookie(t *testing.T) {
	f := newConsole(t, withLogin(t))
	f.srv.Reply("GetCustomersForListing", map[string]interface{}{"customers": []interface{}{}})

	resp, _ := f.do(t, get("/customers"))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = f.do(t, postForm("/login", url.Values{"username": {"ops"}, "password": {"s3cret"}}))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	session := cookieNamed(resp, "console_session")
	require.NotNil(t, session)

	resp, body := f.do(t, get("/customers"), session)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Sign out")
}

func TestLogin_PasswordIncorrecto401(t *testing.T) {
	f := newConsole(t, withLogin(t))

	resp, body := f.do(t, postForm("/login", url.Values{"username": {"ops"}, "password": {"nope"}}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")
	assert.Nil(t, cookieNamed(resp, "console_session"))
}

func TestAPILogin_TokenBearer(t *testing.T) {
	f := newConsole(t, withLogin(t))
	f.srv.Reply("GetShippingTerms", map[string]interface{}{"shippingTerms": []interface{}{}})

	resp, body := f.do(t, postJSON("/api/auth/login", `{"username":"ops","password":"s3cret"}`))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "ops", out.Operator)

	req := get("/api/shipping-terms")
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp, _ = f.do(t, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
