package http_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
	"github.com/jhoicas/bananera-ledger/internal/application/loan"
	"github.com/jhoicas/bananera-ledger/internal/application/payroll"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bananera-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/bananera-ledger/pkg/jwt"
)

type stubPayslip struct{}

func (stubPayslip) GeneratePayslip(_ context.Context, line *entity.PayrollLine) ([]byte, error) {
	return []byte("%PDF-stub " + line.ID), nil
}

func newLedgerApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	clock := ports.FixedClock{At: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	payrollUC := payroll.NewUseCase(store, store.Payroll(), nil, clock, nil, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:        inventory.NewLedgerUseCase(store, store.StockRecords(), store.Movements(), nil, clock, nil, nil, nil),
		Alerts:        inventory.NewAlertUseCase(store, store.Alerts(), store.StockRecords(), nil, clock, nil),
		Replenishment: inventory.NewReplenishmentUseCase(store.StockRecords()),
		Payroll:       payrollUC,
		Payslip:       payroll.NewPayslipUseCase(payrollUC, stubPayslip{}),
		Loans:         loan.NewUseCase(store, store.Loans(), nil, clock, nil, nil),
		JWTSecret:     testJWTSecret,
	})
	return app
}

func bearer(t *testing.T, role, siteID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, siteID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call lanza la petición y devuelve status y cuerpo decodificado (nil si no es JSON).
func call(t *testing.T, app *fiber.App, method, path, auth, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func createStock(t *testing.T, app *fiber.App, auth string) map[string]any {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/inventory/stock", auth,
		`{"site_id":"otra-finca","name":"funda plástica","category":"protector","unit":"rollo","initial_quantity":10,"reorder_threshold":4,"unit_price":"12.50"}`)
	require.Equal(t, http.StatusCreated, status, body)
	return body["record"].(map[string]any)
}

func TestInventoryRoutes_MovimientosYAlertas(t *testing.T) {
	app := newLedgerApp(t)
	auth := bearer(t, apphttp.RoleBodeguero, testSiteID)

	record := createStock(t, app, auth)
	assert.Equal(t, testSiteID, record["site_id"], "un rol de finca solo crea en su finca")
	id := record["id"].(string)

	status, body := call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/movements", auth,
		`{"kind":"outflow","amount":11}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/movements", auth,
		`{"kind":"outflow","amount":7,"note":"enfunde lote 3"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "3", body["record"].(map[string]any)["quantity_on_hand"])
	require.NotNil(t, body["alert"], "bajar del mínimo genera alerta")
	alertID := body["alert"].(map[string]any)["id"].(string)

	status, body = call(t, app, http.MethodGet, "/api/inventory/stock/"+id+"/movements", auth, "")
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "inflow", items[0].(map[string]any)["kind"])
	assert.Equal(t, "outflow", items[1].(map[string]any)["kind"])
	assert.EqualValues(t, 2, body["page"].(map[string]any)["total"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/stock/"+id+"/movements?limit=1&offset=1", auth, "")
	require.Equal(t, http.StatusOK, status)
	items = body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "outflow", items[0].(map[string]any)["kind"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/replenishment", auth, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = call(t, app, http.MethodPost, "/api/alerts/"+alertID+"/acknowledge", auth, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["acknowledged"])
}

func TestInventoryRoutes_AlcancePorFinca(t *testing.T) {
	app := newLedgerApp(t)
	record := createStock(t, app, bearer(t, apphttp.RoleSupervisorFinca, "finca-norte"))
	id := record["id"].(string)

	status, body := call(t, app, http.MethodGet, "/api/inventory/stock/"+id, bearer(t, apphttp.RoleBodeguero, "finca-sur"), "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/movements",
		bearer(t, apphttp.RoleBodeguero, "finca-sur"), `{"kind":"inflow","amount":1}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodGet, "/api/inventory/stock/"+id, bearer(t, apphttp.RoleGerente, ""), "")
	assert.Equal(t, http.StatusOK, status, "gerente consulta todas las fincas")

	status, _ = call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/movements",
		bearer(t, apphttp.RoleGerente, ""), `{"kind":"inflow","amount":1}`)
	assert.Equal(t, http.StatusForbidden, status, "gerente solo consulta inventario")

	status, body = call(t, app, http.MethodGet, "/api/inventory/stock/no-existe", bearer(t, apphttp.RoleAdministrador, ""), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestPayrollRoutes_MaquinaDeEstados(t *testing.T) {
	app := newLedgerApp(t)
	auth := bearer(t, apphttp.RoleContadorRRHH, "")

	status, body := call(t, app, http.MethodPost, "/api/payroll", auth,
		`{"employee_id":"emp-7","pay_date":"2026-03-31","period_start":"2026-03-01","period_end":"2026-03-31","base_salary":450,"overtime":30,"bonuses":10,"deductions":20}`)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "470", body["total_payable"])
	assert.Equal(t, "pending", body["status"])
	id := body["id"].(string)

	status, body = call(t, app, http.MethodPatch, "/api/payroll/"+id, auth, `{"bonuses":15}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "475", body["total_payable"])

	status, _ = call(t, app, http.MethodPost, "/api/payroll/"+id+"/pay", auth, "")
	assert.Equal(t, http.StatusConflict, status, "no se paga sin aprobar")

	status, _ = call(t, app, http.MethodPost, "/api/payroll/"+id+"/approve", auth, "")
	require.Equal(t, http.StatusOK, status)
	status, body = call(t, app, http.MethodPost, "/api/payroll/"+id+"/pay", auth, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "paid", body["status"])

	status, body = call(t, app, http.MethodPost, "/api/payroll/"+id+"/pay", auth, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE_TRANSITION", body["code"])

	req := httptest.NewRequest(http.MethodGet, "/api/payroll/"+id+"/payslip", nil)
	req.Header.Set("Authorization", bearer(t, apphttp.RoleGerente, ""))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "rol_emp-7_2026-03-31.pdf")
}

func TestPayrollRoutes_Validaciones(t *testing.T) {
	app := newLedgerApp(t)
	auth := bearer(t, apphttp.RoleAdministrador, "")

	status, body := call(t, app, http.MethodPost, "/api/payroll", auth,
		`{"employee_id":"emp-7","pay_date":"31/03/2026","period_start":"2026-03-01","period_end":"2026-03-31"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/payroll", auth,
		`{"employee_id":"emp-7","pay_date":"2026-03-31","period_start":"2026-03-01","period_end":"2026-03-31","base_salary":100,"deductions":150}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PAYROLL_LINE", body["code"])

	status, _ = call(t, app, http.MethodPost, "/api/payroll", bearer(t, apphttp.RoleBodeguero, "finca-1"), `{}`)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLoanRoutes_AbonosYCuotas(t *testing.T) {
	app := newLedgerApp(t)
	auth := bearer(t, apphttp.RoleContadorRRHH, "")

	status, body := call(t, app, http.MethodPost, "/api/loans", auth,
		`{"employee_id":"emp-3","principal":300,"installment_count":3,"reason":"anticipo"}`)
	require.Equal(t, http.StatusCreated, status, body)
	id := body["id"].(string)

	status, body = call(t, app, http.MethodPost, "/api/loans/"+id+"/payments", auth, `{"amount":250,"installments_paid":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "50", body["outstanding"])
	assert.EqualValues(t, 2, body["installments_paid"])

	status, body = call(t, app, http.MethodPost, "/api/loans/"+id+"/payments", auth, `{"amount":51}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "OVERPAYMENT_REJECTED", body["code"])

	status, body = call(t, app, http.MethodPut, "/api/loans/"+id+"/installments", auth, `{"installments_paid":4}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INSTALLMENT_COUNT", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/loans/"+id+"/payments", auth, `{"amount":50}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "paid", body["status"])
}

func TestInventoryRoutes_OrdenDeCompra(t *testing.T) {
	app := newLedgerApp(t)
	auth := bearer(t, apphttp.RoleBodeguero, testSiteID)
	id := createStock(t, app, auth)["id"].(string)

	status, _ := call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/movements", auth, `{"kind":"outflow","amount":8}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/order", bearer(t, apphttp.RoleGerente, ""), "")
	assert.Equal(t, http.StatusForbidden, status, "gerente no genera pedidos")
	status, _ = call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/order", bearer(t, apphttp.RoleBodeguero, "finca-sur"), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/order", auth, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["order_placed"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/replenishment", auth, "")
	require.Equal(t, http.StatusOK, status)
	list := body["replenishments"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0].(map[string]any)["order_placed"])

	status, body = call(t, app, http.MethodPost, "/api/inventory/stock/"+id+"/movements", auth, `{"kind":"inflow","amount":10}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, false, body["record"].(map[string]any)["order_placed"], "la entrada que repone cierra el pedido")
}

func TestEmployeeRoutes_Historial(t *testing.T) {
	app := newLedgerApp(t)
	auth := bearer(t, apphttp.RoleContadorRRHH, "")

	for _, body := range []string{
		`{"employee_id":"emp-5","pay_date":"2026-01-31","period_start":"2026-01-01","period_end":"2026-01-31","base_salary":400}`,
		`{"employee_id":"emp-5","pay_date":"2026-02-28","period_start":"2026-02-01","period_end":"2026-02-28","base_salary":410}`,
		`{"employee_id":"emp-6","pay_date":"2026-02-28","period_start":"2026-02-01","period_end":"2026-02-28","base_salary":390}`,
	} {
		status, out := call(t, app, http.MethodPost, "/api/payroll", auth, body)
		require.Equal(t, http.StatusCreated, status, out)
	}
	status, out := call(t, app, http.MethodPost, "/api/loans", auth, `{"employee_id":"emp-5","principal":120,"installment_count":2}`)
	require.Equal(t, http.StatusCreated, status, out)

	status, body := call(t, app, http.MethodGet, "/api/employees/emp-5/payroll", bearer(t, apphttp.RoleGerente, ""), "")
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 2, body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.True(t, strings.HasPrefix(items[0].(map[string]any)["pay_date"].(string), "2026-02-28"))
	assert.Equal(t, "410", items[0].(map[string]any)["total_payable"])

	status, body = call(t, app, http.MethodGet, "/api/employees/emp-5/loans", auth, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	assert.Equal(t, "120", body["items"].([]any)[0].(map[string]any)["outstanding"])

	status, _ = call(t, app, http.MethodGet, "/api/employees/emp-5/payroll", bearer(t, apphttp.RoleBodeguero, "finca-1"), "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestPayrollRoutes_PayslipConIDConComillas(t *testing.T) {
	app := newLedgerApp(t)
	auth := bearer(t, apphttp.RoleAdministrador, "")

	status, body := call(t, app, http.MethodPost, "/api/payroll", auth,
		`{"employee_id":"emp\"7; x","pay_date":"2026-03-31","period_start":"2026-03-01","period_end":"2026-03-31","base_salary":100}`)
	require.Equal(t, http.StatusCreated, status, body)

	req := httptest.NewRequest(http.MethodGet, "/api/payroll/"+body["id"].(string)+"/payslip", nil)
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	disposition, params, err := mime.ParseMediaType(resp.Header.Get(fiber.HeaderContentDisposition))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, "rol_emp_7__x_2026-03-31.pdf", params["filename"])
}
