package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
	"github.com/jhoicas/bananera-ledger/internal/application/loan"
	"github.com/jhoicas/bananera-ledger/internal/application/payroll"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.LedgerUseCase
	Alerts        *inventory.AlertUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Payroll       *payroll.UseCase
	Payslip       *payroll.PayslipUseCase
	Loans         *loan.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	canViewInventory := RequireModule(ModuleInventario, ActionView)
	canEditInventory := RequireModule(ModuleInventario, ActionEdit)
	canViewPayroll := RequireModule(ModuleNomina, ActionView)
	canEditPayroll := RequireModule(ModuleNomina, ActionEdit)

	// Inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Alerts, deps.Replenishment)
	inv.Post("/stock", canEditInventory, inventoryHandler.CreateStockRecord)
	inv.Get("/stock/:id", canViewInventory, inventoryHandler.GetStockRecord)
	inv.Get("/stock/:id/movements", canViewInventory, inventoryHandler.ListMovements)
	inv.Post("/stock/:id/movements", canEditInventory, inventoryHandler.RegisterMovement)
	inv.Get("/stock/:id/alerts", canViewInventory, inventoryHandler.ListAlerts)
	inv.Post("/stock/:id/order", canEditInventory, inventoryHandler.MarkOrderPlaced)
	inv.Get("/replenishment", canViewInventory, inventoryHandler.GetReplenishmentList)

	// Alertas
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.Alerts)
	alerts.Post("/acknowledge-all", canEditInventory, alertHandler.AcknowledgeAll)
	alerts.Post("/:id/acknowledge", canEditInventory, alertHandler.Acknowledge)

	// Nómina
	pay := api.Group("/payroll")
	payrollHandler := NewPayrollHandler(deps.Payroll, deps.Payslip)
	pay.Post("/", canEditPayroll, payrollHandler.Create)
	pay.Get("/:id", canViewPayroll, payrollHandler.GetByID)
	pay.Patch("/:id", canEditPayroll, payrollHandler.UpdateAmounts)
	pay.Post("/:id/approve", canEditPayroll, payrollHandler.Approve)
	pay.Post("/:id/pay", canEditPayroll, payrollHandler.MarkPaid)
	pay.Post("/:id/revert", canEditPayroll, payrollHandler.Revert)
	pay.Get("/:id/payslip", canViewPayroll, payrollHandler.DownloadPayslip)

	// Préstamos
	loans := api.Group("/loans")
	loanHandler := NewLoanHandler(deps.Loans)
	loans.Post("/", canEditPayroll, loanHandler.Create)
	loans.Get("/:id", canViewPayroll, loanHandler.GetByID)
	loans.Post("/:id/payments", canEditPayroll, loanHandler.RegisterPayment)
	loans.Put("/:id/installments", canEditPayroll, loanHandler.UpdateInstallments)

	// Historial por empleado
	employees := api.Group("/employees")
	employees.Get("/:employeeId/payroll", canViewPayroll, payrollHandler.ListByEmployee)
	employees.Get("/:employeeId/loans", canViewPayroll, loanHandler.ListByEmployee)
}
