package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/analytics"
	"github.com/jhoicas/Ristoranti-api/internal/application/auth"
	"github.com/jhoicas/Ristoranti-api/internal/application/banking"
	"github.com/jhoicas/Ristoranti-api/internal/application/fatture"
	"github.com/jhoicas/Ristoranti-api/internal/application/planday"
	"github.com/jhoicas/Ristoranti-api/internal/application/usecase"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	StoreUC           *usecase.StoreUseCase
	UserUC            *usecase.UserUseCase
	ShiftUC           *planday.ShiftUseCase
	RevenueUC         *usecase.RevenueUseCase
	FixedCostUC       *usecase.FixedCostUseCase
	SupplierUC        *usecase.SupplierUseCase
	CostReportUC      *analytics.CostReportUseCase
	DashboardUC       *analytics.DashboardUseCase
	CannibalizationUC *analytics.CannibalizationUseCase
	BankUC            *banking.BankUseCase
	ImportUC          *fatture.ImportUseCase
	Stores            storeGetter
	JWTSecret         string
	MaxXMLBytes       int64
	Log               *logger.Logger
}

// Router registra las rutas de la API.
//
// Permisos: admin todo; manager lee todo y escribe turnos y ventas;
// dipendente solo consulta sus propios turnos.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público). Se registra antes del grupo protegido.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y locale activo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveStore(deps.Stores))
	everyone := RequireRole(anyRole...)
	staff := RequireRole(adminOrManager...)
	admin := RequireRole(adminOnly...)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC, log)
	protected.Get("/me", everyone, userHandler.Me)
	users := protected.Group("/users")
	users.Get("/", staff, userHandler.List)
	users.Post("/", admin, userHandler.Create)
	users.Get("/:id", staff, userHandler.GetByID)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)

	// Locali
	storeHandler := NewStoreHandler(deps.StoreUC, log)
	shiftHandler := NewShiftHandler(deps.ShiftUC, log)
	stores := protected.Group("/stores")
	stores.Get("/", staff, storeHandler.List)
	stores.Post("/", admin, storeHandler.Create)
	stores.Get("/:id", staff, storeHandler.GetByID)
	stores.Put("/:id", admin, storeHandler.Update)
	stores.Delete("/:id", admin, storeHandler.Delete)
	stores.Get("/:id/schedule.pdf", staff, shiftHandler.SchedulePDF)

	// Turni (Planday)
	shifts := protected.Group("/shifts")
	shifts.Get("/", everyone, shiftHandler.List)
	shifts.Get("/hours", staff, shiftHandler.Hours)
	shifts.Post("/check", staff, shiftHandler.Check)
	shifts.Post("/", staff, shiftHandler.Create)
	shifts.Get("/:id", everyone, shiftHandler.GetByID)
	shifts.Put("/:id", staff, shiftHandler.Update)
	shifts.Patch("/:id/move", staff, shiftHandler.Move)
	shifts.Delete("/:id", staff, shiftHandler.Delete)

	// Vendite (iPratico) y comisiones de delivery
	revenueHandler := NewRevenueHandler(deps.RevenueUC, log)
	revenue := protected.Group("/revenue", staff)
	revenue.Get("/", revenueHandler.List)
	revenue.Post("/", revenueHandler.Create)
	revenue.Post("/import", revenueHandler.Import)
	revenue.Get("/:id", revenueHandler.GetByID)
	revenue.Put("/:id", revenueHandler.Update)
	revenue.Delete("/:id", revenueHandler.Delete)

	rules := protected.Group("/commission-rules")
	rules.Get("/", staff, revenueHandler.ListRules)
	rules.Post("/", admin, revenueHandler.CreateRule)
	rules.Put("/:id", admin, revenueHandler.UpdateRule)
	rules.Delete("/:id", admin, revenueHandler.DeleteRule)

	// Costi fissi y reporte mensual
	costHandler := NewCostHandler(deps.FixedCostUC, deps.CostReportUC, log)
	fixed := protected.Group("/fixed-costs")
	fixed.Get("/", staff, costHandler.List)
	fixed.Post("/", admin, costHandler.Create)
	fixed.Get("/:id", staff, costHandler.GetByID)
	fixed.Put("/:id", admin, costHandler.Update)
	fixed.Delete("/:id", admin, costHandler.Delete)
	protected.Get("/costs/report", staff, costHandler.Report)

	// Dashboard y analítica
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	protected.Get("/dashboard/summary", staff, dashboardHandler.GetSummary)
	analyticsHandler := NewAnalyticsHandler(deps.CannibalizationUC, log)
	protected.Get("/analytics/cannibalization", staff, analyticsHandler.Cannibalization)

	// Banca
	bankHandler := NewBankHandler(deps.BankUC, log)
	bank := protected.Group("/bank")
	bank.Post("/import", admin, bankHandler.Import)
	bank.Get("/transactions", staff, bankHandler.List)
	bank.Patch("/transactions/:id", admin, bankHandler.Update)
	bank.Post("/rules/apply", admin, bankHandler.ApplyRules)
	bank.Get("/rules", staff, bankHandler.ListRules)
	bank.Post("/rules", admin, bankHandler.CreateRule)
	bank.Put("/rules/:id", admin, bankHandler.UpdateRule)
	bank.Delete("/rules/:id", admin, bankHandler.DeleteRule)

	// Fatture elettroniche, fornitori y materie prime
	fattureHandler := NewFattureHandler(deps.ImportUC, deps.SupplierUC, deps.MaxXMLBytes, log)
	protected.Post("/fatture/import", admin, fattureHandler.Import)
	protected.Get("/suppliers", staff, fattureHandler.ListSuppliers)
	protected.Get("/suppliers/:id", staff, fattureHandler.GetSupplier)
	protected.Get("/suppliers/:id/products", staff, fattureHandler.SupplierProducts)
	protected.Get("/products/:id/prices", staff, fattureHandler.PriceHistory)
}
