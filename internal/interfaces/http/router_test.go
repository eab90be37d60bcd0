package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/application/analytics"
	"github.com/jhoicas/Ristoranti-api/internal/application/auth"
	"github.com/jhoicas/Ristoranti-api/internal/application/banking"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/application/fatture"
	"github.com/jhoicas/Ristoranti-api/internal/application/planday"
	"github.com/jhoicas/Ristoranti-api/internal/application/usecase"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/fatturapa"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/Ristoranti-api/internal/interfaces/http"
	"github.com/jhoicas/Ristoranti-api/internal/testutil/memrepo"
	pkgjwt "github.com/jhoicas/Ristoranti-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "ristoranti-test"
	testExpMin    = 60

	storeMilano = "00000000-0000-0000-0000-0000000000a1"
	storeRoma   = "00000000-0000-0000-0000-0000000000a2"
	storeChiuso = "00000000-0000-0000-0000-0000000000a3"
	mario       = "00000000-0000-0000-0000-0000000000b1"
	luigi       = "00000000-0000-0000-0000-0000000000b2"
)

type testEnv struct {
	app    *fiber.App
	stores *memrepo.Stores
	shifts *memrepo.Shifts
}

// newTestEnv arma el router completo sobre repositorios en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	opening := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	stores := memrepo.NewStores(
		entity.Store{ID: storeMilano, Name: "Milano", Active: true},
		entity.Store{ID: storeRoma, Name: "Roma", Active: true, OpeningDate: &opening},
		entity.Store{ID: storeChiuso, Name: "Torino", Active: false},
	)
	users := memrepo.NewUsers(
		entity.User{ID: mario, StoreID: storeMilano, Email: "mario@example.com", Name: "Mario", Role: entity.RoleDipendente, Status: "active"},
		entity.User{ID: luigi, StoreID: storeMilano, Email: "luigi@example.com", Name: "Luigi", Role: entity.RoleDipendente, Status: "active"},
	)
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	shifts := memrepo.NewShifts(
		entity.Shift{ID: "sh-mario", StoreID: storeMilano, EmployeeID: mario, Date: day, StartTime: "09:00", EndTime: "13:00"},
		entity.Shift{ID: "sh-luigi", StoreID: storeMilano, EmployeeID: luigi, Date: day, StartTime: "18:00", EndTime: "23:00"},
	)
	revenue := memrepo.NewRevenue()
	commissionRules := memrepo.NewCommissionRules()
	fixedCosts := memrepo.NewFixedCosts()
	suppliers := memrepo.NewSuppliers()
	products := memrepo.NewProducts()
	prices := memrepo.NewPrices()

	authUC := auth.NewAuthUseCase(users, stores, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	deps := apphttp.RouterDeps{
		AuthUC:            authUC,
		StoreUC:           usecase.NewStoreUseCase(stores),
		UserUC:            usecase.NewUserUseCase(users),
		ShiftUC:           planday.NewShiftUseCase(shifts, users, stores, nil),
		RevenueUC:         usecase.NewRevenueUseCase(revenue, commissionRules),
		FixedCostUC:       usecase.NewFixedCostUseCase(fixedCosts),
		SupplierUC:        usecase.NewSupplierUseCase(suppliers, products, prices),
		CostReportUC:      analytics.NewCostReportUseCase(stores, fixedCosts, revenue, shifts, users, commissionRules),
		DashboardUC:       analytics.NewDashboardUseCase(stores, revenue, shifts, users, commissionRules, nil, time.Minute, nil),
		CannibalizationUC: analytics.NewCannibalizationUseCase(stores, revenue),
		BankUC:            banking.NewBankUseCase(memrepo.NewBankTransactions(), memrepo.NewRules(), xlsx.NewStatementReader(), nil),
		ImportUC: fatture.NewImportUseCase(suppliers, memrepo.NewImports(),
			memrepo.ImportTx{Products: products, Prices: prices}, fatturapa.NewParser(), nil, nil, nil),
		Stores:      stores,
		JWTSecret:   testJWTSecret,
		MaxXMLBytes: 1 << 20,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testEnv{app: app, stores: stores, shifts: shifts}
}

func tokenFor(t *testing.T, userID, storeID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, storeID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "Nuovo@Example.com", Password: "password123", StoreID: storeMilano, Role: entity.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "nuovo@example.com", user.Email)
	assert.Equal(t, entity.RoleDipendente, user.Role, "el registro público no puede elegir rol")

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nuovo@example.com", Password: "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	claims, err := pkgjwt.Parse(testJWTSecret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, storeMilano, claims.StoreID)
	assert.Equal(t, entity.RoleDipendente, claims.Role)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nuovo@example.com", Password: "sbagliata"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "no-es-email", Password: "corta"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "email")
	assert.Contains(t, body.Message, "password")
}

func TestShifts_DipendenteSoloVeSusTurnos(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, mario, storeMilano, entity.RoleDipendente)

	resp := env.do(t, http.MethodGet, "/api/shifts?employee_id="+luigi, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ShiftResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "sh-mario", list[0].ID)

	resp = env.do(t, http.MethodGet, "/api/shifts/sh-luigi", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/shifts/sh-mario", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/shifts", tok, dto.ShiftRequest{
		StoreID: storeMilano, EmployeeID: mario, Date: "2026-10-21", StartTime: "09:00", EndTime: "12:00",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestShifts_ManagerGuardaConSolapamiento(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "mgr", storeMilano, entity.RoleManager)

	resp := env.do(t, http.MethodPost, "/api/shifts", tok, dto.ShiftRequest{
		StoreID: storeMilano, EmployeeID: mario, Date: "2026-10-20", StartTime: "12:00", EndTime: "17:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decode[dto.ShiftSaveResponse](t, resp)
	assert.True(t, saved.Overlap)
	require.Len(t, saved.Conflicts, 1)
	assert.Equal(t, "sh-mario", saved.Conflicts[0].ID)
	assert.NotEmpty(t, saved.Shift.ID)

	resp = env.do(t, http.MethodPost, "/api/shifts/check", tok, dto.ShiftRequest{
		StoreID: storeMilano, EmployeeID: mario, Date: "2026-10-20", StartTime: "13:00", EndTime: "15:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	check := decode[dto.OverlapCheckResponse](t, resp)
	assert.True(t, check.Overlap, "13-15 se solapa con el turno 12-17 recién guardado")

	resp = env.do(t, http.MethodPost, "/api/shifts", tok, dto.ShiftRequest{
		StoreID: storeMilano, EmployeeID: mario, Date: "2026-10-20", StartTime: "25:00", EndTime: "17:00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRevenue_ImportSoloDentroDelPeriodo(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "mgr", storeMilano, entity.RoleManager)
	rec := func(date, total string) dto.RevenueRecordRequest {
		return dto.RevenueRecordRequest{StoreID: storeMilano, OrderDate: date, TotalRevenue: decimal.RequireFromString(total), TotalOrders: 10}
	}

	resp := env.do(t, http.MethodPost, "/api/revenue/import", tok, dto.RevenueImportRequest{
		Range: "custom", StartDate: "2026-10-01", EndDate: "2026-10-31",
		Records: []dto.RevenueRecordRequest{
			rec("2026-10-01", "1200"),
			rec("2026-10-31 21:30:00", "800"),
			rec("2026-09-30", "999"),
			rec("31/13/2026", "5"),
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.RevenueImportResponse](t, resp)
	assert.Equal(t, 4, out.Received)
	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, 2, out.Skipped, "fuera del período o fecha ilegible")
	assert.Empty(t, out.Errors)

	resp = env.do(t, http.MethodGet, "/api/revenue?range=custom&start_date=2026-09-01&end_date=2026-10-31&store_ids="+storeMilano, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.RevenueRecordResponse](t, resp)
	require.Len(t, list, 2)

	resp = env.do(t, http.MethodPost, "/api/revenue/import", tok, dto.RevenueImportRequest{Range: "custom", StartDate: "2026-10-01", EndDate: "2026-10-31"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin registros")

	resp = env.do(t, http.MethodPost, "/api/revenue/import", tok, dto.RevenueImportRequest{Range: "15", Records: []dto.RevenueRecordRequest{rec("2026-10-01", "1")}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "rango desconocido")

	dip := tokenFor(t, mario, storeMilano, entity.RoleDipendente)
	resp = env.do(t, http.MethodPost, "/api/revenue/import", dip, dto.RevenueImportRequest{Records: []dto.RevenueRecordRequest{rec("2026-10-01", "1")}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoles_ManagerNoEscribeCostos(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "mgr", storeMilano, entity.RoleManager)

	resp := env.do(t, http.MethodPost, "/api/fixed-costs", tok, dto.FixedCostRequest{Name: "Affitto", AssignmentMode: "tutti"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/fixed-costs", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireActiveStore_BloqueaLocaleInactivo(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/stores", tokenFor(t, "mgr", storeChiuso, entity.RoleManager), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "STORE_INACTIVE", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodGet, "/api/stores", tokenFor(t, "adm", storeChiuso, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin no depende del locale")
}

func TestStores_ErroresDeDominio(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "adm", "", entity.RoleAdmin)

	resp := env.do(t, http.MethodGet, "/api/stores/no-existe", tok, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/stores", tok, dto.CreateStoreRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/stores", tok, dto.CreateStoreRequest{Name: "Napoli", OpeningDate: "2026-11-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.StoreResponse](t, resp)
	assert.Equal(t, "2026-11-01", created.OpeningDate)
}

func TestDashboard_RangoInvalido(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "adm", "", entity.RoleAdmin)

	resp := env.do(t, http.MethodGet, "/api/dashboard/summary?range=45", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/dashboard/summary?range=custom&start_date=2026-10-10&end_date=2026-10-01", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/dashboard/summary?range=7&store_ids="+storeMilano+","+storeRoma, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Len(t, summary.Stores, 2)
}

func TestCannibalization_Validacion(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "adm", "", entity.RoleAdmin)

	resp := env.do(t, http.MethodGet, "/api/analytics/cannibalization", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/analytics/cannibalization?new_store_id="+storeMilano, tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Milano no tiene fecha de apertura")

	resp = env.do(t, http.MethodGet, "/api/analytics/cannibalization?new_store_id="+storeRoma+"&window_days=14", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CannibalizationResponse](t, resp)
	assert.Equal(t, 14, out.WindowDays)
	assert.Equal(t, "2026-09-01", out.OpeningDate)
}

func TestFatture_ImportMultipartYErrores(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "adm", "", entity.RoleAdmin)

	resp := env.do(t, http.MethodPost, "/api/fatture/import", tok, dto.ImportFatturaRequest{XMLContent: "<FatturaElettronica"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/fatture/import", tok, dto.ImportFatturaRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := os.ReadFile("../../infrastructure/fatturapa/testdata/IT01234567890_FPR01.xml")
	require.NoError(t, err)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "IT01234567890_FPR01.xml")
	require.NoError(t, err)
	_, err = fw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/fatture/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tok)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ImportFatturaResponse](t, resp)
	assert.True(t, out.Success)
	assert.True(t, out.Supplier.Created)

	resp = env.do(t, http.MethodGet, "/api/suppliers/"+out.Supplier.ID+"/products", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[[]dto.ProductResponse](t, resp)
	assert.Len(t, products, out.Summary.ProductsCreated)

	resp = env.do(t, http.MethodPost, "/api/fatture/import", tokenFor(t, "mgr", storeMilano, entity.RoleManager), dto.ImportFatturaRequest{XMLContent: string(raw)})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBank_ImportSinArchivo(t *testing.T) {
	env := newTestEnv(t)
	tok := tokenFor(t, "adm", "", entity.RoleAdmin)

	resp := env.do(t, http.MethodPost, "/api/bank/import", tok, map[string]string{"account": "IT60X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/bank/transactions?from=ieri", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/bank/transactions?unreconciled=true", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.BankListResponse](t, resp)
	assert.Empty(t, list.Items)
}
