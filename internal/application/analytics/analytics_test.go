package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
	"github.com/jhoicas/Ristoranti-api/internal/testutil/memrepo"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s got %s", field, want, got.String())
}

type mapCache struct {
	data   map[string][]byte
	hits   int
	getErr error
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

type fixture struct {
	stores  *memrepo.Stores
	revenue *memrepo.Revenue
	shifts  *memrepo.Shifts
	users   *memrepo.Users
	rules   *memrepo.CommissionRules
}

func dashboardFixture() fixture {
	return fixture{
		stores: memrepo.NewStores(
			entity.Store{ID: "s1", Name: "Milano", Active: true},
			entity.Store{ID: "s2", Name: "Roma", Active: true},
		),
		revenue: memrepo.NewRevenue(
			entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 10, 18), TotalRevenue: d("1000"), TotalOrders: 40, DiscountTotal: d("50"),
				Channels: map[string]decimal.Decimal{"sourceApp_store": d("600"), "sourceApp_glovo": d("300"), "sourceApp_deliveroo": d("100")}},
			entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 10, 19), TotalRevenue: d("500"), TotalOrders: 10,
				Channels: map[string]decimal.Decimal{"sourceApp_store": d("500")}},
			entity.RevenueRecord{StoreID: "s2", OrderDate: day(2026, 10, 18), TotalRevenue: d("200"),
				Channels: map[string]decimal.Decimal{"sourceApp_glovo": d("200")}},
			entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 9, 1), TotalRevenue: d("9999")},
		),
		shifts: memrepo.NewShifts(
			entity.Shift{ID: "t1", StoreID: "s1", EmployeeID: "e1", Date: day(2026, 10, 18), StartTime: "09:00", EndTime: "17:00"},
			entity.Shift{ID: "t2", StoreID: "s2", EmployeeID: "e2", Date: day(2026, 10, 18), StartTime: "10:00", EndTime: "14:00"},
		),
		users: memrepo.NewUsers(
			entity.User{ID: "e1", Name: "Giulia", HourlyCost: d("12")},
			entity.User{ID: "e2", Name: "Marco", HourlyCost: d("10")},
		),
		rules: memrepo.NewCommissionRules(
			entity.CommissionRule{ID: "r1", AppDelivery: "Glovo", Percentuale: d("20")},
			entity.CommissionRule{ID: "r2", AppDelivery: "Deliveroo", Percentuale: d("15")},
		),
	}
}

func TestDashboard_GetSummary(t *testing.T) {
	f := dashboardFixture()
	uc := NewDashboardUseCase(f.stores, f.revenue, f.shifts, f.users, f.rules, nil, time.Minute, nil)
	w := period.Preset(7, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))

	res, err := uc.GetSummary(context.Background(), nil, w)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-12", res.From)
	assert.Equal(t, "2026-10-19", res.To)
	require.Len(t, res.Stores, 2)

	milano := res.Stores[0]
	assert.Equal(t, "Milano", milano.StoreName)
	assertDec(t, "1500", milano.Revenue, "revenue")
	assert.Equal(t, 50, milano.Orders)
	assertDec(t, "30", milano.AvgTicket, "avg_ticket")
	assertDec(t, "3.33", milano.DiscountPct, "discount_pct")
	assertDec(t, "400", milano.DeliveryRevenue, "delivery")
	assertDec(t, "26.67", milano.DeliveryPct, "delivery_pct")
	assertDec(t, "75", milano.Commissions, "commissions")
	assertDec(t, "1425", milano.NetRevenue, "net")
	assertDec(t, "8", milano.LaborHours, "labor_hours")
	assertDec(t, "96", milano.LaborCost, "labor_cost")
	assertDec(t, "6.4", milano.LaborPct, "labor_pct")
	assertDec(t, "750", milano.AvgDailyRevenue, "avg_daily")

	roma := res.Stores[1]
	assertDec(t, "0", roma.AvgTicket, "avg_ticket sin pedidos")
	assertDec(t, "100", roma.DeliveryPct, "delivery_pct")
	assertDec(t, "20", roma.LaborPct, "labor_pct")

	assertDec(t, "1700", res.Totals.Revenue, "total revenue")
	assertDec(t, "34", res.Totals.AvgTicket, "total avg ticket")
	assertDec(t, "115", res.Totals.Commissions, "total commissions")
	assertDec(t, "8", res.Totals.LaborPct, "total labor pct")
	assertDec(t, "850", res.Totals.AvgDailyRevenue, "total avg daily")

	require.Len(t, res.Channels, 3)
	assert.Equal(t, "Deliveroo", res.Channels[0].Channel)
	assert.Equal(t, "Glovo", res.Channels[1].Channel)
	assertDec(t, "100", res.Channels[1].Commission, "glovo commission")
	assert.Equal(t, "Store", res.Channels[2].Channel)
	assertDec(t, "0", res.Channels[2].Commission, "store commission")
}

func TestDashboard_StoreFilterKeepsEmptyStores(t *testing.T) {
	f := dashboardFixture()
	uc := NewDashboardUseCase(f.stores, f.revenue, f.shifts, f.users, f.rules, nil, time.Minute, nil)
	w := period.Preset(7, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))

	res, err := uc.GetSummary(context.Background(), []string{"s2", "s9"}, w)
	require.NoError(t, err)
	require.Len(t, res.Stores, 2)
	assertDec(t, "200", res.Totals.Revenue, "solo s2")
}

func TestDashboard_UsesCache(t *testing.T) {
	f := dashboardFixture()
	cache := &mapCache{data: map[string][]byte{}}
	uc := NewDashboardUseCase(f.stores, f.revenue, f.shifts, f.users, f.rules, cache, time.Minute, nil)
	w := period.Preset(7, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := uc.GetSummary(ctx, []string{"s1"}, w)
	require.NoError(t, err)
	require.Len(t, cache.data, 1)

	// un registro nuevo no se ve mientras dure el TTL
	require.NoError(t, f.revenue.Create(ctx, &entity.RevenueRecord{ID: "new", StoreID: "s1", OrderDate: day(2026, 10, 19), TotalRevenue: d("1")}))
	second, err := uc.GetSummary(ctx, []string{"s1"}, w)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.True(t, first.Totals.Revenue.Equal(second.Totals.Revenue))
}

func TestDashboard_CacheErrorIsIgnored(t *testing.T) {
	f := dashboardFixture()
	cache := &mapCache{data: map[string][]byte{}, getErr: errors.New("redis caído")}
	uc := NewDashboardUseCase(f.stores, f.revenue, f.shifts, f.users, f.rules, cache, time.Minute, nil)

	res, err := uc.GetSummary(context.Background(), nil, period.Preset(7, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assertDec(t, "1700", res.Totals.Revenue, "total")
}

func costFixture(now time.Time) *CostReportUseCase {
	stores := memrepo.NewStores(
		entity.Store{ID: "s1", Name: "Milano", Active: true},
		entity.Store{ID: "s2", Name: "Roma", Active: true},
		entity.Store{ID: "s3", Name: "Torino", Active: false},
	)
	fixed := memrepo.NewFixedCosts(
		entity.FixedCost{ID: "c1", Name: "Affitto", MonthlyAmount: d("3000"), AssignmentMode: entity.AssignSingolo, StoreIDs: []string{"s1"}, Active: true},
		entity.FixedCost{ID: "c2", Name: "Software", MonthlyAmount: d("100"), AssignmentMode: entity.AssignTutti, Active: true},
		entity.FixedCost{ID: "c3", Name: "Assicurazione", MonthlyAmount: d("200"), AssignmentMode: entity.AssignMultipli, StoreIDs: []string{"s1", "s2"}, Active: true},
		entity.FixedCost{ID: "c4", Name: "Vecchio", MonthlyAmount: d("999"), AssignmentMode: entity.AssignTutti, Active: false},
	)
	revenue := memrepo.NewRevenue(
		entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 9, 10), TotalRevenue: d("10000"),
			Channels: map[string]decimal.Decimal{"sourceApp_glovo": d("1000")}},
		entity.RevenueRecord{StoreID: "s2", OrderDate: day(2026, 9, 20), TotalRevenue: d("5000")},
	)
	shifts := memrepo.NewShifts(
		entity.Shift{ID: "t1", StoreID: "s1", EmployeeID: "e1", Date: day(2026, 9, 10), StartTime: "09:00", EndTime: "17:00"},
	)
	users := memrepo.NewUsers(entity.User{ID: "e1", Name: "Giulia", HourlyCost: d("12")})
	rules := memrepo.NewCommissionRules(entity.CommissionRule{ID: "r1", AppDelivery: "Glovo", Percentuale: d("20")})

	uc := NewCostReportUseCase(stores, fixed, revenue, shifts, users, rules)
	uc.now = func() time.Time { return now }
	return uc
}

func TestCostReport_PastMonth(t *testing.T) {
	uc := costFixture(time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC))
	res, err := uc.MonthlyReport(context.Background(), day(2026, 9, 1))
	require.NoError(t, err)

	assert.Equal(t, "2026-09", res.Month)
	assertDec(t, "1", res.ProRata, "pro rata")
	require.Len(t, res.Stores, 2, "los locales inactivos no reciben costos")

	milano := res.Stores[0]
	assertDec(t, "3250", milano.FixedCosts, "fixed")
	assertDec(t, "8", milano.LaborHours, "labor hours")
	assertDec(t, "96", milano.LaborCost, "labor")
	assertDec(t, "200", milano.Commissions, "commissions")
	assertDec(t, "3546", milano.TotalCosts, "total")
	assertDec(t, "35.46", milano.CostPct, "cost pct")
	assertDec(t, "6454", milano.Margin, "margin")
	assert.Len(t, milano.Lines, 3)

	roma := res.Stores[1]
	assertDec(t, "250", roma.FixedCosts, "fixed roma")
	assertDec(t, "0", roma.LaborHours, "roma sin turnos")
	assertDec(t, "5", roma.CostPct, "cost pct roma")

	assertDec(t, "15000", res.Totals.Revenue, "total revenue")
	assertDec(t, "8", res.Totals.LaborHours, "total hours")
	assertDec(t, "3796", res.Totals.TotalCosts, "total costs")
	assertDec(t, "25.31", res.Totals.CostPct, "total pct")
}

func TestCostReport_FutureMonthHasNoFixedCosts(t *testing.T) {
	uc := costFixture(time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC))
	res, err := uc.MonthlyReport(context.Background(), day(2026, 11, 1))
	require.NoError(t, err)
	assertDec(t, "0", res.ProRata, "pro rata")
	assertDec(t, "0", res.Totals.FixedCosts, "fixed")
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	m, err := ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, day(2026, 10, 1), m)

	m, err = ParseMonth("2026-02", now)
	require.NoError(t, err)
	assert.Equal(t, day(2026, 2, 1), m)

	_, err = ParseMonth("02/2026", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCannibalization_Analyze(t *testing.T) {
	opening := day(2026, 10, 1)
	stores := memrepo.NewStores(
		entity.Store{ID: "s1", Name: "Alfa", Active: true},
		entity.Store{ID: "s2", Name: "Beta", Active: true},
		entity.Store{ID: "s3", Name: "Gamma", Active: true, OpeningDate: &opening},
	)
	revenue := memrepo.NewRevenue(
		entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 9, 29), TotalRevenue: d("100")},
		entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 9, 30), TotalRevenue: d("200")},
		entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 10, 1), TotalRevenue: d("120")},
		entity.RevenueRecord{StoreID: "s1", OrderDate: day(2026, 10, 2), TotalRevenue: d("120")},
		entity.RevenueRecord{StoreID: "s2", OrderDate: day(2026, 9, 30), TotalRevenue: d("300")},
		entity.RevenueRecord{StoreID: "s3", OrderDate: day(2026, 10, 1), TotalRevenue: d("400")},
	)
	uc := NewCannibalizationUseCase(stores, revenue)

	res, err := uc.Analyze(context.Background(), dto.CannibalizationRequest{NewStoreID: "s3", WindowDays: 2})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", res.OpeningDate)
	assertDec(t, "400", res.NewStoreAvgAfter, "new store")
	require.Len(t, res.Stores, 2)

	alfa := res.Stores[0]
	assert.Equal(t, "Alfa", alfa.StoreName)
	assertDec(t, "150", alfa.AvgBefore, "before")
	assertDec(t, "120", alfa.AvgAfter, "after")
	assertDec(t, "-20", alfa.DeltaPct, "pct")

	beta := res.Stores[1]
	assertDec(t, "0", beta.AvgAfter, "sin datos después")
	assertDec(t, "-100", beta.DeltaPct, "pct")

	assertDec(t, "-330", res.TotalDelta, "total delta")
	assertDec(t, "-73.33", res.TotalDeltaPct, "total pct")
}

func TestCannibalization_RequiresOpeningDate(t *testing.T) {
	stores := memrepo.NewStores(entity.Store{ID: "s1", Name: "Alfa", Active: true})
	uc := NewCannibalizationUseCase(stores, memrepo.NewRevenue())
	_, err := uc.Analyze(context.Background(), dto.CannibalizationRequest{NewStoreID: "s1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Analyze(context.Background(), dto.CannibalizationRequest{NewStoreID: "zz"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
