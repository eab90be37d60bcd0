package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/commission"
	"github.com/jhoicas/Ristoranti-api/internal/domain/costs"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
	"github.com/jhoicas/Ristoranti-api/internal/domain/planday"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

// CostReportUseCase reporte mensual por locale: costos fijos imputados, personal,
// comisiones de delivery y su incidencia sobre las ventas.
type CostReportUseCase struct {
	storeRepo   repository.StoreRepository
	costRepo    repository.FixedCostRepository
	revenueRepo repository.RevenueRepository
	shiftRepo   repository.ShiftRepository
	userRepo    repository.UserRepository
	ruleRepo    repository.CommissionRuleRepository
	now         func() time.Time
}

// NewCostReportUseCase construye el caso de uso.
func NewCostReportUseCase(
	storeRepo repository.StoreRepository,
	costRepo repository.FixedCostRepository,
	revenueRepo repository.RevenueRepository,
	shiftRepo repository.ShiftRepository,
	userRepo repository.UserRepository,
	ruleRepo repository.CommissionRuleRepository,
) *CostReportUseCase {
	return &CostReportUseCase{
		storeRepo:   storeRepo,
		costRepo:    costRepo,
		revenueRepo: revenueRepo,
		shiftRepo:   shiftRepo,
		userRepo:    userRepo,
		ruleRepo:    ruleRepo,
		now:         time.Now,
	}
}

// ParseMonth interpreta "YYYY-MM"; vacío = mes actual.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: mes %q (formato YYYY-MM)", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// MonthlyReport calcula el reporte del mes (primer día del mes en month).
// Los costos fijos de "tutti" se reparten entre los locales activos.
func (uc *CostReportUseCase) MonthlyReport(ctx context.Context, month time.Time) (*dto.CostReportResponse, error) {
	today := uc.now()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	w := period.Custom(first, first.AddDate(0, 1, -1))

	stores, err := uc.storeRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("costos: locales: %w", err)
	}
	fixed, err := uc.costRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("costos: costos fijos: %w", err)
	}
	records, err := uc.revenueRepo.List(ctx, repository.RevenueFilter{From: w.Start, To: w.End})
	if err != nil {
		return nil, fmt.Errorf("costos: ventas: %w", err)
	}
	shifts, err := uc.shiftRepo.List(ctx, repository.ShiftFilter{From: w.Start, To: w.End})
	if err != nil {
		return nil, fmt.Errorf("costos: turnos: %w", err)
	}
	users, err := uc.userRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("costos: dipendenti: %w", err)
	}
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("costos: reglas de comisión: %w", err)
	}

	names := make(map[string]string, len(stores))
	var active []string
	for _, s := range stores {
		names[s.ID] = s.Name
		if s.Active {
			active = append(active, s.ID)
		}
	}
	hourly := make(map[string]decimal.Decimal, len(users))
	for _, u := range users {
		hourly[u.ID] = u.HourlyCost
	}

	rows := make(map[string]*dto.StoreCostReportDTO)
	row := func(id string) *dto.StoreCostReportDTO {
		r, ok := rows[id]
		if !ok {
			r = &dto.StoreCostReportDTO{StoreID: id, StoreName: names[id], Lines: []dto.CostLineDTO{}}
			rows[id] = r
		}
		return r
	}
	for _, id := range active {
		row(id)
	}

	for _, sa := range costs.Summarize(fixed, first, today, active) {
		r := row(sa.StoreID)
		r.FixedCosts = sa.Total
		for _, l := range sa.Lines {
			r.Lines = append(r.Lines, dto.CostLineDTO{CostID: l.CostID, Name: l.Name, Category: l.Category, Amount: l.Amount.Round(2)})
		}
	}
	rs := commission.NewRuleSet(rules)
	for _, rec := range records {
		r := row(rec.StoreID)
		r.Revenue = r.Revenue.Add(rec.TotalRevenue)
		r.Commissions = r.Commissions.Add(rs.Compute(rec))
	}
	for _, s := range shifts {
		r := row(s.StoreID)
		r.LaborCost = r.LaborCost.Add(planday.Duration(s).Mul(hourly[s.EmployeeID]))
	}
	for id, hours := range planday.HoursByStore(shifts) {
		row(id).LaborHours = hours
	}

	resp := &dto.CostReportResponse{
		Month:   first.Format("2006-01"),
		ProRata: costs.ProRata(first, today).Round(4),
		Stores:  make([]dto.StoreCostReportDTO, 0, len(rows)),
		Totals:  dto.StoreCostReportDTO{Lines: []dto.CostLineDTO{}},
	}
	for _, r := range rows {
		finishRow(r)
		resp.Stores = append(resp.Stores, *r)
		resp.Totals.Revenue = resp.Totals.Revenue.Add(r.Revenue)
		resp.Totals.FixedCosts = resp.Totals.FixedCosts.Add(r.FixedCosts)
		resp.Totals.LaborHours = resp.Totals.LaborHours.Add(r.LaborHours)
		resp.Totals.LaborCost = resp.Totals.LaborCost.Add(r.LaborCost)
		resp.Totals.Commissions = resp.Totals.Commissions.Add(r.Commissions)
	}
	sort.Slice(resp.Stores, func(i, j int) bool { return resp.Stores[i].StoreName < resp.Stores[j].StoreName })
	finishRow(&resp.Totals)
	return resp, nil
}

func finishRow(r *dto.StoreCostReportDTO) {
	r.TotalCosts = r.FixedCosts.Add(r.LaborCost).Add(r.Commissions)
	r.CostPct = percentOf(r.TotalCosts, r.Revenue)
	r.Margin = r.Revenue.Sub(r.TotalCosts).Round(2)
	r.Revenue = r.Revenue.Round(2)
	r.FixedCosts = r.FixedCosts.Round(2)
	r.LaborCost = r.LaborCost.Round(2)
	r.Commissions = r.Commissions.Round(2)
	r.TotalCosts = r.TotalCosts.Round(2)
}
