// Package analytics contiene los casos de uso de reportes de la cadena:
// dashboard de KPI por locale, reporte mensual de costos y análisis de cannibalizzazione.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain/commission"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// DashboardUseCase genera el resumen de KPI del período para los locales seleccionados.
//
// Fuentes: registros iPratico, turnos Planday, dipendenti (costo orario) y reglas de comisión.
// El resultado se guarda en caché con un TTL corto; los fallos de caché solo se registran.
type DashboardUseCase struct {
	storeRepo   repository.StoreRepository
	revenueRepo repository.RevenueRepository
	shiftRepo   repository.ShiftRepository
	userRepo    repository.UserRepository
	ruleRepo    repository.CommissionRuleRepository
	cache       SummaryCache
	ttl         time.Duration
	log         *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewDashboardUseCase(
	storeRepo repository.StoreRepository,
	revenueRepo repository.RevenueRepository,
	shiftRepo repository.ShiftRepository,
	userRepo repository.UserRepository,
	ruleRepo repository.CommissionRuleRepository,
	cache SummaryCache,
	ttl time.Duration,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		storeRepo:   storeRepo,
		revenueRepo: revenueRepo,
		shiftRepo:   shiftRepo,
		userRepo:    userRepo,
		ruleRepo:    ruleRepo,
		cache:       cache,
		ttl:         ttl,
		log:         log.Component("dashboard"),
	}
}

// GetSummary construye el DashboardSummaryDTO. storeIDs vacío = todos los locales.
//
// Cinco consultas en paralelo:
//  1. locales
//  2. registros iPratico del período
//  3. turnos del período
//  4. dipendenti (costo orario)
//  5. reglas de comisión
func (uc *DashboardUseCase) GetSummary(ctx context.Context, storeIDs []string, w period.Window) (*dto.DashboardSummaryDTO, error) {
	key := cacheKey(storeIDs, w)
	if uc.cache != nil {
		var cached dto.DashboardSummaryDTO
		hit, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		} else if hit {
			uc.log.Debug().Str("key", key).Msg("dashboard desde caché")
			return &cached, nil
		}
	}

	type storesResult struct {
		stores []*entity.Store
		err    error
	}
	type revenueResult struct {
		records []entity.RevenueRecord
		err     error
	}
	type shiftsResult struct {
		shifts []entity.Shift
		err    error
	}
	type usersResult struct {
		users []*entity.User
		err   error
	}
	type rulesResult struct {
		rules []entity.CommissionRule
		err   error
	}

	storesCh := make(chan storesResult, 1)
	revenueCh := make(chan revenueResult, 1)
	shiftsCh := make(chan shiftsResult, 1)
	usersCh := make(chan usersResult, 1)
	rulesCh := make(chan rulesResult, 1)

	go func() {
		s, err := uc.storeRepo.List(ctx, false)
		storesCh <- storesResult{s, err}
	}()
	go func() {
		r, err := uc.revenueRepo.List(ctx, repository.RevenueFilter{StoreIDs: storeIDs, From: w.Start, To: w.End})
		revenueCh <- revenueResult{r, err}
	}()
	go func() {
		s, err := uc.shiftRepo.List(ctx, repository.ShiftFilter{StoreIDs: storeIDs, From: w.Start, To: w.End})
		shiftsCh <- shiftsResult{s, err}
	}()
	go func() {
		u, err := uc.userRepo.List(ctx, "")
		usersCh <- usersResult{u, err}
	}()
	go func() {
		r, err := uc.ruleRepo.List(ctx)
		rulesCh <- rulesResult{r, err}
	}()

	stores := <-storesCh
	revenue := <-revenueCh
	shifts := <-shiftsCh
	users := <-usersCh
	rules := <-rulesCh

	if stores.err != nil {
		return nil, fmt.Errorf("dashboard: locales: %w", stores.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", revenue.err)
	}
	if shifts.err != nil {
		return nil, fmt.Errorf("dashboard: turnos: %w", shifts.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: dipendenti: %w", users.err)
	}
	if rules.err != nil {
		return nil, fmt.Errorf("dashboard: reglas de comisión: %w", rules.err)
	}

	summary := buildSummary(w, storeIDs, stores.stores, revenue.records, shifts.shifts, users.users, rules.rules)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, summary, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
		}
	}
	return summary, nil
}

func buildSummary(
	w period.Window,
	storeIDs []string,
	stores []*entity.Store,
	records []entity.RevenueRecord,
	shifts []entity.Shift,
	users []*entity.User,
	rules []entity.CommissionRule,
) *dto.DashboardSummaryDTO {
	rs := commission.NewRuleSet(rules)
	names := make(map[string]string, len(stores))
	for _, s := range stores {
		names[s.ID] = s.Name
	}
	hourly := make(map[string]decimal.Decimal, len(users))
	for _, u := range users {
		hourly[u.ID] = u.HourlyCost
	}

	byStore := make(map[string]*kpiAccumulator)
	get := func(id string) *kpiAccumulator {
		acc, ok := byStore[id]
		if !ok {
			acc = newAccumulator()
			byStore[id] = acc
		}
		return acc
	}
	// Los locales pedidos aparecen aunque no tengan datos.
	for _, id := range storeIDs {
		get(id)
	}
	for _, r := range records {
		get(r.StoreID).addRecord(r, rs)
	}
	for _, s := range shifts {
		get(s.StoreID).addShift(s, hourly[s.EmployeeID])
	}

	total := newAccumulator()
	out := &dto.DashboardSummaryDTO{
		From:   w.Start.Format("2006-01-02"),
		To:     w.End.Format("2006-01-02"),
		Days:   w.Days(),
		Stores: make([]dto.StoreKPIDTO, 0, len(byStore)),
	}
	for id, acc := range byStore {
		out.Stores = append(out.Stores, acc.toDTO(id, names[id]))
		total.merge(acc)
	}
	sort.Slice(out.Stores, func(i, j int) bool { return out.Stores[i].StoreName < out.Stores[j].StoreName })
	out.Totals = total.toDTO("", "")

	b := commission.Aggregate(records, rules)
	out.Channels = make([]dto.ChannelDTO, 0, len(b.Channels))
	for _, ct := range b.Channels {
		out.Channels = append(out.Channels, dto.ChannelDTO{
			Channel:    ct.Channel,
			Revenue:    ct.Revenue.Round(2),
			Commission: ct.Commission.Round(2),
		})
	}
	return out
}

func cacheKey(storeIDs []string, w period.Window) string {
	ids := append([]string(nil), storeIDs...)
	sort.Strings(ids)
	return fmt.Sprintf("dashboard:v1:%s:%s:%s",
		w.Start.Format("20060102"), w.End.Format("20060102"), strings.Join(ids, ","))
}
