package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/commission"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RevenueUseCase gestiona los registros iPratico y las reglas de comisión.
type RevenueUseCase struct {
	revenueRepo repository.RevenueRepository
	ruleRepo    repository.CommissionRuleRepository
}

// NewRevenueUseCase construye el caso de uso.
func NewRevenueUseCase(revenueRepo repository.RevenueRepository, ruleRepo repository.CommissionRuleRepository) *RevenueUseCase {
	return &RevenueUseCase{revenueRepo: revenueRepo, ruleRepo: ruleRepo}
}

// Create registra un día de ventas de un locale.
func (uc *RevenueUseCase) Create(ctx context.Context, in dto.RevenueRecordRequest) (*dto.RevenueRecordResponse, error) {
	rec, err := recordFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	rec.ID = uuid.New().String()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := uc.revenueRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRevenueResponse(rec, commission.NewRuleSet(rules)), nil
}

// GetByID obtiene un registro con su comisión calculada.
func (uc *RevenueUseCase) GetByID(ctx context.Context, id string) (*dto.RevenueRecordResponse, error) {
	rec, err := uc.revenueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRevenueResponse(rec, commission.NewRuleSet(rules)), nil
}

// List devuelve los registros de los locales indicados dentro del período.
func (uc *RevenueUseCase) List(ctx context.Context, storeIDs []string, w period.Window) ([]dto.RevenueRecordResponse, error) {
	records, err := uc.revenueRepo.List(ctx, repository.RevenueFilter{StoreIDs: storeIDs, From: w.Start, To: w.End})
	if err != nil {
		return nil, err
	}
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rs := commission.NewRuleSet(rules)
	out := make([]dto.RevenueRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, *toRevenueResponse(&records[i], rs))
	}
	return out, nil
}

// Import carga un export iPratico de varios días. Entran solo los registros cuya
// order_date cae dentro de w; las fechas ilegibles se descartan sin error.
func (uc *RevenueUseCase) Import(ctx context.Context, w period.Window, in []dto.RevenueRecordRequest) (*dto.RevenueImportResponse, error) {
	kept := period.Filter(in, w, func(r dto.RevenueRecordRequest) string { return r.OrderDate })
	resp := &dto.RevenueImportResponse{
		From:     w.Start.Format("2006-01-02"),
		To:       w.End.Format("2006-01-02"),
		Received: len(in),
		Skipped:  len(in) - len(kept),
		Errors:   []string{},
	}
	now := time.Now()
	for _, r := range kept {
		if strings.TrimSpace(r.StoreID) == "" || r.TotalOrders < 0 {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: store_id requerido y total_orders >= 0", r.OrderDate))
			continue
		}
		rec, err := recordFromRequest(r)
		if err != nil {
			resp.Errors = append(resp.Errors, err.Error())
			continue
		}
		rec.ID = uuid.New().String()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if err := uc.revenueRepo.Create(ctx, rec); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s %s: %v", r.StoreID, r.OrderDate, err))
			continue
		}
		resp.Imported++
	}
	return resp, nil
}

// Update reemplaza los importes de un registro existente (last write wins).
func (uc *RevenueUseCase) Update(ctx context.Context, id string, in dto.RevenueRecordRequest) (*dto.RevenueRecordResponse, error) {
	current, err := uc.revenueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	rec, err := recordFromRequest(in)
	if err != nil {
		return nil, err
	}
	rec.ID = current.ID
	rec.CreatedAt = current.CreatedAt
	rec.UpdatedAt = time.Now()
	if err := uc.revenueRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRevenueResponse(rec, commission.NewRuleSet(rules)), nil
}

// Delete elimina un registro.
func (uc *RevenueUseCase) Delete(ctx context.Context, id string) error {
	return uc.revenueRepo.Delete(ctx, id)
}

// ListRules devuelve las reglas de comisión.
func (uc *RevenueUseCase) ListRules(ctx context.Context) ([]dto.CommissionRuleResponse, error) {
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommissionRuleResponse, 0, len(rules))
	for i := range rules {
		out = append(out, toRuleResponse(&rules[i]))
	}
	return out, nil
}

// CreateRule registra la comisión de una app de delivery.
func (uc *RevenueUseCase) CreateRule(ctx context.Context, in dto.CommissionRuleRequest) (*dto.CommissionRuleResponse, error) {
	if err := validatePercentuale(in.Percentuale); err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.CommissionRule{
		ID:          uuid.New().String(),
		AppDelivery: strings.TrimSpace(in.AppDelivery),
		Percentuale: in.Percentuale,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.ruleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	out := toRuleResponse(r)
	return &out, nil
}

// UpdateRule modifica app y porcentaje.
func (uc *RevenueUseCase) UpdateRule(ctx context.Context, id string, in dto.CommissionRuleRequest) (*dto.CommissionRuleResponse, error) {
	if err := validatePercentuale(in.Percentuale); err != nil {
		return nil, err
	}
	r, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	r.AppDelivery = strings.TrimSpace(in.AppDelivery)
	r.Percentuale = in.Percentuale
	r.UpdatedAt = time.Now()
	if err := uc.ruleRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	out := toRuleResponse(r)
	return &out, nil
}

// DeleteRule elimina una regla de comisión.
func (uc *RevenueUseCase) DeleteRule(ctx context.Context, id string) error {
	return uc.ruleRepo.Delete(ctx, id)
}

func validatePercentuale(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percentuale fuera de 0..100", domain.ErrInvalidInput)
	}
	return nil
}

func recordFromRequest(in dto.RevenueRecordRequest) (*entity.RevenueRecord, error) {
	d, ok := period.ParseDate(in.OrderDate)
	if !ok {
		return nil, fmt.Errorf("%w: order_date %q", domain.ErrInvalidInput, in.OrderDate)
	}
	channels := make(map[string]decimal.Decimal, len(in.Channels))
	for k, v := range in.Channels {
		key := k
		if !strings.HasPrefix(key, entity.ChannelFieldPrefix) {
			key = entity.ChannelFieldPrefix + strings.ToLower(key)
		}
		channels[key] = v
	}
	return &entity.RevenueRecord{
		StoreID:       in.StoreID,
		OrderDate:     period.StartOfDay(d),
		TotalRevenue:  in.TotalRevenue,
		TotalOrders:   in.TotalOrders,
		DiscountTotal: in.DiscountTotal,
		Channels:      channels,
	}, nil
}

func toRevenueResponse(r *entity.RevenueRecord, rs commission.RuleSet) *dto.RevenueRecordResponse {
	return &dto.RevenueRecordResponse{
		ID:            r.ID,
		StoreID:       r.StoreID,
		OrderDate:     r.OrderDate.Format("2006-01-02"),
		TotalRevenue:  r.TotalRevenue,
		TotalOrders:   r.TotalOrders,
		DiscountTotal: r.DiscountTotal,
		Channels:      r.Channels,
		Commission:    rs.Compute(*r).Round(2),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toRuleResponse(r *entity.CommissionRule) dto.CommissionRuleResponse {
	return dto.CommissionRuleResponse{ID: r.ID, AppDelivery: r.AppDelivery, Percentuale: r.Percentuale}
}
