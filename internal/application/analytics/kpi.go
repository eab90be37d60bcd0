package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain/commission"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/planday"
)

var hundred = decimal.NewFromInt(100)

// kpiAccumulator acumula importes de un locale antes de calcular los ratios.
type kpiAccumulator struct {
	revenue     decimal.Decimal
	orders      int
	discounts   decimal.Decimal
	delivery    decimal.Decimal
	commissions decimal.Decimal
	laborHours  decimal.Decimal
	laborCost   decimal.Decimal
	days        map[string]bool
}

func newAccumulator() *kpiAccumulator {
	return &kpiAccumulator{days: map[string]bool{}}
}

func (a *kpiAccumulator) addRecord(r entity.RevenueRecord, rs commission.RuleSet) {
	a.revenue = a.revenue.Add(r.TotalRevenue)
	a.orders += r.TotalOrders
	a.discounts = a.discounts.Add(r.DiscountTotal)
	for field, amount := range r.Channels {
		if commission.IsDelivery(field) {
			a.delivery = a.delivery.Add(amount)
		}
	}
	a.commissions = a.commissions.Add(rs.Compute(r))
	a.days[r.OrderDate.Format("2006-01-02")] = true
}

func (a *kpiAccumulator) addShift(s entity.Shift, hourlyCost decimal.Decimal) {
	h := planday.Duration(s)
	a.laborHours = a.laborHours.Add(h)
	a.laborCost = a.laborCost.Add(h.Mul(hourlyCost))
}

func (a *kpiAccumulator) merge(o *kpiAccumulator) {
	a.revenue = a.revenue.Add(o.revenue)
	a.orders += o.orders
	a.discounts = a.discounts.Add(o.discounts)
	a.delivery = a.delivery.Add(o.delivery)
	a.commissions = a.commissions.Add(o.commissions)
	a.laborHours = a.laborHours.Add(o.laborHours)
	a.laborCost = a.laborCost.Add(o.laborCost)
	for d := range o.days {
		a.days[d] = true
	}
}

func (a *kpiAccumulator) toDTO(storeID, storeName string) dto.StoreKPIDTO {
	out := dto.StoreKPIDTO{
		StoreID:         storeID,
		StoreName:       storeName,
		Revenue:         a.revenue.Round(2),
		Orders:          a.orders,
		AvgTicket:       decimal.Zero,
		Discounts:       a.discounts.Round(2),
		DiscountPct:     percentOf(a.discounts, a.revenue),
		DeliveryRevenue: a.delivery.Round(2),
		DeliveryPct:     percentOf(a.delivery, a.revenue),
		Commissions:     a.commissions.Round(2),
		NetRevenue:      a.revenue.Sub(a.commissions).Round(2),
		LaborHours:      a.laborHours.Round(2),
		LaborCost:       a.laborCost.Round(2),
		LaborPct:        percentOf(a.laborCost, a.revenue),
		AvgDailyRevenue: decimal.Zero,
	}
	if a.orders > 0 {
		out.AvgTicket = a.revenue.Div(decimal.NewFromInt(int64(a.orders))).Round(2)
	}
	if n := len(a.days); n > 0 {
		out.AvgDailyRevenue = a.revenue.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	return out
}

// percentOf part/base*100 redondeado a 2 decimales; 0 si base es 0.
func percentOf(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Div(base).Mul(hundred).Round(2)
}
