// Package commission calcula las comisiones de las apps de delivery sobre los importes por canal
// de los registros iPratico.
package commission

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ChannelName nombre de canal a partir del campo: "sourceApp_glovo" -> "Glovo".
func ChannelName(field string) string {
	name := strings.TrimPrefix(field, entity.ChannelFieldPrefix)
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// IsDelivery indica si el campo corresponde a una app de delivery (todo salvo sala/asporto).
func IsDelivery(field string) bool {
	return strings.HasPrefix(field, entity.ChannelFieldPrefix) && field != entity.ChannelInStore
}

// RuleSet índice por nombre exacto de canal; ante nombres repetidos gana la primera regla.
type RuleSet map[string]decimal.Decimal

// NewRuleSet construye el índice de reglas.
func NewRuleSet(rules []entity.CommissionRule) RuleSet {
	rs := make(RuleSet, len(rules))
	for _, r := range rules {
		if _, ok := rs[r.AppDelivery]; !ok {
			rs[r.AppDelivery] = r.Percentuale
		}
	}
	return rs
}

// Compute comisión total de un registro. Los canales sin regla aportan 0.
func (rs RuleSet) Compute(rec entity.RevenueRecord) decimal.Decimal {
	total := decimal.Zero
	for field, amount := range rec.Channels {
		total = total.Add(rs.channel(field, amount))
	}
	return total
}

func (rs RuleSet) channel(field string, amount decimal.Decimal) decimal.Decimal {
	pct, ok := rs[ChannelName(field)]
	if !ok {
		return decimal.Zero
	}
	return amount.Mul(pct).Div(hundred)
}

// Compute atajo para un único registro.
func Compute(rec entity.RevenueRecord, rules []entity.CommissionRule) decimal.Decimal {
	return NewRuleSet(rules).Compute(rec)
}

// ChannelTotal ventas y comisión de un canal.
type ChannelTotal struct {
	Channel    string
	Revenue    decimal.Decimal
	Commission decimal.Decimal
}

// Breakdown agregado de comisiones sobre un conjunto de registros.
type Breakdown struct {
	Total           decimal.Decimal
	DeliveryRevenue decimal.Decimal
	Channels        []ChannelTotal // ordenados por nombre de canal
}

// Aggregate suma ventas y comisiones por canal sobre todos los registros.
func Aggregate(records []entity.RevenueRecord, rules []entity.CommissionRule) Breakdown {
	rs := NewRuleSet(rules)
	byChannel := make(map[string]*ChannelTotal)
	var b Breakdown
	for _, rec := range records {
		for field, amount := range rec.Channels {
			name := ChannelName(field)
			ct, ok := byChannel[name]
			if !ok {
				ct = &ChannelTotal{Channel: name}
				byChannel[name] = ct
			}
			c := rs.channel(field, amount)
			ct.Revenue = ct.Revenue.Add(amount)
			ct.Commission = ct.Commission.Add(c)
			b.Total = b.Total.Add(c)
			if IsDelivery(field) {
				b.DeliveryRevenue = b.DeliveryRevenue.Add(amount)
			}
		}
	}
	b.Channels = make([]ChannelTotal, 0, len(byChannel))
	for _, ct := range byChannel {
		b.Channels = append(b.Channels, *ct)
	}
	sort.Slice(b.Channels, func(i, j int) bool { return b.Channels[i].Channel < b.Channels[j].Channel })
	return b
}
