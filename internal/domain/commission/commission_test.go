package commission_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/domain/commission"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

var rules = []entity.CommissionRule{
	{AppDelivery: "Glovo", Percentuale: d("10")},
	{AppDelivery: "Deliveroo", Percentuale: d("25")},
}

func TestCompute_GlovoDiezPorCiento(t *testing.T) {
	rec := entity.RevenueRecord{Channels: map[string]decimal.Decimal{"sourceApp_glovo": d("100")}}
	assert.True(t, d("10").Equal(commission.Compute(rec, rules)))
}

func TestCompute_CanalSinReglaAportaCero(t *testing.T) {
	rec := entity.RevenueRecord{Channels: map[string]decimal.Decimal{
		"sourceApp_justeat": d("80"),
		"sourceApp_store":   d("500"),
	}}
	assert.True(t, commission.Compute(rec, rules).IsZero())
}

func TestCompute_CoincidenciaExacta(t *testing.T) {
	// "glovo" en minúscula en la regla no coincide con el canal capitalizado
	rec := entity.RevenueRecord{Channels: map[string]decimal.Decimal{"sourceApp_glovo": d("100")}}
	lower := []entity.CommissionRule{{AppDelivery: "glovo", Percentuale: d("10")}}
	assert.True(t, commission.Compute(rec, lower).IsZero())
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "Glovo", commission.ChannelName("sourceApp_glovo"))
	assert.Equal(t, "UberEats", commission.ChannelName("sourceApp_uberEats"))
	assert.Equal(t, "", commission.ChannelName("sourceApp_"))
	assert.True(t, commission.IsDelivery("sourceApp_glovo"))
	assert.False(t, commission.IsDelivery("sourceApp_store"))
}

func TestAggregate(t *testing.T) {
	records := []entity.RevenueRecord{
		{Channels: map[string]decimal.Decimal{"sourceApp_glovo": d("100"), "sourceApp_store": d("300")}},
		{Channels: map[string]decimal.Decimal{"sourceApp_glovo": d("50"), "sourceApp_deliveroo": d("40")}},
	}
	b := commission.Aggregate(records, rules)
	assert.True(t, d("25").Equal(b.Total), b.Total.String()) // 15 + 10
	assert.True(t, d("190").Equal(b.DeliveryRevenue))
	require.Len(t, b.Channels, 3)
	assert.Equal(t, "Deliveroo", b.Channels[0].Channel)
	assert.Equal(t, "Glovo", b.Channels[1].Channel)
	assert.True(t, d("150").Equal(b.Channels[1].Revenue))
	assert.True(t, d("15").Equal(b.Channels[1].Commission))
}
