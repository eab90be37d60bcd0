package banking_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ristoranti-api/internal/domain/banking"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

func TestMatcher_PrioridadYTipos(t *testing.T) {
	m := banking.NewMatcher([]entity.Rule{
		{ID: "r3", Pattern: "enel", MatchType: entity.MatchContains, Category: "utenze", Priority: 30, Active: true},
		{ID: "r1", Pattern: "POS GLOVO", MatchType: entity.MatchStartsWith, Category: "incassi_delivery", Priority: 10, Active: true},
		{ID: "r2", Pattern: `^bonifico .*affitto`, MatchType: entity.MatchRegex, Category: "affitto", StoreID: "s1", Priority: 20, Active: true},
		{ID: "off", Pattern: "enel", Category: "ignorada", Priority: 1, Active: false},
		{ID: "bad", Pattern: "([", MatchType: entity.MatchRegex, Category: "rota", Priority: 0, Active: true},
	})
	assert.Equal(t, 3, m.Len())

	r, ok := m.Match("pos glovo 12/10")
	assert.True(t, ok)
	assert.Equal(t, "r1", r.ID)

	r, ok = m.Match("Addebito ENEL ENERGIA")
	assert.True(t, ok)
	assert.Equal(t, "utenze", r.Category)

	_, ok = m.Match("prelievo bancomat")
	assert.False(t, ok)

	tx := entity.BankTransaction{Description: "BONIFICO a Rossi affitto ottobre"}
	assert.True(t, m.Apply(&tx))
	assert.Equal(t, "affitto", tx.Category)
	assert.Equal(t, "r2", tx.RuleID)
	assert.Equal(t, "s1", tx.StoreID)
}

func TestApply_NoPisaLocaleExistente(t *testing.T) {
	m := banking.NewMatcher([]entity.Rule{{ID: "r", Pattern: "affitto", Category: "affitto", StoreID: "s1", Active: true}})
	tx := entity.BankTransaction{Description: "affitto", StoreID: "s9"}
	m.Apply(&tx)
	assert.Equal(t, "s9", tx.StoreID)
}

func TestSummarize(t *testing.T) {
	s := banking.Summarize([]entity.BankTransaction{
		{Amount: decimal.NewFromInt(1000), Category: "incassi", Reconciled: true},
		{Amount: decimal.NewFromInt(-300), Category: "utenze"},
		{Amount: decimal.NewFromInt(-50)},
	})
	assert.True(t, decimal.NewFromInt(1000).Equal(s.Income))
	assert.True(t, decimal.NewFromInt(350).Equal(s.Expenses))
	assert.True(t, decimal.NewFromInt(650).Equal(s.Net))
	assert.Equal(t, 1, s.Uncategorized)
	assert.Equal(t, 2, s.Unreconciled)
	assert.True(t, decimal.NewFromInt(-300).Equal(s.ByCategory["utenze"]))
}
