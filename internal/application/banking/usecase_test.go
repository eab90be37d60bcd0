package banking

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/jhoicas/Ristoranti-api/internal/testutil/memrepo"
)

type stubReader struct {
	rows []StatementRow
	errs []error
	err  error
}

func (s stubReader) ReadStatement(io.Reader) ([]StatementRow, []error, error) {
	return s.rows, s.errs, s.err
}

func day(dd int) time.Time { return time.Date(2026, 10, dd, 0, 0, 0, 0, time.UTC) }

func rules() *memrepo.Rules {
	return memrepo.NewRules(
		entity.Rule{ID: "r-affitto", Pattern: "affitto", MatchType: entity.MatchContains, Category: "Affitto", StoreID: "s1", Priority: 1, Active: true},
		entity.Rule{ID: "r-pos", Pattern: "^POS .*GLOVO", MatchType: entity.MatchRegex, Category: "Incassi delivery", Priority: 2, Active: true},
		entity.Rule{ID: "r-enel", Pattern: "enel", MatchType: entity.MatchStartsWith, Category: "Utenze", Priority: 3, Active: true},
	)
}

func statement() stubReader {
	return stubReader{
		rows: []StatementRow{
			{Line: 2, Date: day(1), Description: "BONIFICO AFFITTO OTTOBRE", Amount: decimal.RequireFromString("-2500")},
			{Line: 3, Date: day(2), Description: "POS 1234 GLOVO SRL", Amount: decimal.RequireFromString("830.40")},
			{Line: 4, Date: day(3), Description: "ENEL ENERGIA BOLLETTA", Amount: decimal.RequireFromString("-310.2")},
			{Line: 5, Date: day(3), Description: "COMMISSIONI", Amount: decimal.RequireFromString("-2")},
		},
		errs: []error{errors.New("línea 6: importe inválido")},
	}
}

func TestImportStatement_CategorizesAndDedups(t *testing.T) {
	txs := memrepo.NewBankTransactions()
	uc := NewBankUseCase(txs, rules(), statement(), nil)
	ctx := context.Background()

	res, err := uc.ImportStatement(ctx, "IT60X0542811101000000123456", "", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Imported)
	assert.Equal(t, 3, res.Categorized)
	assert.Equal(t, []string{"línea 6: importe inválido"}, res.Errors)

	list, err := txs.List(ctx, repository.BankTransactionFilter{Category: "Affitto"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s1", list[0].StoreID, "la regla asigna el locale")
	assert.Equal(t, res.BatchID, list[0].BatchID)

	again, err := uc.ImportStatement(ctx, "IT60X0542811101000000123456", "", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, again.Imported)
	assert.Equal(t, 4, again.Skipped)
}

func TestImportStatement_ReaderError(t *testing.T) {
	uc := NewBankUseCase(memrepo.NewBankTransactions(), rules(), stubReader{err: errors.New("sin cabecera")}, nil)
	_, err := uc.ImportStatement(context.Background(), "acc", "", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyRules_OnlyUncategorized(t *testing.T) {
	txs := memrepo.NewBankTransactions(
		entity.BankTransaction{ID: "t1", Description: "Enel Energia", Amount: decimal.NewFromInt(-100), Date: day(5)},
		entity.BankTransaction{ID: "t2", Description: "Enel Energia", Amount: decimal.NewFromInt(-100), Date: day(6), Category: "Manuale"},
		entity.BankTransaction{ID: "t3", Description: "Prelievo", Amount: decimal.NewFromInt(-50), Date: day(6)},
	)
	uc := NewBankUseCase(txs, rules(), statement(), nil)
	ctx := context.Background()

	res, err := uc.ApplyRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Updated)

	t2, err := txs.GetByID(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, "Manuale", t2.Category, "las categorías existentes no se tocan")
}

func TestUpdateAndList_Summary(t *testing.T) {
	txs := memrepo.NewBankTransactions(
		entity.BankTransaction{ID: "t1", Description: "Incasso", Amount: decimal.NewFromInt(1000), Date: day(5), Category: "Incassi"},
		entity.BankTransaction{ID: "t2", Description: "Fornitore", Amount: decimal.NewFromInt(-400), Date: day(6), Category: "Materie prime", RuleID: "r-x"},
	)
	uc := NewBankUseCase(txs, rules(), statement(), nil)
	ctx := context.Background()

	cat := "Acquisti"
	yes := true
	upd, err := uc.Update(ctx, "t2", dto.UpdateBankTransactionRequest{Category: &cat, Reconciled: &yes})
	require.NoError(t, err)
	assert.Equal(t, "Acquisti", upd.Category)
	assert.Empty(t, upd.RuleID)
	assert.True(t, upd.Reconciled)

	list, err := uc.List(ctx, repository.BankTransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.True(t, list.Summary.Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, list.Summary.Expenses.Equal(decimal.NewFromInt(400)))
	assert.True(t, list.Summary.Net.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 1, list.Summary.Unreconciled)

	_, err = uc.Update(ctx, "nope", dto.UpdateBankTransactionRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRule_RejectsInvalidRegex(t *testing.T) {
	uc := NewBankUseCase(memrepo.NewBankTransactions(), memrepo.NewRules(), statement(), nil)
	_, err := uc.CreateRule(context.Background(), dto.RuleRequest{Name: "x", Pattern: "([", MatchType: entity.MatchRegex, Category: "c"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := uc.CreateRule(context.Background(), dto.RuleRequest{Name: "Affitto", Pattern: "affitto", Category: "Affitto"})
	require.NoError(t, err)
	assert.Equal(t, entity.MatchContains, r.MatchType)
	assert.True(t, r.Active)
}
