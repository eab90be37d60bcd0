// Package banking contiene los casos de uso de movimientos bancarios: importación del
// estado de cuenta, categorización por reglas, conciliación y CRUD de reglas.
package banking

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	dombanking "github.com/jhoicas/Ristoranti-api/internal/domain/banking"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// BankUseCase orquesta movimientos y reglas.
type BankUseCase struct {
	txRepo   repository.BankTransactionRepository
	ruleRepo repository.RuleRepository
	reader   StatementReader
	log      *logger.Logger
}

// NewBankUseCase construye el caso de uso.
func NewBankUseCase(txRepo repository.BankTransactionRepository, ruleRepo repository.RuleRepository, reader StatementReader, log *logger.Logger) *BankUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BankUseCase{txRepo: txRepo, ruleRepo: ruleRepo, reader: reader, log: log.Component("banking")}
}

// ImportStatement lee el estado de cuenta, descarta los movimientos ya importados
// (misma cuenta, fecha, importe y descripción) y categoriza los nuevos con las reglas activas.
func (uc *BankUseCase) ImportStatement(ctx context.Context, account, storeID string, r io.Reader) (*dto.BankImportResponse, error) {
	rows, rowErrs, err := uc.reader.ReadStatement(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	resp := &dto.BankImportResponse{BatchID: uuid.New().String(), Errors: []string{}}
	for _, e := range rowErrs {
		resp.Errors = append(resp.Errors, e.Error())
	}
	if len(rows) == 0 {
		return resp, nil
	}

	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	matcher := dombanking.NewMatcher(rules)

	from, to := rows[0].Date, rows[0].Date
	for _, row := range rows {
		if row.Date.Before(from) {
			from = row.Date
		}
		if row.Date.After(to) {
			to = row.Date
		}
	}
	existing, err := uc.txRepo.List(ctx, repository.BankTransactionFilter{Account: account, From: from, To: to})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, tx := range existing {
		seen[dedupKey(tx.Date, tx.Amount.String(), tx.Description)] = true
	}

	now := time.Now()
	for _, row := range rows {
		key := dedupKey(row.Date, row.Amount.String(), row.Description)
		if seen[key] {
			resp.Skipped++
			continue
		}
		seen[key] = true
		tx := &entity.BankTransaction{
			ID:          uuid.New().String(),
			StoreID:     storeID,
			Account:     account,
			Date:        row.Date,
			Amount:      row.Amount,
			Description: row.Description,
			BatchID:     resp.BatchID,
			CreatedAt:   now,
		}
		if matcher.Apply(tx) {
			resp.Categorized++
		}
		if err := uc.txRepo.Create(ctx, tx); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("línea %d: %v", row.Line, err))
			continue
		}
		resp.Imported++
	}
	uc.log.Info().
		Str("batch_id", resp.BatchID).
		Str("account", account).
		Int("imported", resp.Imported).
		Int("categorized", resp.Categorized).
		Int("skipped", resp.Skipped).
		Int("errors", len(resp.Errors)).
		Msg("estado de cuenta importado")
	return resp, nil
}

// ApplyRules vuelve a aplicar las reglas a los movimientos sin categoría.
func (uc *BankUseCase) ApplyRules(ctx context.Context) (*dto.ApplyRulesResponse, error) {
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	matcher := dombanking.NewMatcher(rules)
	txs, err := uc.txRepo.List(ctx, repository.BankTransactionFilter{OnlyUncategorized: true})
	if err != nil {
		return nil, err
	}
	resp := &dto.ApplyRulesResponse{Processed: len(txs)}
	if matcher.Len() == 0 {
		return resp, nil
	}
	for i := range txs {
		if !matcher.Apply(&txs[i]) {
			continue
		}
		if err := uc.txRepo.UpdateClassification(ctx, &txs[i]); err != nil {
			return nil, fmt.Errorf("banca: actualizar movimiento %s: %w", txs[i].ID, err)
		}
		resp.Updated++
	}
	return resp, nil
}

// List devuelve los movimientos filtrados con su resumen.
func (uc *BankUseCase) List(ctx context.Context, f repository.BankTransactionFilter) (*dto.BankListResponse, error) {
	txs, err := uc.txRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.BankListResponse{Items: make([]dto.BankTransactionResponse, 0, len(txs))}
	for i := range txs {
		out.Items = append(out.Items, toTxResponse(&txs[i]))
	}
	s := dombanking.Summarize(txs)
	out.Summary = dto.BankSummaryDTO{
		Income:        s.Income.Round(2),
		Expenses:      s.Expenses.Round(2),
		Net:           s.Net.Round(2),
		Count:         s.Count,
		Uncategorized: s.Uncategorized,
		Unreconciled:  s.Unreconciled,
		ByCategory:    s.ByCategory,
	}
	return out, nil
}

// Update categorización manual, asignación de locale o conciliación.
// Una categoría manual desvincula la regla que la había asignado.
func (uc *BankUseCase) Update(ctx context.Context, id string, in dto.UpdateBankTransactionRequest) (*dto.BankTransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	if in.Category != nil {
		tx.Category = *in.Category
		tx.RuleID = ""
	}
	if in.StoreID != nil {
		tx.StoreID = *in.StoreID
	}
	if in.Reconciled != nil {
		tx.Reconciled = *in.Reconciled
	}
	if err := uc.txRepo.UpdateClassification(ctx, tx); err != nil {
		return nil, err
	}
	out := toTxResponse(tx)
	return &out, nil
}

// ListRules devuelve las reglas por prioridad.
func (uc *BankUseCase) ListRules(ctx context.Context) ([]dto.RuleResponse, error) {
	rules, err := uc.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RuleResponse, 0, len(rules))
	for i := range rules {
		out = append(out, toRuleResponse(&rules[i]))
	}
	return out, nil
}

// CreateRule registra una regla. Sin match_type se usa "contains".
func (uc *BankUseCase) CreateRule(ctx context.Context, in dto.RuleRequest) (*dto.RuleResponse, error) {
	now := time.Now()
	r := &entity.Rule{ID: uuid.New().String(), CreatedAt: now}
	if err := applyRuleRequest(r, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = now
	if err := uc.ruleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	out := toRuleResponse(r)
	return &out, nil
}

// UpdateRule reemplaza los datos de la regla.
func (uc *BankUseCase) UpdateRule(ctx context.Context, id string, in dto.RuleRequest) (*dto.RuleResponse, error) {
	r, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyRuleRequest(r, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now()
	if err := uc.ruleRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	out := toRuleResponse(r)
	return &out, nil
}

// DeleteRule elimina una regla.
func (uc *BankUseCase) DeleteRule(ctx context.Context, id string) error {
	return uc.ruleRepo.Delete(ctx, id)
}

func applyRuleRequest(r *entity.Rule, in dto.RuleRequest) error {
	matchType := in.MatchType
	if matchType == "" {
		matchType = entity.MatchContains
	}
	candidate := entity.Rule{ID: r.ID, Pattern: in.Pattern, MatchType: matchType, Active: true}
	if matchType == entity.MatchRegex && dombanking.NewMatcher([]entity.Rule{candidate}).Len() == 0 {
		return fmt.Errorf("%w: expresión regular inválida %q", domain.ErrInvalidInput, in.Pattern)
	}
	r.Name = in.Name
	r.Pattern = in.Pattern
	r.MatchType = matchType
	r.Category = in.Category
	r.StoreID = in.StoreID
	r.Priority = in.Priority
	r.Active = in.Active == nil || *in.Active
	return nil
}

func dedupKey(date time.Time, amount, description string) string {
	return date.Format("2006-01-02") + "|" + amount + "|" + description
}

func toTxResponse(tx *entity.BankTransaction) dto.BankTransactionResponse {
	return dto.BankTransactionResponse{
		ID:          tx.ID,
		StoreID:     tx.StoreID,
		Account:     tx.Account,
		Date:        tx.Date.Format("2006-01-02"),
		Amount:      tx.Amount,
		Description: tx.Description,
		Category:    tx.Category,
		RuleID:      tx.RuleID,
		Reconciled:  tx.Reconciled,
		BatchID:     tx.BatchID,
		CreatedAt:   tx.CreatedAt,
	}
}

func toRuleResponse(r *entity.Rule) dto.RuleResponse {
	return dto.RuleResponse{
		ID:        r.ID,
		Name:      r.Name,
		Pattern:   r.Pattern,
		MatchType: r.MatchType,
		Category:  r.Category,
		StoreID:   r.StoreID,
		Priority:  r.Priority,
		Active:    r.Active,
	}
}
