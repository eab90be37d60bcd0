// Package banking categoriza movimientos bancarios con reglas y calcula los totales de conciliación.
package banking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

type compiledRule struct {
	rule    entity.Rule
	pattern string
	re      *regexp.Regexp
}

// Matcher reglas activas ordenadas por prioridad, con las expresiones ya compiladas.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher prepara las reglas. Las inactivas y las regex inválidas se descartan.
func NewMatcher(rules []entity.Rule) *Matcher {
	sorted := make([]entity.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Active && strings.TrimSpace(r.Pattern) != "" {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	m := &Matcher{}
	for _, r := range sorted {
		cr := compiledRule{rule: r, pattern: strings.ToLower(strings.TrimSpace(r.Pattern))}
		if r.MatchType == entity.MatchRegex {
			re, err := regexp.Compile("(?i)" + r.Pattern)
			if err != nil {
				continue
			}
			cr.re = re
		}
		m.rules = append(m.rules, cr)
	}
	return m
}

// Len número de reglas utilizables.
func (m *Matcher) Len() int { return len(m.rules) }

// Match primera regla que coincide con la descripción.
func (m *Matcher) Match(description string) (entity.Rule, bool) {
	desc := strings.ToLower(strings.TrimSpace(description))
	for _, cr := range m.rules {
		if cr.matches(desc, description) {
			return cr.rule, true
		}
	}
	return entity.Rule{}, false
}

func (cr compiledRule) matches(lowerDesc, rawDesc string) bool {
	switch cr.rule.MatchType {
	case entity.MatchStartsWith:
		return strings.HasPrefix(lowerDesc, cr.pattern)
	case entity.MatchRegex:
		return cr.re != nil && cr.re.MatchString(rawDesc)
	default:
		return strings.Contains(lowerDesc, cr.pattern)
	}
}

// Apply categoriza el movimiento con la primera regla que coincide.
// Si la regla tiene locale y el movimiento no, también asigna el locale.
func (m *Matcher) Apply(tx *entity.BankTransaction) bool {
	rule, ok := m.Match(tx.Description)
	if !ok {
		return false
	}
	tx.Category = rule.Category
	tx.RuleID = rule.ID
	if tx.StoreID == "" && rule.StoreID != "" {
		tx.StoreID = rule.StoreID
	}
	return true
}

// Summary totales para la vista de conciliación bancaria.
type Summary struct {
	Income        decimal.Decimal
	Expenses      decimal.Decimal // en valor absoluto
	Net           decimal.Decimal
	Count         int
	Uncategorized int
	Unreconciled  int
	ByCategory    map[string]decimal.Decimal
}

// Summarize agrega los movimientos.
func Summarize(txs []entity.BankTransaction) Summary {
	s := Summary{ByCategory: make(map[string]decimal.Decimal)}
	for _, tx := range txs {
		s.Count++
		if tx.Amount.IsNegative() {
			s.Expenses = s.Expenses.Add(tx.Amount.Abs())
		} else {
			s.Income = s.Income.Add(tx.Amount)
		}
		s.Net = s.Net.Add(tx.Amount)
		if tx.Category == "" {
			s.Uncategorized++
		} else {
			s.ByCategory[tx.Category] = s.ByCategory[tx.Category].Add(tx.Amount)
		}
		if !tx.Reconciled {
			s.Unreconciled++
		}
	}
	return s
}
