// Package memrepo implementaciones en memoria de los puertos de repositorio para tests de casos de uso.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

var (
	_ repository.StoreRepository           = (*Stores)(nil)
	_ repository.UserRepository            = (*Users)(nil)
	_ repository.ShiftRepository           = (*Shifts)(nil)
	_ repository.RevenueRepository         = (*Revenue)(nil)
	_ repository.CommissionRuleRepository  = (*CommissionRules)(nil)
	_ repository.FixedCostRepository       = (*FixedCosts)(nil)
	_ repository.SupplierRepository        = (*Suppliers)(nil)
	_ repository.ProductRepository         = (*Products)(nil)
	_ repository.PriceHistoryRepository    = (*Prices)(nil)
	_ repository.InvoiceImportRepository   = (*Imports)(nil)
	_ repository.BankTransactionRepository = (*BankTransactions)(nil)
	_ repository.RuleRepository            = (*Rules)(nil)
)

func inWindow(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

func inSet(id string, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Stores repositorio de locales.
type Stores struct {
	mu   sync.Mutex
	data map[string]entity.Store
}

func NewStores(seed ...entity.Store) *Stores {
	r := &Stores{data: map[string]entity.Store{}}
	for _, s := range seed {
		r.data[s.ID] = s
	}
	return r
}

func (r *Stores) Create(_ context.Context, s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = *s
	return nil
}

func (r *Stores) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *Stores) List(_ context.Context, activeOnly bool) ([]*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Store{}
	for _, s := range r.data {
		if activeOnly && !s.Active {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Stores) Update(_ context.Context, s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[s.ID] = *s
	return nil
}

func (r *Stores) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// Users repositorio de usuarios.
type Users struct {
	mu   sync.Mutex
	data map[string]entity.User
}

func NewUsers(seed ...entity.User) *Users {
	r := &Users{data: map[string]entity.User{}}
	for _, u := range seed {
		r.data[u.ID] = u
	}
	return r
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.data[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.data {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) List(_ context.Context, storeID string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.User{}
	for _, u := range r.data {
		if storeID != "" && u.StoreID != storeID {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Users) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.data[u.ID] = *u
	return nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

// Shifts repositorio de turnos.
type Shifts struct {
	mu   sync.Mutex
	data map[string]entity.Shift
}

func NewShifts(seed ...entity.Shift) *Shifts {
	r := &Shifts{data: map[string]entity.Shift{}}
	for _, s := range seed {
		r.data[s.ID] = s
	}
	return r
}

func (r *Shifts) Create(_ context.Context, s *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = *s
	return nil
}

func (r *Shifts) GetByID(_ context.Context, id string) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *Shifts) Update(_ context.Context, s *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[s.ID] = *s
	return nil
}

func (r *Shifts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *Shifts) List(_ context.Context, f repository.ShiftFilter) ([]entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Shift{}
	for _, s := range r.data {
		if !inSet(s.StoreID, f.StoreIDs) || (f.EmployeeID != "" && s.EmployeeID != f.EmployeeID) {
			continue
		}
		if !inWindow(s.Date, f.From, f.To) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

// Revenue repositorio de registros iPratico.
type Revenue struct {
	mu   sync.Mutex
	data map[string]entity.RevenueRecord
}

func NewRevenue(seed ...entity.RevenueRecord) *Revenue {
	r := &Revenue{data: map[string]entity.RevenueRecord{}}
	for _, rec := range seed {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		r.data[rec.ID] = rec
	}
	return r
}

func (r *Revenue) Create(_ context.Context, rec *entity.RevenueRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = *rec
	return nil
}

func (r *Revenue) GetByID(_ context.Context, id string) (*entity.RevenueRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *Revenue) Update(_ context.Context, rec *entity.RevenueRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[rec.ID] = *rec
	return nil
}

func (r *Revenue) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *Revenue) List(_ context.Context, f repository.RevenueFilter) ([]entity.RevenueRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.RevenueRecord{}
	for _, rec := range r.data {
		if inSet(rec.StoreID, f.StoreIDs) && inWindow(rec.OrderDate, f.From, f.To) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.Before(out[j].OrderDate) })
	return out, nil
}

// CommissionRules repositorio de reglas de comisión.
type CommissionRules struct {
	mu   sync.Mutex
	data []entity.CommissionRule
}

func NewCommissionRules(seed ...entity.CommissionRule) *CommissionRules {
	return &CommissionRules{data: append([]entity.CommissionRule{}, seed...)}
}

func (r *CommissionRules) Create(_ context.Context, rule *entity.CommissionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, *rule)
	return nil
}

func (r *CommissionRules) GetByID(_ context.Context, id string) (*entity.CommissionRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.ID == id {
			x := x
			return &x, nil
		}
	}
	return nil, nil
}

func (r *CommissionRules) Update(_ context.Context, rule *entity.CommissionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == rule.ID {
			r.data[i] = *rule
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CommissionRules) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == id {
			r.data = append(r.data[:i], r.data[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CommissionRules) List(context.Context) ([]entity.CommissionRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.CommissionRule{}, r.data...), nil
}

// FixedCosts repositorio de costos fijos.
type FixedCosts struct {
	mu   sync.Mutex
	data []entity.FixedCost
}

func NewFixedCosts(seed ...entity.FixedCost) *FixedCosts {
	return &FixedCosts{data: append([]entity.FixedCost{}, seed...)}
}

func (r *FixedCosts) Create(_ context.Context, c *entity.FixedCost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, *c)
	return nil
}

func (r *FixedCosts) GetByID(_ context.Context, id string) (*entity.FixedCost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.data {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *FixedCosts) Update(_ context.Context, c *entity.FixedCost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == c.ID {
			r.data[i] = *c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *FixedCosts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == id {
			r.data = append(r.data[:i], r.data[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *FixedCosts) List(_ context.Context, activeOnly bool) ([]entity.FixedCost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.FixedCost{}
	for _, c := range r.data {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Suppliers repositorio de proveedores.
type Suppliers struct {
	mu   sync.Mutex
	data map[string]entity.Supplier
}

func NewSuppliers() *Suppliers { return &Suppliers{data: map[string]entity.Supplier{}} }

func (r *Suppliers) Create(_ context.Context, s *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.VATNumber == s.VATNumber {
			return domain.ErrDuplicate
		}
	}
	r.data[s.ID] = *s
	return nil
}

func (r *Suppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *Suppliers) GetByVAT(_ context.Context, vat string) (*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.data {
		if s.VATNumber == vat {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (r *Suppliers) Update(_ context.Context, s *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = *s
	return nil
}

func (r *Suppliers) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := []*entity.Supplier{}
	for _, s := range r.data {
		s := s
		all = append(all, &s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return []*entity.Supplier{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Len número de proveedores guardados.
func (r *Suppliers) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// Products repositorio de materie prime.
type Products struct {
	mu   sync.Mutex
	data map[string]entity.Product
	// FailOn hace fallar Create/Update para el nombre indicado (tests de errores por línea).
	FailOn string
}

func NewProducts() *Products { return &Products{data: map[string]entity.Product{}} }

func (r *Products) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailOn != "" && p.Name == r.FailOn {
		return domain.ErrConflict
	}
	r.data[p.ID] = *p
	return nil
}

func (r *Products) GetBySupplierAndCode(_ context.Context, supplierID, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.data {
		if p.SupplierID == supplierID && p.Code != "" && p.Code == code {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *Products) GetBySupplierAndName(_ context.Context, supplierID, name string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.data {
		if p.SupplierID == supplierID && strings.EqualFold(p.Name, name) {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *Products) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailOn != "" && p.Name == r.FailOn {
		return domain.ErrConflict
	}
	r.data[p.ID] = *p
	return nil
}

func (r *Products) ListBySupplier(_ context.Context, supplierID string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range r.data {
		if p.SupplierID == supplierID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Prices histórico de precios con unicidad (producto, número, fecha).
type Prices struct {
	mu   sync.Mutex
	data []entity.PriceHistory
}

func NewPrices() *Prices { return &Prices{} }

func (r *Prices) Create(_ context.Context, ph *entity.PriceHistory) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.ProductID == ph.ProductID && x.InvoiceNumber == ph.InvoiceNumber && x.InvoiceDate.Equal(ph.InvoiceDate) {
			return false, nil
		}
	}
	r.data = append(r.data, *ph)
	return true, nil
}

func (r *Prices) ListByProduct(_ context.Context, productID string) ([]entity.PriceHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.PriceHistory{}
	for _, x := range r.data {
		if x.ProductID == productID {
			out = append(out, x)
		}
	}
	return out, nil
}

// Len número de precios guardados.
func (r *Prices) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// Imports registro de XML importados.
type Imports struct {
	mu   sync.Mutex
	data []entity.InvoiceImport
}

func NewImports() *Imports { return &Imports{} }

func (r *Imports) Create(_ context.Context, imp *entity.InvoiceImport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, *imp)
	return nil
}

func (r *Imports) GetByDigest(_ context.Context, digest string) (*entity.InvoiceImport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.Digest == digest {
			x := x
			return &x, nil
		}
	}
	return nil, nil
}

func (r *Imports) List(_ context.Context, limit, offset int) ([]entity.InvoiceImport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.data) {
		return []entity.InvoiceImport{}, nil
	}
	end := offset + limit
	if end > len(r.data) {
		end = len(r.data)
	}
	return append([]entity.InvoiceImport{}, r.data[offset:end]...), nil
}

// BankTransactions repositorio de movimientos bancarios.
type BankTransactions struct {
	mu   sync.Mutex
	data []entity.BankTransaction
}

func NewBankTransactions(seed ...entity.BankTransaction) *BankTransactions {
	return &BankTransactions{data: append([]entity.BankTransaction{}, seed...)}
}

func (r *BankTransactions) Create(_ context.Context, tx *entity.BankTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, *tx)
	return nil
}

func (r *BankTransactions) GetByID(_ context.Context, id string) (*entity.BankTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.ID == id {
			x := x
			return &x, nil
		}
	}
	return nil, nil
}

func (r *BankTransactions) UpdateClassification(_ context.Context, tx *entity.BankTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == tx.ID {
			r.data[i].Category = tx.Category
			r.data[i].RuleID = tx.RuleID
			r.data[i].StoreID = tx.StoreID
			r.data[i].Reconciled = tx.Reconciled
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *BankTransactions) List(_ context.Context, f repository.BankTransactionFilter) ([]entity.BankTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.BankTransaction{}
	for _, x := range r.data {
		if f.StoreID != "" && x.StoreID != f.StoreID {
			continue
		}
		if f.Account != "" && x.Account != f.Account {
			continue
		}
		if f.Category != "" && x.Category != f.Category {
			continue
		}
		if f.OnlyUncategorized && x.Category != "" {
			continue
		}
		if f.OnlyUnreconciled && x.Reconciled {
			continue
		}
		if !inWindow(x.Date, f.From, f.To) {
			continue
		}
		out = append(out, x)
	}
	return out, nil
}

// Rules repositorio de reglas bancarias.
type Rules struct {
	mu   sync.Mutex
	data []entity.Rule
}

func NewRules(seed ...entity.Rule) *Rules {
	return &Rules{data: append([]entity.Rule{}, seed...)}
}

func (r *Rules) Create(_ context.Context, rule *entity.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, *rule)
	return nil
}

func (r *Rules) GetByID(_ context.Context, id string) (*entity.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.ID == id {
			x := x
			return &x, nil
		}
	}
	return nil, nil
}

func (r *Rules) Update(_ context.Context, rule *entity.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == rule.ID {
			r.data[i] = *rule
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *Rules) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == id {
			r.data = append(r.data[:i], r.data[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *Rules) List(context.Context) ([]entity.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]entity.Rule{}, r.data...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

// ImportTx ejecuta la función de importación sobre los repos en memoria (sin rollback).
type ImportTx struct {
	Products *Products
	Prices   *Prices
}

func (tx ImportTx) RunImportLine(_ context.Context, fn func(products repository.ProductRepository, prices repository.PriceHistoryRepository) error) error {
	return fn(tx.Products, tx.Prices)
}
