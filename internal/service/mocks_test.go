package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests. Each fake can
// be primed with a failure to exercise error paths.

type mockProductRepo struct {
	products map[uuid.UUID]*domain.Product
	failOn   string
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, p *domain.Product) error {
	if m.failOn == "create" {
		return errors.New("create failed")
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) List(_ context.Context, category string, activeOnly bool) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range m.products {
		if category != "" && p.Category != category {
			continue
		}
		if activeOnly && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockProductRepo) ListCategories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (m *mockProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	if m.failOn == "updatestock" {
		return errors.New("update stock failed")
	}
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Stock = stock
	return nil
}

func (m *mockProductRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Active = active
	return nil
}

type mockSaleRepo struct {
	sales  map[uuid.UUID]*domain.Sale
	failOn string
}

func newMockSaleRepo() *mockSaleRepo {
	return &mockSaleRepo{sales: make(map[uuid.UUID]*domain.Sale)}
}

func (m *mockSaleRepo) Create(_ context.Context, s *domain.Sale) error {
	if m.failOn == "create" {
		return errors.New("insert sale failed")
	}
	cp := *s
	m.sales[s.ID] = &cp
	return nil
}

func (m *mockSaleRepo) Update(_ context.Context, id uuid.UUID, update repository.SaleUpdate) error {
	s, ok := m.sales[id]
	if !ok {
		return repository.ErrSaleNotFound
	}
	if update.Customer != nil {
		s.Customer = *update.Customer
	}
	if update.Total != nil {
		s.Total = *update.Total
	}
	if update.Observation != nil {
		s.Observation = *update.Observation
	}
	return nil
}

func (m *mockSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.sales[id]; !ok {
		return repository.ErrSaleNotFound
	}
	delete(m.sales, id)
	return nil
}

func (m *mockSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, repository.ErrSaleNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSaleRepo) List(_ context.Context, from, to *time.Time) ([]*domain.Sale, error) {
	var out []*domain.Sale
	for _, s := range m.sales {
		if from != nil && s.Date.Before(*from) {
			continue
		}
		if to != nil && s.Date.After(*to) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockSaleRepo) TotalsByMethodSince(_ context.Context, since time.Time) (map[domain.PaymentMethod]money.Cents, error) {
	totals := map[domain.PaymentMethod]money.Cents{}
	for _, s := range m.sales {
		if s.Date.Before(since) {
			continue
		}
		totals[s.PaymentMethod] += s.Total
	}
	return totals, nil
}

type mockCustomerRepo struct {
	customers map[uuid.UUID]*domain.Customer
	failOn    string
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[uuid.UUID]*domain.Customer)}
}

func (m *mockCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	cp := *c
	m.customers[c.ID] = &cp
	return nil
}

func (m *mockCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := m.customers[c.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	cp := *c
	m.customers[c.ID] = &cp
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.customers[id]; !ok {
		return repository.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepo) FindByName(_ context.Context, name string) (*domain.Customer, error) {
	if m.failOn == "findbyname" {
		return nil, errors.New("lookup failed")
	}
	for _, c := range m.customers {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCustomerNotFound
}

func (m *mockCustomerRepo) List(_ context.Context) ([]*domain.Customer, error) {
	var out []*domain.Customer
	for _, c := range m.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type mockStockEntryRepo struct {
	entries []*domain.StockEntry
	failOn  string
}

func newMockStockEntryRepo() *mockStockEntryRepo {
	return &mockStockEntryRepo{}
}

func (m *mockStockEntryRepo) Create(_ context.Context, e *domain.StockEntry) error {
	if m.failOn == "create" {
		return errors.New("ledger write failed")
	}
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *mockStockEntryRepo) Update(_ context.Context, e *domain.StockEntry) error {
	for i, existing := range m.entries {
		if existing.ID == e.ID {
			cp := *e
			m.entries[i] = &cp
			return nil
		}
	}
	return repository.ErrStockEntryNotFound
}

func (m *mockStockEntryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, existing := range m.entries {
		if existing.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrStockEntryNotFound
}

func (m *mockStockEntryRepo) List(_ context.Context) ([]*domain.StockEntry, error) {
	out := make([]*domain.StockEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *mockStockEntryRepo) byKind(kind domain.StockEntryKind) []*domain.StockEntry {
	var out []*domain.StockEntry
	for _, e := range m.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type mockTableOrderRepo struct {
	orders map[string]*domain.TableOrder
}

func newMockTableOrderRepo() *mockTableOrderRepo {
	return &mockTableOrderRepo{orders: make(map[string]*domain.TableOrder)}
}

func (m *mockTableOrderRepo) Create(_ context.Context, o *domain.TableOrder) error {
	if _, ok := m.orders[o.TableNumber]; ok {
		return repository.ErrTableAlreadyOpen
	}
	cp := *o
	m.orders[o.TableNumber] = &cp
	return nil
}

func (m *mockTableOrderRepo) Save(_ context.Context, o *domain.TableOrder) error {
	cp := *o
	m.orders[o.TableNumber] = &cp
	return nil
}

func (m *mockTableOrderRepo) Delete(_ context.Context, tableNumber string) error {
	if _, ok := m.orders[tableNumber]; !ok {
		return repository.ErrTableOrderNotFound
	}
	delete(m.orders, tableNumber)
	return nil
}

func (m *mockTableOrderRepo) FindByTable(_ context.Context, tableNumber string) (*domain.TableOrder, error) {
	o, ok := m.orders[tableNumber]
	if !ok {
		return nil, repository.ErrTableOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockTableOrderRepo) List(_ context.Context) ([]*domain.TableOrder, error) {
	var out []*domain.TableOrder
	for _, o := range m.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

type mockExpenseRepo struct {
	expenses map[uuid.UUID]*domain.Expense
}

func newMockExpenseRepo() *mockExpenseRepo {
	return &mockExpenseRepo{expenses: make(map[uuid.UUID]*domain.Expense)}
}

func (m *mockExpenseRepo) Create(_ context.Context, e *domain.Expense) error {
	cp := *e
	m.expenses[e.ID] = &cp
	return nil
}

func (m *mockExpenseRepo) Update(_ context.Context, e *domain.Expense) error {
	if _, ok := m.expenses[e.ID]; !ok {
		return repository.ErrExpenseNotFound
	}
	cp := *e
	m.expenses[e.ID] = &cp
	return nil
}

func (m *mockExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.expenses[id]; !ok {
		return repository.ErrExpenseNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *mockExpenseRepo) List(_ context.Context) ([]*domain.Expense, error) {
	var out []*domain.Expense
	for _, e := range m.expenses {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockExpenseRepo) SumSince(_ context.Context, since time.Time) (money.Cents, error) {
	var total money.Cents
	for _, e := range m.expenses {
		if !e.Date.Before(since) {
			total += e.Amount
		}
	}
	return total, nil
}

type mockSessionRepo struct {
	sessions map[uuid.UUID]*domain.CashierSession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[uuid.UUID]*domain.CashierSession)}
}

func (m *mockSessionRepo) Create(_ context.Context, s *domain.CashierSession) error {
	for _, existing := range m.sessions {
		if existing.ClosedAt == nil {
			return repository.ErrSessionAlreadyOpen
		}
	}
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockSessionRepo) FindOpen(_ context.Context) (*domain.CashierSession, error) {
	for _, s := range m.sessions {
		if s.ClosedAt == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (m *mockSessionRepo) Close(_ context.Context, id uuid.UUID, closedAt time.Time, finalBalance money.Cents) error {
	s, ok := m.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	s.ClosedAt = &closedAt
	s.FinalBalance = &finalBalance
	return nil
}

func (m *mockSessionRepo) List(_ context.Context) ([]*domain.CashierSession, error) {
	var out []*domain.CashierSession
	for _, s := range m.sessions {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}
