package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// tables is the whole in-memory database; a transaction snapshot is a clone.
type tables struct {
	users      map[uuid.UUID]model.User
	products   map[uuid.UUID]model.Product
	variations map[uuid.UUID]model.ProductVariation
	orders     map[uuid.UUID]model.Order
	items      map[uuid.UUID]model.OrderItem
	policies   map[uuid.UUID]model.ReturnPolicy
	requests   map[uuid.UUID]model.ReturnRequest
	history    []model.ReturnStatusHistory
	qcs        map[uuid.UUID]model.QualityCheck // by return request id
	damaged    map[uuid.UUID]model.DamagedInventory
	stockCard  []model.InventoryTransaction
	outbox     []model.OutboxEvent
	audits     []model.AuditLog
	seq        int
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t tables) clone() tables {
	return tables{
		users:      cloneMap(t.users),
		products:   cloneMap(t.products),
		variations: cloneMap(t.variations),
		orders:     cloneMap(t.orders),
		items:      cloneMap(t.items),
		policies:   cloneMap(t.policies),
		requests:   cloneMap(t.requests),
		history:    append([]model.ReturnStatusHistory(nil), t.history...),
		qcs:        cloneMap(t.qcs),
		damaged:    cloneMap(t.damaged),
		stockCard:  append([]model.InventoryTransaction(nil), t.stockCard...),
		outbox:     append([]model.OutboxEvent(nil), t.outbox...),
		audits:     append([]model.AuditLog(nil), t.audits...),
		seq:        t.seq,
	}
}

type memStore struct {
	mu        sync.Mutex
	t         tables
	failAudit error
}

func newMemStore() *memStore {
	return &memStore{t: tables{
		users:      map[uuid.UUID]model.User{},
		products:   map[uuid.UUID]model.Product{},
		variations: map[uuid.UUID]model.ProductVariation{},
		orders:     map[uuid.UUID]model.Order{},
		items:      map[uuid.UUID]model.OrderItem{},
		policies:   map[uuid.UUID]model.ReturnPolicy{},
		requests:   map[uuid.UUID]model.ReturnRequest{},
		qcs:        map[uuid.UUID]model.QualityCheck{},
		damaged:    map[uuid.UUID]model.DamagedInventory{},
	}}
}

func (s *memStore) read(fn func(t *tables)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.t)
}

type fakeTxKey struct{}

// fakeTxManager serialises transactions and restores the snapshot taken at
// begin when fn fails, which stands in for both row locks and rollback.
type fakeTxManager struct {
	store *memStore
	txMu  sync.Mutex
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.store.mu.Lock()
	snap := m.store.t.clone()
	m.store.mu.Unlock()

	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		m.store.mu.Lock()
		m.store.t = snap
		m.store.mu.Unlock()
		return err
	}
	return nil
}

// --- returns ---

type fakeReturnRepo struct{ s *memStore }

var _ repository.ReturnRepository = fakeReturnRepo{}

func (r fakeReturnRepo) Create(_ context.Context, req *model.ReturnRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.t.requests {
		if other.OrderItemID == req.OrderItemID && !other.Status.IsTerminal() {
			return gorm.ErrDuplicatedKey
		}
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	cp := *req
	cp.History = nil
	r.s.t.requests[req.ID] = cp
	return nil
}

func (r fakeReturnRepo) Update(_ context.Context, req *model.ReturnRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.requests[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *req
	cp.History = nil
	r.s.t.requests[req.ID] = cp
	return nil
}

func (r fakeReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.t.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &req, nil
}

func (r fakeReturnRepo) FindByIDWithHistory(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	req, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.s.read(func(t *tables) {
		for _, h := range t.history {
			if h.ReturnRequestID == id {
				req.History = append(req.History, h)
			}
		}
	})
	return req, nil
}

func (r fakeReturnRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	return r.FindByID(ctx, id)
}

func (r fakeReturnRepo) HasActiveForItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.t.requests {
		if req.OrderItemID == itemID && !req.Status.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeReturnRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]model.ReturnRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ReturnRequest
	for _, req := range r.s.t.requests {
		if req.OrderID == orderID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r fakeReturnRepo) List(_ context.Context, f repository.ReturnFilter) ([]model.ReturnRequest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ReturnRequest
	for _, req := range r.s.t.requests {
		if f.UserID != nil && req.UserID != *f.UserID {
			continue
		}
		if f.OrderID != nil && req.OrderID != *f.OrderID {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(req.ReturnNumber, f.Search) && !strings.Contains(req.TrackingNumber, f.Search) {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReturnNumber > out[j].ReturnNumber })
	total := int64(len(out))
	if f.Limit > 0 {
		start := (f.Page - 1) * f.Limit
		if start > len(out) {
			start = len(out)
		}
		end := start + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (r fakeReturnRepo) ListExpiredPending(_ context.Context, now time.Time, limit int) ([]model.ReturnRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ReturnRequest
	for _, req := range r.s.t.requests {
		if req.Status == model.ReturnStatusPending && req.ReturnDeadline.Before(now) && len(out) < limit {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r fakeReturnRepo) CountActiveByPolicy(_ context.Context, policyID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, req := range r.s.t.requests {
		if req.PolicyID == policyID && !req.Status.IsTerminal() {
			n++
		}
	}
	return n, nil
}

func (r fakeReturnRepo) NextReturnNumber(_ context.Context, now time.Time) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.t.seq++
	return fmt.Sprintf("RET-%s-%05d", now.Format("20060102"), r.s.t.seq), nil
}

func (r fakeReturnRepo) AddHistory(_ context.Context, h *model.ReturnStatusHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.ID = uuid.New()
	r.s.t.history = append(r.s.t.history, *h)
	return nil
}

// --- orders ---

type fakeOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = fakeOrderRepo{}

func (r fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.t.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}

func (r fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r fakeOrderRepo) FindItem(_ context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.t.items[itemID]
	if !ok || item.OrderID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	item.Product = r.s.t.products[item.ProductID]
	return &item, nil
}

func (r fakeOrderRepo) FindItemForUpdate(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error) {
	return r.FindItem(ctx, orderID, itemID)
}

func (r fakeOrderRepo) UpdateReturnAggregates(_ context.Context, orderID uuid.UUID, hasActive bool, total decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.t.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.HasActiveReturns = hasActive
	o.TotalReturnedAmount = total
	r.s.t.orders[orderID] = o
	return nil
}

func (r fakeOrderRepo) CloseExpiredReturnWindows(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, o := range r.s.t.orders {
		if o.IsReturnable && o.ReturnWindowExpires != nil && o.ReturnWindowExpires.Before(now) {
			o.IsReturnable = false
			r.s.t.orders[id] = o
			n++
		}
	}
	return n, nil
}

// --- policies ---

type fakePolicyRepo struct{ s *memStore }

var _ repository.PolicyRepository = fakePolicyRepo{}

func (r fakePolicyRepo) Create(_ context.Context, p *model.ReturnPolicy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.s.t.policies[p.ID] = *p
	return nil
}

func (r fakePolicyRepo) Update(_ context.Context, p *model.ReturnPolicy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.policies[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.t.policies[p.ID] = *p
	return nil
}

func (r fakePolicyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReturnPolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.t.policies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r fakePolicyRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReturnPolicy, error) {
	return r.FindByID(ctx, id)
}

func (r fakePolicyRepo) ListCandidates(_ context.Context, productID uuid.UUID, categoryID *uuid.UUID) ([]model.ReturnPolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ReturnPolicy
	for _, p := range r.s.t.policies {
		if !p.IsActive {
			continue
		}
		switch {
		case p.ProductID != nil:
			if *p.ProductID == productID {
				out = append(out, p)
			}
		case p.CategoryID != nil:
			if categoryID != nil && *p.CategoryID == *categoryID {
				out = append(out, p)
			}
		default:
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePolicyRepo) List(_ context.Context, f repository.PolicyFilter) ([]model.ReturnPolicy, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ReturnPolicy
	for _, p := range r.s.t.policies {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.ProductID != nil && (p.ProductID == nil || *p.ProductID != *f.ProductID) {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// --- users ---

type fakeUserRepo struct{ s *memStore }

var _ repository.UserRepository = fakeUserRepo{}

func (r fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.t.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r fakeUserRepo) IsTrusted(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.users[id].IsTrusted, nil
}

// --- products ---

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = fakeProductRepo{}

func (r fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.t.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r fakeProductRepo) FindVariationForUpdate(_ context.Context, id uuid.UUID) (*model.ProductVariation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.t.variations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r fakeProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.t.products[id]
	p.CurrentStock = stock
	r.s.t.products[id] = p
	return nil
}

func (r fakeProductRepo) UpdateVariationStock(_ context.Context, id uuid.UUID, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.t.variations[id]
	v.CurrentStock = stock
	r.s.t.variations[id] = v
	return nil
}

// --- quality checks ---

type fakeQualityCheckRepo struct{ s *memStore }

var _ repository.QualityCheckRepository = fakeQualityCheckRepo{}

func (r fakeQualityCheckRepo) Create(_ context.Context, qc *model.QualityCheck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.qcs[qc.ReturnRequestID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if qc.ID == uuid.Nil {
		qc.ID = uuid.New()
	}
	r.s.t.qcs[qc.ReturnRequestID] = *qc
	return nil
}

func (r fakeQualityCheckRepo) Update(_ context.Context, qc *model.QualityCheck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.t.qcs[qc.ReturnRequestID] = *qc
	return nil
}

func (r fakeQualityCheckRepo) FindByReturnID(_ context.Context, returnID uuid.UUID) (*model.QualityCheck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	qc, ok := r.s.t.qcs[returnID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &qc, nil
}

func (r fakeQualityCheckRepo) FindByReturnIDForUpdate(ctx context.Context, returnID uuid.UUID) (*model.QualityCheck, error) {
	return r.FindByReturnID(ctx, returnID)
}

// --- damaged inventory ---

type fakeDamagedRepo struct{ s *memStore }

var _ repository.DamagedInventoryRepository = fakeDamagedRepo{}

func (r fakeDamagedRepo) Create(_ context.Context, rec *model.DamagedInventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.s.t.damaged[rec.ID] = *rec
	return nil
}

func (r fakeDamagedRepo) Update(_ context.Context, rec *model.DamagedInventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.t.damaged[rec.ID] = *rec
	return nil
}

func (r fakeDamagedRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DamagedInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.t.damaged[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

func (r fakeDamagedRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.DamagedInventory, error) {
	return r.FindByID(ctx, id)
}

func (r fakeDamagedRepo) List(_ context.Context, f repository.DamagedInventoryFilter) ([]model.DamagedInventory, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.DamagedInventory
	for _, rec := range r.s.t.damaged {
		if f.ProductID != nil && rec.ProductID != *f.ProductID {
			continue
		}
		if f.ReturnRequestID != nil && (rec.ReturnRequestID == nil || *rec.ReturnRequestID != *f.ReturnRequestID) {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if f.Source != "" && rec.Source != f.Source {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

// --- stock card ---

type fakeInventoryTxRepo struct{ s *memStore }

var _ repository.InventoryTxRepository = fakeInventoryTxRepo{}

func (r fakeInventoryTxRepo) Create(_ context.Context, tx *model.InventoryTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.t.stockCard {
		if tx.QualityCheckID != nil && e.QualityCheckID != nil && *e.QualityCheckID == *tx.QualityCheckID {
			return gorm.ErrDuplicatedKey
		}
	}
	tx.ID = uuid.New()
	r.s.t.stockCard = append(r.s.t.stockCard, *tx)
	return nil
}

func (r fakeInventoryTxRepo) ExistsForQualityCheck(_ context.Context, qcID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.t.stockCard {
		if e.QualityCheckID != nil && *e.QualityCheckID == qcID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeInventoryTxRepo) ListByProduct(_ context.Context, productID uuid.UUID, offset, limit int) ([]model.InventoryTransaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.InventoryTransaction
	for i := len(r.s.t.stockCard) - 1; i >= 0; i-- {
		if r.s.t.stockCard[i].ProductID == productID {
			out = append(out, r.s.t.stockCard[i])
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return []model.InventoryTransaction{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

// --- outbox & audit ---

type fakeOutboxRepo struct{ s *memStore }

var _ repository.OutboxRepository = fakeOutboxRepo{}

func (r fakeOutboxRepo) Enqueue(_ context.Context, e *model.OutboxEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = uuid.New()
	r.s.t.outbox = append(r.s.t.outbox, *e)
	return nil
}

func (r fakeOutboxRepo) ClaimBatch(_ context.Context, limit, _ int, _ time.Time, _ time.Duration) ([]model.OutboxEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.OutboxEvent
	for i := range r.s.t.outbox {
		if r.s.t.outbox[i].Status == model.OutboxStatusPending && len(out) < limit {
			r.s.t.outbox[i].Status = model.OutboxStatusProcessing
			out = append(out, r.s.t.outbox[i])
		}
	}
	return out, nil
}

func (r fakeOutboxRepo) MarkDone(context.Context, uuid.UUID, time.Time) error { return nil }

func (r fakeOutboxRepo) MarkFailed(context.Context, uuid.UUID, int, string) error { return nil }

type fakeAuditRepo struct{ s *memStore }

var _ repository.AuditRepository = fakeAuditRepo{}

func (r fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAudit != nil {
		return r.s.failAudit
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.s.t.audits = append(r.s.t.audits, *entry)
	return nil
}

func (r fakeAuditRepo) List(_ context.Context, f repository.AuditFilter) ([]model.AuditLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.AuditLog
	for _, a := range r.s.t.audits {
		if f.Action != "" && a.Action != f.Action {
			continue
		}
		if f.EntityID != "" && a.EntityID != f.EntityID {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

// --- fixture ---

var day = 24 * time.Hour

// fixture seeds one delivered single-unit order for one customer under a
// default 14-day policy with a 10% restocking fee.
type fixture struct {
	store    *memStore
	repos    Repositories
	tx       *fakeTxManager
	now      time.Time
	customer model.User
	staff    model.User
	product  model.Product
	order    model.Order
	item     model.OrderItem
	policy   model.ReturnPolicy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	delivered := now.Add(-5 * day)
	category := uuid.New()

	f := &fixture{
		store: store,
		tx:    &fakeTxManager{store: store},
		now:   now,
		repos: Repositories{
			Returns:       fakeReturnRepo{store},
			Orders:        fakeOrderRepo{store},
			Policies:      fakePolicyRepo{store},
			Users:         fakeUserRepo{store},
			Products:      fakeProductRepo{store},
			QualityChecks: fakeQualityCheckRepo{store},
			Damaged:       fakeDamagedRepo{store},
			InventoryTx:   fakeInventoryTxRepo{store},
			Outbox:        fakeOutboxRepo{store},
			Audit:         fakeAuditRepo{store},
		},
	}

	f.customer = model.User{ID: uuid.New(), Username: "shopper", Role: model.RoleCustomer}
	f.staff = model.User{ID: uuid.New(), Username: "admin", Role: model.RoleAdmin}
	f.product = model.Product{
		ID:           uuid.New(),
		SKU:          "SKU-1",
		Name:         "Trail Jacket",
		CategoryID:   &category,
		CurrentStock: 10,
		Price:        decimal.NewFromInt(100000),
	}
	f.order = model.Order{
		ID:                  uuid.New(),
		OrderCode:           "ORD-1",
		UserID:              f.customer.ID,
		Status:              model.OrderStatusDelivered,
		DeliveredAt:         &delivered,
		IsReturnable:        true,
		TotalReturnedAmount: decimal.Zero,
	}
	f.item = model.OrderItem{
		ID:        uuid.New(),
		OrderID:   f.order.ID,
		ProductID: f.product.ID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100000),
	}
	f.policy = model.ReturnPolicy{
		ID:                      uuid.New(),
		Name:                    "Store default",
		IsReturnable:            true,
		ReturnWindowDays:        14,
		ExchangeWindowDays:      7,
		RestockingFeePercentage: decimal.NewFromInt(10),
		ReturnShippingPaidBy:    model.ShippingPayerCustomer,
		RefundMethods:           datatypes.JSONSlice[model.RefundMethod]{model.RefundMethodOriginalPayment, model.RefundMethodStoreCredit},
		RequiresApproval:        true,
		QualityCheckRequired:    true,
		IsActive:                true,
		CreatedAt:               now.Add(-90 * day),
	}

	store.read(func(t *tables) {
		t.users[f.customer.ID] = f.customer
		t.users[f.staff.ID] = f.staff
		t.products[f.product.ID] = f.product
		t.orders[f.order.ID] = f.order
		t.items[f.item.ID] = f.item
		t.policies[f.policy.ID] = f.policy
	})
	return f
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) updatePolicy(fn func(p *model.ReturnPolicy)) {
	f.store.read(func(t *tables) {
		p := t.policies[f.policy.ID]
		fn(&p)
		t.policies[f.policy.ID] = p
		f.policy = p
	})
}

func (f *fixture) setItemQuantity(qty int) {
	f.store.read(func(t *tables) {
		item := t.items[f.item.ID]
		item.Quantity = qty
		t.items[f.item.ID] = item
		f.item = item
	})
}

func (f *fixture) dispositionService() *dispositionService {
	svc := NewDispositionService(f.repos, f.tx, zap.NewNop()).(*dispositionService)
	svc.now = f.clock
	return svc
}

func (f *fixture) returnService() *returnService {
	svc := NewReturnService(f.repos, f.tx, f.dispositionService(), "", zap.NewNop()).(*returnService)
	svc.now = f.clock
	return svc
}

func (f *fixture) qualityCheckService() *qualityCheckService {
	svc := NewQualityCheckService(f.repos, f.tx, f.dispositionService(), returns.DefaultAdjustmentRates(), "", zap.NewNop()).(*qualityCheckService)
	svc.now = f.clock
	return svc
}

func (f *fixture) getReturn(t *testing.T, id uuid.UUID) model.ReturnRequest {
	t.Helper()
	var r model.ReturnRequest
	var ok bool
	f.store.read(func(tb *tables) { r, ok = tb.requests[id] })
	require.True(t, ok, "return %s not stored", id)
	return r
}

func (f *fixture) getOrder() model.Order {
	var o model.Order
	f.store.read(func(t *tables) { o = t.orders[f.order.ID] })
	return o
}

func (f *fixture) getProduct() model.Product {
	var p model.Product
	f.store.read(func(t *tables) { p = t.products[f.product.ID] })
	return p
}

func (f *fixture) historyOf(id uuid.UUID) []model.ReturnStatusHistory {
	var out []model.ReturnStatusHistory
	f.store.read(func(t *tables) {
		for _, h := range t.history {
			if h.ReturnRequestID == id {
				out = append(out, h)
			}
		}
	})
	return out
}

func (f *fixture) damagedFor(id uuid.UUID) []model.DamagedInventory {
	var out []model.DamagedInventory
	f.store.read(func(t *tables) {
		for _, d := range t.damaged {
			if d.ReturnRequestID != nil && *d.ReturnRequestID == id {
				out = append(out, d)
			}
		}
	})
	return out
}

func (f *fixture) countRows() (requests, history, audits, outbox int) {
	f.store.read(func(t *tables) {
		requests, history, audits, outbox = len(t.requests), len(t.history), len(t.audits), len(t.outbox)
	})
	return
}

// submit creates a refund return for the fixture item as the customer.
func (f *fixture) submit(t *testing.T) *model.ReturnRequest {
	t.Helper()
	r, err := f.returnService().CreateReturn(context.Background(), f.customer.ID.String(), f.order.ID.String(), f.item.ID.String(), CreateReturnRequest{
		ReasonCode: "defective",
		ReturnType: "refund",
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) approve(t *testing.T, id uuid.UUID, amount *decimal.Decimal) {
	t.Helper()
	_, err := f.returnService().ProcessReturn(context.Background(), f.staff.ID.String(), id.String(), ProcessReturnRequest{
		Action:         "approve",
		ApprovedAmount: amount,
	})
	require.NoError(t, err)
}

func (f *fixture) receive(t *testing.T, id uuid.UUID) {
	t.Helper()
	_, err := f.returnService().MarkReceived(context.Background(), f.staff.ID.String(), id.String(), ReceiveReturnRequest{Courier: "GHN", TrackingNumber: "TRK-1"})
	require.NoError(t, err)
}

func (f *fixture) inspect(t *testing.T, id uuid.UUID, sub QualityCheckSubmission) *QualityCheckResult {
	t.Helper()
	res, err := f.qualityCheckService().SubmitQualityCheck(context.Background(), f.staff.ID.String(), id.String(), sub)
	require.NoError(t, err)
	return res
}

func statuses(h []model.ReturnStatusHistory) []model.ReturnStatus {
	out := make([]model.ReturnStatus, 0, len(h))
	for _, e := range h {
		out = append(out, e.ToStatus)
	}
	return out
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func assertCode(t *testing.T, want returns.Code, err error) {
	t.Helper()
	require.Error(t, err)
	code, ok := returns.CodeOf(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, want, code)
}
