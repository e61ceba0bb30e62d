package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/normalize"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: mismo contrato que los adaptadores de PostgreSQL
// (copias al leer y escribir, (nil, nil) cuando no existe, ErrDuplicate en
// violaciones de unicidad).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.RWMutex
	products  map[string]*entity.Product
	locations map[string]*entity.Location
	clients   map[string]*entity.Client
	stock     map[string]*entity.LocationStock // productID|locationID
	movements []*entity.MovementRecord
	// productLocks cuenta las tomas del bloqueo de fila del producto
	// (GetForUpdate) para poder afirmar la serialización por producto.
	productLocks int
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		locations: map[string]*entity.Location{},
		clients:   map[string]*entity.Client{},
		stock:     map[string]*entity.LocationStock{},
	}
}

func stockKey(productID, locationID string) string { return productID + "|" + locationID }

var (
	_ repository.ProductRepository  = (*memProductRepo)(nil)
	_ repository.LocationRepository = (*memLocationRepo)(nil)
	_ repository.ClientRepository   = (*memClientRepo)(nil)
	_ repository.StockRepository    = (*memStockRepo)(nil)
	_ repository.MovementRepository = (*memMovementRepo)(nil)
	_ inventory.TxRunner            = (*memTxRunner)(nil)
)

// ── productos ────────────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.products {
		if other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	r.s.productLocks++
	r.s.mu.Unlock()
	return r.GetByID(id)
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStatus(productID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Status = status
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

// ── sucursales ───────────────────────────────────────────────────────────────

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLocationRepo) GetByName(name string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	norm := normalize.Name(name)
	for _, l := range r.s.locations {
		if normalize.Name(l.Name) == norm {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) Update(l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[l.ID]; !ok {
		return domain.ErrLocationNotFound
	}
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Location
	for _, l := range r.s.locations {
		cp := *l
		list = append(list, &cp)
	}
	return list, nil
}

// ── clientes ─────────────────────────────────────────────────────────────────

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByName(name string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	norm := normalize.Name(name)
	for _, c := range r.s.clients {
		if normalize.Name(c.Name) == norm {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Client
	for _, c := range r.s.clients {
		cp := *c
		list = append(list, &cp)
	}
	return list, nil
}

// ── stock ────────────────────────────────────────────────────────────────────

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(productID, locationID string) (*entity.LocationStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if st, ok := r.s.stock[stockKey(productID, locationID)]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.LocationStock{ProductID: productID, LocationID: locationID}, nil
}

func (r *memStockRepo) GetForUpdate(productID, locationID string) (*entity.LocationStock, error) {
	return r.Get(productID, locationID)
}

func (r *memStockRepo) Upsert(stock *entity.LocationStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *stock
	if prev, ok := r.s.stock[stockKey(stock.ProductID, stock.LocationID)]; ok {
		cp.Version = prev.Version + 1
	} else {
		cp.Version = 1
	}
	r.s.stock[stockKey(stock.ProductID, stock.LocationID)] = &cp
	return nil
}

func (r *memStockRepo) ListByProduct(productID string) ([]*entity.LocationStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.LocationStock
	for _, st := range r.s.stock {
		if st.ProductID == productID {
			cp := *st
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LocationID < list[j].LocationID })
	return list, nil
}

func (r *memStockRepo) SumByProduct(productID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total int64
	for _, st := range r.s.stock {
		if st.ProductID == productID {
			total += st.Quantity
		}
	}
	return total, nil
}

// ── movimientos ──────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.MovementRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.Reference != "" {
		for _, other := range r.s.movements {
			if other.Reference == m.Reference {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.MovementRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) GetByReference(reference string) (*entity.MovementRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.Reference == reference {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter) ([]*entity.MovementRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.MovementRecord
	for _, m := range r.s.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && m.SourceLocationID != filter.LocationID && m.DestLocationID != filter.LocationID {
			continue
		}
		if len(filter.Types) > 0 && !contains(filter.Types, m.Type) {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	// Misma paginación que el adaptador de PostgreSQL (LIMIT/OFFSET, default 50).
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if filter.Offset >= len(list) {
		return nil, nil
	}
	end := filter.Offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[filter.Offset:end], nil
}

func (r *memMovementRepo) ListByActorLocation(locationID string, filter repository.MovementFilter) ([]*entity.MovementRecord, error) {
	return r.List(filter)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// ── tx runner ────────────────────────────────────────────────────────────────

// memTxRunner serializa las "transacciones" con un mutex. conflictsLeft
// permite inyectar fallos de serialización antes de ejecutar el callback;
// onConflict corre en cada fallo inyectado (simula lo que otra transacción
// alcanzó a confirmar mientras tanto).
type memTxRunner struct {
	s             *memStore
	txMu          sync.Mutex
	conflictsLeft int
	onConflict    func()
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	if t.conflictsLeft > 0 {
		t.conflictsLeft--
		if t.onConflict != nil {
			t.onConflict()
		}
		return domain.ErrConflict
	}
	return fn(&memMovementRepo{t.s}, &memStockRepo{t.s}, &memProductRepo{t.s})
}

// ── fixture ──────────────────────────────────────────────────────────────────

const (
	prodID     = "prod-1"
	warehouseW = "loc-w"
	salesR     = "loc-r"
	clientID   = "cli-1"
)

type fixture struct {
	store    *memStore
	runner   *memTxRunner
	uc       *inventory.ApplyMovementUseCase
	resolver *inventory.PartyResolver
}

// newFixture arma un catálogo mínimo: un producto (min_stock 10), dos
// sucursales y un cliente del directorio.
func newFixture() *fixture {
	s := newMemStore()
	now := time.Now()
	s.products[prodID] = &entity.Product{
		ID: prodID, SKU: "TAL-750W", Name: "Taladro percutor 750W",
		MinStock: 10, Status: entity.StatusOutOfStock,
		CreatedAt: now, UpdatedAt: now,
	}
	s.locations[warehouseW] = &entity.Location{ID: warehouseW, Name: "Bodega Central"}
	s.locations[salesR] = &entity.Location{ID: salesR, Name: "Sala de Ventas"}
	s.clients[clientID] = &entity.Client{ID: clientID, Name: "Ferretería El Puerto"}

	runner := &memTxRunner{s: s}
	resolver := inventory.NewPartyResolver(&memLocationRepo{s}, &memClientRepo{s})
	uc := inventory.NewApplyMovementUseCase(runner, &memProductRepo{s}, &memLocationRepo{s}, resolver)
	return &fixture{store: s, runner: runner, uc: uc, resolver: resolver}
}

func (f *fixture) quantity(locationID string) int64 {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()
	if st, ok := f.store.stock[stockKey(prodID, locationID)]; ok {
		return st.Quantity
	}
	return 0
}

func (f *fixture) productStatus() string {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()
	return f.store.products[prodID].Status
}

func (f *fixture) movementCount() int {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()
	return len(f.store.movements)
}

func (f *fixture) productLockCount() int {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()
	return f.store.productLocks
}
